package item

import (
	"net/http"
	"time"

	"shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotValidated        = apperror.New(http.StatusBadRequest, "Item data not validated")
	ErrCommentNotValidated = apperror.New(http.StatusBadRequest, "Comment data not validated")
	ErrInvalidOwner        = apperror.New(http.StatusNotFound, "Invalid item owner")
	ErrItemNotUsed         = apperror.New(http.StatusBadRequest, "The user has not used the item")
)

// NotFound builds the lookup error for an unknown item id.
func NotFound(id int64) *apperror.AppError {
	return apperror.Newf(http.StatusNotFound, "Item with Id = %d does not exist", id)
}

// RequestNotFound builds the lookup error for an unknown item-request id.
func RequestNotFound(id int64) *apperror.AppError {
	return apperror.Newf(http.StatusNotFound, "Request with Id = %d does not exist", id)
}

// Item is a thing a user offers for sharing. Owner never changes after creation.
// Available=false blocks new bookings but leaves existing ones untouched.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64 // set when the item answers an item request
}

// Comment is feedback left by a user who has completed a booking on the item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingRef is the minimal booking projection shown on an owner's item view.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// View is an item enriched with comments and, for the owner only, the
// surrounding approved bookings.
type View struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}
