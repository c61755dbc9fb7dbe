package http

import (
	"time"

	"shareit-backend/internal/booking"
)

// CreateBookingRequest is the payload for POST /bookings. Start/end presence
// is checked by the service (zero time fails validation there) so the
// "Booking data has not been validated" message stays canonical.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// UserTag is a brief representation of the booker.
type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemTag is a brief representation of the booked item.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserTag   `json:"booker"`
	Item   ItemTag   `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}
