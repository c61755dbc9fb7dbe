package booking

import (
	"net/http"
	"time"

	"shareit-backend/internal/pkg/apperror"
)

var (
	ErrOwnBooking       = apperror.New(http.StatusNotFound, "Item is booked by the owner")
	ErrNotAvailable     = apperror.New(http.StatusBadRequest, "Booking not available")
	ErrStartAfterEnd    = apperror.New(http.StatusBadRequest, "Booking start is after end")
	ErrStartEqualsEnd   = apperror.New(http.StatusBadRequest, "Booking start is equal to end")
	ErrNotValidated     = apperror.New(http.StatusBadRequest, "Booking data has not been validated")
	ErrRepeatedApproval = apperror.New(http.StatusBadRequest, "Repeated approval")
	ErrInvalidOwner     = apperror.New(http.StatusNotFound, "Invalid owner")
	ErrInvalidUser      = apperror.New(http.StatusNotFound, "Invalid userId")
	ErrConcurrentUpdate = apperror.New(http.StatusConflict, "Concurrent booking update")
)

// NotFound builds the lookup error for an unknown booking id.
func NotFound(id int64) *apperror.AppError {
	return apperror.Newf(http.StatusNotFound, "Booking with Id = %d doesn't exist", id)
}

// Status is the booking lifecycle state. Bookings start WAITING and move to
// APPROVED or REJECTED by an explicit owner action only.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is the query filter partitioning booking lists by time or status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a state query value. The empty string means ALL.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, "":
		return StateAll, nil
	case StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", apperror.New(http.StatusBadRequest, "Unknown state: "+s)
	}
}

// Booking is a time-bounded claim on an item. Joined display fields are
// flattened in for the read side.
type Booking struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Status      Status
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
}

// Filter defines parameters for listing bookings. Exactly one of BookerID and
// OwnerID is set: BookerID selects the caller's own bookings, OwnerID selects
// bookings on items the caller owns.
type Filter struct {
	BookerID int64
	OwnerID  int64
	State    State
	Limit    int
	Offset   int
}
