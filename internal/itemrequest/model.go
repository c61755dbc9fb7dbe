package itemrequest

import (
	"net/http"
	"time"

	"shareit-backend/internal/item"
	"shareit-backend/internal/pkg/apperror"
)

var ErrNotValidated = apperror.New(http.StatusBadRequest, "Request data not validated")

// NotFound builds the lookup error for an unknown request id.
func NotFound(id int64) *apperror.AppError {
	return apperror.Newf(http.StatusNotFound, "Request with Id = %d does not exist", id)
}

// ItemRequest is a user's public ask for an item they could not find. Other
// users answer it by listing an item that references the request.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time

	// Items lists the offers answering this request (read-side aggregation).
	Items []*item.Item
}
