package user

import (
	"net/http"

	"shareit-backend/internal/pkg/apperror"
)

var ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")

// NotFound builds the lookup error for an unknown user id.
func NotFound(id int64) *apperror.AppError {
	return apperror.Newf(http.StatusNotFound, "User with id = %d doesn't exist", id)
}

// User represents a registered user.
type User struct {
	ID    int64
	Name  string
	Email string
}
