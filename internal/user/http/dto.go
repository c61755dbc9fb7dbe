package http

import "shareit-backend/internal/user"

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserResponse converts a domain user.User to the API shape.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// CreateUserRequest is the payload for POST /users.
// Field rules (blank name, email syntax) are enforced by the service so the
// aggregated validation message stays in one place.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest defines fields allowed to be updated via PATCH /users/:userId.
// Pointers distinguish "field not sent" from an empty value.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
