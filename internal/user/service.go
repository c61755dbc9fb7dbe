package user

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"shareit-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	Name  string
	Email string
}

// UpdateRequest uses pointers to distinguish "field not sent" from an empty value.
type UpdateRequest struct {
	Name  *string
	Email *string
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService creates a new user Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	u := &User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}

	if err := validate(u); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}

	if err := validate(u); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// validate aggregates field violations into a single message.
func validate(u *User) error {
	var violations []string

	if u.Name == "" {
		violations = append(violations, "name must not be blank")
	}
	if u.Email == "" {
		violations = append(violations, "email must not be blank")
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		violations = append(violations, "email must be a valid email address")
	}

	if len(violations) == 0 {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("User data not validated: ")
	for _, v := range violations {
		msg.WriteString(v)
		msg.WriteString(";")
	}
	return apperror.New(http.StatusBadRequest, msg.String())
}
