package booking

import (
	"context"
	"time"

	"shareit-backend/internal/item"
	"shareit-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, approved bool, actorID int64) (*Booking, error)
	GetByID(ctx context.Context, bookingID, actorID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, limit, offset int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, limit, offset int) ([]*Booking, error)
}

type service struct {
	repo        Repository
	itemService item.Service
	userService user.Service

	now func() time.Time
}

func NewService(repo Repository, itemService item.Service, userService user.Service) Service {
	return &service{
		repo:        repo,
		itemService: itemService,
		userService: userService,
		now:         time.Now,
	}
}

// Create runs the booking validation gate in order; each check short-circuits
// with its own error and nothing is written until all of them pass.
func (s *service) Create(ctx context.Context, req CreateRequest, bookerID int64) (*Booking, error) {
	booker, err := s.userService.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.itemService.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID == bookerID {
		return nil, ErrOwnBooking
	}
	if !it.Available {
		return nil, ErrNotAvailable
	}
	if req.Start.After(req.End) {
		return nil, ErrStartAfterEnd
	}
	if req.Start.Equal(req.End) {
		return nil, ErrStartEqualsEnd
	}

	now := s.now().UTC()
	if req.Start.IsZero() || req.End.IsZero() || req.Start.Before(now) || req.End.Before(now) {
		return nil, ErrNotValidated
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus approves or rejects a booking. Only the item's owner may call
// it. Re-approving an approved booking fails; re-rejecting a rejected one
// does not (historical asymmetry, kept on purpose). The write is conditional
// on the status observed here so racing owners cannot both win.
func (s *service) UpdateStatus(ctx context.Context, bookingID int64, approved bool, actorID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != actorID {
		return nil, ErrInvalidOwner
	}

	if approved && b.Status == StatusApproved {
		return nil, ErrRepeatedApproval
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
		return nil, err
	}

	b.Status = next
	return b, nil
}

// GetByID returns the booking, visible only to its booker or the item's
// owner. Anyone else gets a not-found so booking existence is not leaked.
func (s *service) GetByID(ctx context.Context, bookingID, actorID int64) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actorID && b.ItemOwnerID != actorID {
		return nil, ErrInvalidUser
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, limit, offset int) ([]*Booking, error) {
	return s.list(ctx, Filter{BookerID: bookerID}, bookerID, state, limit, offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, limit, offset int) ([]*Booking, error) {
	return s.list(ctx, Filter{OwnerID: ownerID}, ownerID, state, limit, offset)
}

func (s *service) list(ctx context.Context, f Filter, userID int64, state string, limit, offset int) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	parsed, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	f.State = parsed
	f.Limit = limit
	f.Offset = offset

	return s.repo.List(ctx, f, s.now().UTC())
}
