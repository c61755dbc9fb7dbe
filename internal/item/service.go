package item

import (
	"context"
	"strings"
	"time"

	"shareit-backend/internal/user"
)

// BookingSource provides the booking lookups the item view and the comment
// gate need. It is implemented by the booking module; keeping the interface on
// the consumer side leaves the package graph acyclic (booking imports item,
// never the other way around).
type BookingSource interface {
	// LastForItem returns the most recent approved booking started before now, or nil.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	// NextForItem returns the earliest approved booking starting after now, or nil.
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	// CompletedExists reports whether the user has a booking on the item that ended before now.
	CompletedExists(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
}

// RequestDirectory resolves item-request ids. Implemented by the itemrequest module.
type RequestDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error)
	Update(ctx context.Context, itemID int64, req UpdateRequest, actorID int64) (*Item, error)
	GetByID(ctx context.Context, itemID int64) (*Item, error)
	GetView(ctx context.Context, itemID, actorID int64) (*View, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*View, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
	CreateComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	comments    CommentRepository
	userService user.Service
	requests    RequestDirectory
	bookings    BookingSource

	now func() time.Time
}

func NewService(
	repo Repository,
	comments CommentRepository,
	userService user.Service,
	requests RequestDirectory,
	bookings BookingSource,
) Service {
	return &service{
		repo:        repo,
		comments:    comments,
		userService: userService,
		requests:    requests,
		bookings:    bookings,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID int64) (*Item, error) {
	owner, err := s.userService.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	it := &Item{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		OwnerID:     owner.ID,
		RequestID:   req.RequestID,
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if it.Name == "" || it.Description == "" || req.Available == nil {
		return nil, ErrNotValidated
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, RequestNotFound(*req.RequestID)
		}
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, itemID int64, req UpdateRequest, actorID int64) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != actorID {
		return nil, ErrInvalidOwner
	}

	if req.Name != nil {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if it.Name == "" || it.Description == "" {
		return nil, ErrNotValidated
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) GetView(ctx context.Context, itemID, actorID int64) (*View, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, it, actorID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*View, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(items))
	for _, it := range items {
		v, err := s.buildView(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) ListByRequest(ctx context.Context, requestID int64) ([]*Item, error) {
	return s.repo.ListByRequest(ctx, requestID)
}

func (s *service) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, limit, offset)
}

func (s *service) CreateComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	used, err := s.bookings.CompletedExists(ctx, itemID, authorID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, ErrItemNotUsed
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentNotValidated
	}

	cm := &Comment{
		Text:       text,
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
	}

	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// buildView attaches comments to the item and, when the viewer owns it, the
// last and next approved bookings. Non-owners never see booking identities.
func (s *service) buildView(ctx context.Context, it *Item, actorID int64) (*View, error) {
	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}

	v := &View{
		Item:     *it,
		Comments: comments,
	}

	if it.OwnerID != actorID {
		return v, nil
	}

	now := s.now().UTC()

	v.LastBooking, err = s.bookings.LastForItem(ctx, it.ID, now)
	if err != nil {
		return nil, err
	}
	v.NextBooking, err = s.bookings.NextForItem(ctx, it.ID, now)
	if err != nil {
		return nil, err
	}

	return v, nil
}
