package itemrequest

import (
	"context"
	"strings"

	"shareit-backend/internal/item"
	"shareit-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, description string, requesterID int64) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, limit, offset int) ([]*ItemRequest, error)
	GetByID(ctx context.Context, requestID, userID int64) (*ItemRequest, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
}

func NewService(repo Repository, userService user.Service, itemService item.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
	}
}

func (s *service) Create(ctx context.Context, description string, requesterID int64) (*ItemRequest, error) {
	requester, err := s.userService.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, ErrNotValidated
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requester.ID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Items = []*item.Item{}
	return req, nil
}

func (s *service) ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, userID int64, limit, offset int) ([]*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByOtherRequesters(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, userID int64) (*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemService.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

// attachItems aggregates the offers answering each request.
func (s *service) attachItems(ctx context.Context, requests []*ItemRequest) ([]*ItemRequest, error) {
	for _, req := range requests {
		items, err := s.itemService.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		req.Items = items
	}
	return requests, nil
}
