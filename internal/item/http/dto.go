package http

import (
	"time"

	"shareit-backend/internal/item"
)

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

// BookingRefResponse is the booking projection embedded in an owner's item view.
type BookingRefResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.Created,
	}
}

// ItemViewResponse is an item with comments and owner-only booking refs.
type ItemViewResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	RequestID   *int64              `json:"requestId,omitempty"`
	LastBooking *BookingRefResponse `json:"lastBooking"`
	NextBooking *BookingRefResponse `json:"nextBooking"`
	Comments    []CommentResponse   `json:"comments"`
}

func NewItemViewResponse(v *item.View) ItemViewResponse {
	resp := ItemViewResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		RequestID:   v.RequestID,
		Comments:    make([]CommentResponse, 0, len(v.Comments)),
	}
	for i := range v.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(&v.Comments[i]))
	}
	if v.LastBooking != nil {
		resp.LastBooking = &BookingRefResponse{ID: v.LastBooking.ID, BookerID: v.LastBooking.BookerID}
	}
	if v.NextBooking != nil {
		resp.NextBooking = &BookingRefResponse{ID: v.NextBooking.ID, BookerID: v.NextBooking.BookerID}
	}
	return resp
}

// CreateItemRequest is the payload for POST /items. Field rules live in the
// service so the "Item data not validated" message comes from one place.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
