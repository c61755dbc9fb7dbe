package http

import (
	"time"

	itemHttp "shareit-backend/internal/item/http"
	"shareit-backend/internal/itemrequest"
)

type ItemRequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	items := make([]itemHttp.ItemResponse, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, itemHttp.NewItemResponse(it))
	}

	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       items,
	}
}

// CreateItemRequestRequest is the payload for POST /requests.
type CreateItemRequestRequest struct {
	Description string `json:"description"`
}
