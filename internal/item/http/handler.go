package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/identity"
	"shareit-backend/internal/item"
	"shareit-backend/internal/pkg/request"
	"shareit-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Create(c.Request.Context(), item.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), itemID, item.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	v, err := h.service.GetView(c.Request.Context(), itemID, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemViewResponse(v))
}

func (h *Handler) ListOwn(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}
	limit, offset := page.LimitOffset()

	views, err := h.service.ListByOwner(c.Request.Context(), identity.GetUserID(c), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, NewItemViewResponse(v))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Search(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}
	limit, offset := page.LimitOffset()

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, NewItemResponse(it))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateComment(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cm, err := h.service.CreateComment(c.Request.Context(), itemID, identity.GetUserID(c), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(cm))
}

func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}
