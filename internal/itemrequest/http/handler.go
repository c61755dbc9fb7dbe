package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/identity"
	"shareit-backend/internal/itemrequest"
	"shareit-backend/internal/pkg/request"
	"shareit-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.Description, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemRequestResponse(created))
}

func (h *Handler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListByRequester(c.Request.Context(), identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) ListOthers(c *gin.Context) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}
	limit, offset := page.LimitOffset()

	requests, err := h.service.ListOthers(c.Request.Context(), identity.GetUserID(c), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) Get(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || requestID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), requestID, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(req))
}

func toResponses(requests []*itemrequest.ItemRequest) []ItemRequestResponse {
	resp := make([]ItemRequestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, NewItemRequestResponse(req))
	}
	return resp
}
