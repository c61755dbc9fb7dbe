package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/identity"
	"shareit-backend/internal/pkg/request"
	"shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	}, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter is required"})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), bookingID, approved, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), bookingID, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *Handler) list(
	c *gin.Context,
	fn func(ctx context.Context, userID int64, state string, limit, offset int) ([]*booking.Booking, error),
) {
	var page request.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}
	limit, offset := page.LimitOffset()

	state := c.DefaultQuery("state", "ALL")

	bookings, err := fn(c.Request.Context(), identity.GetUserID(c), state, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

func parseBookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}
