package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/identity"
)

type fakeService struct {
	booking.Service

	created      booking.CreateRequest
	createdBy    int64
	decidedID    int64
	approved     bool
	listedState  string
	listedByUser int64

	err error
}

func (f *fakeService) sample() *booking.Booking {
	return &booking.Booking{
		ID:         7,
		Start:      time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		Status:     booking.StatusWaiting,
		ItemID:     10,
		ItemName:   "Drill",
		BookerID:   2,
		BookerName: "booker",
	}
}

func (f *fakeService) Create(_ context.Context, req booking.CreateRequest, bookerID int64) (*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = req
	f.createdBy = bookerID
	return f.sample(), nil
}

func (f *fakeService) UpdateStatus(_ context.Context, bookingID int64, approved bool, _ int64) (*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.decidedID = bookingID
	f.approved = approved
	b := f.sample()
	b.Status = booking.StatusApproved
	return b, nil
}

func (f *fakeService) ListByBooker(_ context.Context, userID int64, state string, _, _ int) ([]*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.listedByUser = userID
	f.listedState = state
	return []*booking.Booking{f.sample()}, nil
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), identity.Required())
	return r
}

func doRequest(r *gin.Engine, method, path string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(identity.UserIDHeader, userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingHandler(t *testing.T) {
	payload := gin.H{
		"itemId": 10,
		"start":  "2026-09-02T10:00:00Z",
		"end":    "2026-09-03T10:00:00Z",
	}

	t.Run("Missing Sharer Header", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "POST", "/bookings", payload, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Sharer Header", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "POST", "/bookings", payload, "abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Created", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc), "POST", "/bookings", payload, "2")
		require.Equal(t, http.StatusCreated, w.Code)

		assert.Equal(t, int64(10), svc.created.ItemID)
		assert.Equal(t, int64(2), svc.createdBy)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, int64(2), resp.Booker.ID)
		assert.Equal(t, "Drill", resp.Item.Name)
	})

	t.Run("Missing Item Id", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "POST", "/bookings", gin.H{"start": "2026-09-02T10:00:00Z"}, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service Error Mapped", func(t *testing.T) {
		svc := &fakeService{err: booking.ErrNotAvailable}
		w := doRequest(newTestRouter(svc), "POST", "/bookings", payload, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Booking not available")
	})
}

func TestUpdateBookingStatusHandler(t *testing.T) {
	t.Run("Approved True", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc), "PATCH", "/bookings/7?approved=true", nil, "1")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, int64(7), svc.decidedID)
		assert.True(t, svc.approved)
	})

	t.Run("Approved False", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc), "PATCH", "/bookings/7?approved=false", nil, "1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, svc.approved)
	})

	t.Run("Missing Approved Param", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "PATCH", "/bookings/7", nil, "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Booking Id", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "PATCH", "/bookings/zero?approved=true", nil, "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Repeated Approval Mapped", func(t *testing.T) {
		svc := &fakeService{err: booking.ErrRepeatedApproval}
		w := doRequest(newTestRouter(svc), "PATCH", "/bookings/7?approved=true", nil, "1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Repeated approval")
	})
}

func TestListBookingsHandler(t *testing.T) {
	t.Run("Default State Is All", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc), "GET", "/bookings", nil, "2")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "ALL", svc.listedState)
		assert.Equal(t, int64(2), svc.listedByUser)
	})

	t.Run("State Passed Through", func(t *testing.T) {
		svc := &fakeService{}
		w := doRequest(newTestRouter(svc), "GET", "/bookings?state=FUTURE", nil, "2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "FUTURE", svc.listedState)
	})

	t.Run("Unknown State Mapped", func(t *testing.T) {
		svc := &fakeService{err: unknownStateErr()}
		w := doRequest(newTestRouter(svc), "GET", "/bookings?state=SOMEDAY", nil, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown state: SOMEDAY")
	})

	t.Run("Negative From Rejected", func(t *testing.T) {
		w := doRequest(newTestRouter(&fakeService{}), "GET", "/bookings?from=-1", nil, "2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func unknownStateErr() error {
	_, err := booking.ParseState("SOMEDAY")
	return err
}
