package item

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/pkg/apperror"
	"shareit-backend/internal/user"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeUserService struct {
	user.Service
	users map[int64]*user.User
}

func (f *fakeUserService) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.NotFound(id)
	}
	return u, nil
}

type memRepo struct {
	items  map[int64]*Item
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[int64]*Item{}, nextID: 1}
}

func (r *memRepo) Create(_ context.Context, it *Item) error {
	it.ID = r.nextID
	r.nextID++
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, NotFound(id)
	}
	clone := *it
	return &clone, nil
}

func (r *memRepo) Update(_ context.Context, it *Item) error {
	if _, ok := r.items[it.ID]; !ok {
		return NotFound(it.ID)
	}
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *memRepo) ListByOwner(_ context.Context, ownerID int64, _, _ int) ([]*Item, error) {
	var out []*Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memRepo) ListByRequest(_ context.Context, requestID int64) ([]*Item, error) {
	var out []*Item
	for _, it := range r.items {
		if it.RequestID != nil && *it.RequestID == requestID {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memRepo) Search(_ context.Context, _ string, _, _ int) ([]*Item, error) {
	var out []*Item
	for _, it := range r.items {
		if it.Available {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memCommentRepo struct {
	comments []Comment
	nextID   int64
}

func (r *memCommentRepo) Create(_ context.Context, cm *Comment) error {
	r.nextID++
	cm.ID = r.nextID
	cm.Created = testNow
	r.comments = append(r.comments, *cm)
	return nil
}

func (r *memCommentRepo) ListByItem(_ context.Context, itemID int64) ([]Comment, error) {
	var out []Comment
	for _, cm := range r.comments {
		if cm.ItemID == itemID {
			out = append(out, cm)
		}
	}
	return out, nil
}

type fakeRequestDirectory struct {
	known map[int64]bool
}

func (f *fakeRequestDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return f.known[id], nil
}

type fakeBookingSource struct {
	last      *BookingRef
	next      *BookingRef
	completed map[int64]bool // keyed by user id
}

func (f *fakeBookingSource) LastForItem(_ context.Context, _ int64, _ time.Time) (*BookingRef, error) {
	return f.last, nil
}

func (f *fakeBookingSource) NextForItem(_ context.Context, _ int64, _ time.Time) (*BookingRef, error) {
	return f.next, nil
}

func (f *fakeBookingSource) CompletedExists(_ context.Context, _, userID int64, _ time.Time) (bool, error) {
	return f.completed[userID], nil
}

type testEnv struct {
	repo     *memRepo
	comments *memCommentRepo
	requests *fakeRequestDirectory
	bookings *fakeBookingSource
	svc      *service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:     newMemRepo(),
		comments: &memCommentRepo{},
		requests: &fakeRequestDirectory{known: map[int64]bool{5: true}},
		bookings: &fakeBookingSource{completed: map[int64]bool{}},
	}

	users := &fakeUserService{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner", Email: "owner@example.com"},
		2: {ID: 2, Name: "viewer", Email: "viewer@example.com"},
	}}

	env.svc = NewService(env.repo, env.comments, users, env.requests, env.bookings).(*service)
	env.svc.now = func() time.Time { return testNow }
	return env
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func requireAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	valid := CreateRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)}

	t.Run("Happy Path", func(t *testing.T) {
		env := newTestEnv()

		it, err := env.svc.Create(ctx, valid, 1)
		require.NoError(t, err)

		assert.NotZero(t, it.ID)
		assert.Equal(t, int64(1), it.OwnerID)
		assert.True(t, it.Available)
	})

	t.Run("Unknown Owner", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Create(ctx, valid, 99)
		requireAppError(t, err, http.StatusNotFound, "User with id = 99 doesn't exist")
	})

	t.Run("Blank Name", func(t *testing.T) {
		env := newTestEnv()

		req := valid
		req.Name = "   "
		_, err := env.svc.Create(ctx, req, 1)
		requireAppError(t, err, http.StatusBadRequest, "Item data not validated")
	})

	t.Run("Missing Available", func(t *testing.T) {
		env := newTestEnv()

		req := valid
		req.Available = nil
		_, err := env.svc.Create(ctx, req, 1)
		requireAppError(t, err, http.StatusBadRequest, "Item data not validated")
	})

	t.Run("Known Request Reference", func(t *testing.T) {
		env := newTestEnv()

		req := valid
		req.RequestID = int64Ptr(5)
		it, err := env.svc.Create(ctx, req, 1)
		require.NoError(t, err)
		require.NotNil(t, it.RequestID)
		assert.Equal(t, int64(5), *it.RequestID)
	})

	t.Run("Unknown Request Reference", func(t *testing.T) {
		env := newTestEnv()

		req := valid
		req.RequestID = int64Ptr(42)
		_, err := env.svc.Create(ctx, req, 1)
		requireAppError(t, err, http.StatusNotFound, "Request with Id = 42 does not exist")
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, env *testEnv) *Item {
		t.Helper()
		it, err := env.svc.Create(ctx, CreateRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		return it
	}

	t.Run("Partial Update", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		updated, err := env.svc.Update(ctx, it.ID, UpdateRequest{Available: boolPtr(false)}, 1)
		require.NoError(t, err)

		assert.Equal(t, "Drill", updated.Name)
		assert.False(t, updated.Available)
	})

	t.Run("Owner Is Never Reassigned", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		updated, err := env.svc.Update(ctx, it.ID, UpdateRequest{Name: strPtr("Big Drill")}, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.OwnerID)
	})

	t.Run("Non-Owner Rejected", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		_, err := env.svc.Update(ctx, it.ID, UpdateRequest{Name: strPtr("Mine now")}, 2)
		requireAppError(t, err, http.StatusNotFound, "Invalid item owner")
	})

	t.Run("Blank Name Rejected", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		_, err := env.svc.Update(ctx, it.ID, UpdateRequest{Name: strPtr("  ")}, 1)
		requireAppError(t, err, http.StatusBadRequest, "Item data not validated")
	})

	t.Run("Unknown Item", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Update(ctx, 42, UpdateRequest{Name: strPtr("Ghost")}, 1)
		requireAppError(t, err, http.StatusNotFound, "Item with Id = 42 does not exist")
	})
}

func TestGetItemView(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, env *testEnv) *Item {
		t.Helper()
		it, err := env.svc.Create(ctx, CreateRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		return it
	}

	t.Run("Owner Sees Bookings", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)
		env.bookings.last = &BookingRef{ID: 3, BookerID: 2}
		env.bookings.next = &BookingRef{ID: 4, BookerID: 2}

		v, err := env.svc.GetView(ctx, it.ID, 1)
		require.NoError(t, err)

		require.NotNil(t, v.LastBooking)
		assert.Equal(t, int64(3), v.LastBooking.ID)
		require.NotNil(t, v.NextBooking)
		assert.Equal(t, int64(4), v.NextBooking.ID)
	})

	t.Run("Non-Owner Sees No Bookings", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)
		env.bookings.last = &BookingRef{ID: 3, BookerID: 2}
		env.bookings.next = &BookingRef{ID: 4, BookerID: 2}

		v, err := env.svc.GetView(ctx, it.ID, 2)
		require.NoError(t, err)

		assert.Nil(t, v.LastBooking)
		assert.Nil(t, v.NextBooking)
	})

	t.Run("Comments Always Present", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		v, err := env.svc.GetView(ctx, it.ID, 2)
		require.NoError(t, err)
		assert.NotNil(t, v.Comments)
		assert.Empty(t, v.Comments)
	})

	t.Run("Unknown Viewer", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		_, err := env.svc.GetView(ctx, it.ID, 99)
		requireAppError(t, err, http.StatusNotFound, "User with id = 99 doesn't exist")
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	t.Run("Blank Text Returns Empty", func(t *testing.T) {
		env := newTestEnv()

		items, err := env.svc.Search(ctx, "   ", 10, 0)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Matches Available Items", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.svc.Create(ctx, CreateRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)}, 1)
		require.NoError(t, err)

		items, err := env.svc.Search(ctx, "drill", 10, 0)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, env *testEnv) *Item {
		t.Helper()
		it, err := env.svc.Create(ctx, CreateRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)}, 1)
		require.NoError(t, err)
		return it
	}

	t.Run("Happy Path", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)
		env.bookings.completed[2] = true

		cm, err := env.svc.CreateComment(ctx, it.ID, 2, "Great drill")
		require.NoError(t, err)

		assert.Equal(t, "viewer", cm.AuthorName)
		assert.Equal(t, it.ID, cm.ItemID)
		assert.NotZero(t, cm.ID)
	})

	t.Run("No Completed Booking", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)

		_, err := env.svc.CreateComment(ctx, it.ID, 2, "Great drill")
		requireAppError(t, err, http.StatusBadRequest, "The user has not used the item")
	})

	t.Run("Blank Text", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)
		env.bookings.completed[2] = true

		_, err := env.svc.CreateComment(ctx, it.ID, 2, "   ")
		requireAppError(t, err, http.StatusBadRequest, "Comment data not validated")
	})

	t.Run("Comment Shows Up In View", func(t *testing.T) {
		env := newTestEnv()
		it := seed(t, env)
		env.bookings.completed[2] = true

		_, err := env.svc.CreateComment(ctx, it.ID, 2, "Great drill")
		require.NoError(t, err)

		v, err := env.svc.GetView(ctx, it.ID, 2)
		require.NoError(t, err)
		require.Len(t, v.Comments, 1)
		assert.Equal(t, "Great drill", v.Comments[0].Text)
	})
}
