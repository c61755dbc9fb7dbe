package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shareit-backend/internal/item"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// UpdateStatus transitions the booking's status with a compare-and-set on
	// the status observed by the caller. Zero rows matched means another
	// writer got there first and yields ErrConcurrentUpdate.
	UpdateStatus(ctx context.Context, id int64, observed, next Status) error

	// List returns bookings partitioned by Filter.State relative to now,
	// ordered by start descending.
	List(ctx context.Context, f Filter, now time.Time) ([]*Booking, error)

	// LastForItem returns the most recent approved booking started before now, or nil.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingRef, error)
	// NextForItem returns the earliest approved booking starting after now, or nil.
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingRef, error)
	// CompletedExists reports whether the user has a booking on the item that
	// ended before now. Status is intentionally not filtered: a rejected
	// booking whose end has passed still counts, matching historical behavior.
	CompletedExists(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	const query = `
		INSERT INTO public.bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	const query = `
		SELECT b.id, b.start_date, b.end_date, b.status,
			b.item_id, i.name, i.owner_id,
			b.booker_id, u.name
		FROM public.bookings b
		JOIN public.items i ON b.item_id = i.id
		JOIN public.users u ON b.booker_id = u.id
		WHERE b.id = $1
	`

	var b Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound(id)
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, observed, next Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	ct, err := r.pool.Exec(ctx, query, next, id, observed)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter, now time.Time) ([]*Booking, error) {
	sql, args, err := buildListQuery(f, now)
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

// buildListQuery assembles the partitioned booking list query. The time
// predicates all compare against the single now captured by the caller, so
// PAST/CURRENT/FUTURE stay mutually consistent within one request.
func buildListQuery(f Filter, now time.Time) (string, []any, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := psql.Select(
		"b.id", "b.start_date", "b.end_date", "b.status",
		"b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")

	if f.BookerID != 0 {
		query = query.Where(squirrel.Eq{"b.booker_id": f.BookerID})
	}
	if f.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"i.owner_id": f.OwnerID})
	}

	switch f.State {
	case StateFuture:
		query = query.Where(squirrel.Gt{"b.start_date": now})
	case StatePast:
		query = query.Where(squirrel.Lt{"b.end_date": now})
	case StateCurrent:
		query = query.Where(squirrel.Lt{"b.start_date": now}).
			Where(squirrel.Gt{"b.end_date": now})
	case StateWaiting, StateRejected:
		query = query.Where(squirrel.Eq{"b.status": string(f.State)})
	}

	query = query.OrderBy("b.start_date DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	return query.ToSql()
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM public.bookings
		WHERE item_id = $1 AND start_date < $2 AND status = 'APPROVED'
		ORDER BY end_date DESC
		LIMIT 1
	`
	return r.bookingRef(ctx, query, itemID, now)
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM public.bookings
		WHERE item_id = $1 AND start_date > $2 AND status = 'APPROVED'
		ORDER BY start_date
		LIMIT 1
	`
	return r.bookingRef(ctx, query, itemID, now)
}

func (r *pgxRepository) bookingRef(ctx context.Context, query string, itemID int64, now time.Time) (*item.BookingRef, error) {
	var ref item.BookingRef
	err := r.pool.QueryRow(ctx, query, itemID, now).Scan(&ref.ID, &ref.BookerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking ref failed: %w", err)
	}
	return &ref, nil
}

func (r *pgxRepository) CompletedExists(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND end_date < $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, userID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}
