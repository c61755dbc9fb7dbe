package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	ListByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]*ItemRequest, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	const query = `
		INSERT INTO public.item_requests (description, requester_id, created)
		VALUES ($1, $2, now())
		RETURNING id, created
	`

	err := r.pool.QueryRow(ctx, query, req.Description, req.RequesterID).
		Scan(&req.ID, &req.Created)
	if err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	const query = `
		SELECT id, description, requester_id, created
		FROM public.item_requests
		WHERE id = $1
	`

	var req ItemRequest
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound(id)
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.item_requests WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check item request failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "description", "requester_id", "created").
		From("public.item_requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}

	return r.list(ctx, sql, args)
}

func (r *pgxRepository) ListByOtherRequesters(ctx context.Context, requesterID int64, limit, offset int) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "description", "requester_id", "created").
		From("public.item_requests").
		Where(squirrel.NotEq{"requester_id": requesterID}).
		OrderBy("created DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}

	return r.list(ctx, sql, args)
}

func (r *pgxRepository) list(ctx context.Context, sql string, args []any) ([]*ItemRequest, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var result []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		result = append(result, &req)
	}
	return result, rows.Err()
}
