package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const itemColumns = "id, name, description, available, owner_id, request_id"

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	const query = `
		INSERT INTO public.items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM public.items WHERE id = $1`

	var it Item
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound(id)
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE public.items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return NotFound(it.ID)
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM public.items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items by owner failed: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *pgxRepository) ListByRequest(ctx context.Context, requestID int64) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM public.items
		WHERE request_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list items by request failed: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	pattern := "%" + text + "%"
	sql, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search items failed: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*Item, error) {
	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
