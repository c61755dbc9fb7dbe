package item

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository interface {
	Create(ctx context.Context, cm *Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]Comment, error)
}

type pgxCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgxCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgxCommentRepository{pool: pool}
}

func (r *pgxCommentRepository) Create(ctx context.Context, cm *Comment) error {
	// created is assigned by the server, not the caller
	const query = `
		INSERT INTO public.comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, now())
		RETURNING id, created
	`

	err := r.pool.QueryRow(ctx, query, cm.Text, cm.ItemID, cm.AuthorID).
		Scan(&cm.ID, &cm.Created)
	if err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]Comment, error) {
	const query = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}
