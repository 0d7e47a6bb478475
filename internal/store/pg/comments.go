package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gulcan00/blog-api/internal/store"
)

type commentRepo struct {
	pool *pgxpool.Pool
}

const commentColumns = `id, content, post_id, user_id, created_at`

func scanComment(row pgx.Row) (*store.Comment, error) {
	var c store.Comment
	err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]store.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE post_id = $1 ORDER BY created_at DESC`, commentColumns)
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []store.Comment
	for rows.Next() {
		var c store.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*store.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1`, commentColumns)
	return scanComment(r.pool.QueryRow(ctx, query, id))
}

func (r *commentRepo) Create(ctx context.Context, postID, userID, content string) (*store.Comment, error) {
	query := fmt.Sprintf(`
		INSERT INTO comments (id, content, post_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, commentColumns)
	return scanComment(r.pool.QueryRow(ctx, query, uuid.NewString(), content, postID, userID))
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
