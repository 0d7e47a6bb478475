package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gulcan00/blog-api/internal/store"
)

type postRepo struct {
	pool *pgxpool.Pool
}

const postColumns = `id, title, content, author_id, created_at, updated_at`

func scanPost(row pgx.Row) (*store.Post, error) {
	var p store.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) List(ctx context.Context) ([]store.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts ORDER BY created_at DESC`, postColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []store.Post
	for rows.Next() {
		var p store.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*store.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *postRepo) Create(ctx context.Context, title, content, authorID string) (*store.Post, error) {
	query := fmt.Sprintf(`
		INSERT INTO posts (id, title, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, postColumns)
	return scanPost(r.pool.QueryRow(ctx, query, uuid.NewString(), title, content, authorID))
}

func (r *postRepo) Update(ctx context.Context, id string, in store.UpdatePostInput) (*store.Post, error) {
	query := fmt.Sprintf(`
		UPDATE posts
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1
		RETURNING %s`, postColumns)
	return scanPost(r.pool.QueryRow(ctx, query, id, in.Title, in.Content))
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
