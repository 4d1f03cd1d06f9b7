package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"Inkwell/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

const postColumns = `id, title, content, author_id, created_at, updated_at`

// All retrieves every post ordered by creation time
func (r *postgresPostRepo) All(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*posts.Post{}
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan post: %w", scanErr)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Find retrieves a post by id
func (r *postgresPostRepo) Find(ctx context.Context, id string) (*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1
	`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// Create inserts a new post; the database sets both timestamps
func (r *postgresPostRepo) Create(ctx context.Context, req posts.CreatePostRequest, authorID string) (*posts.Post, error) {
	query := `
		INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	post := &posts.Post{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.AuthorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// Update merges the supplied fields and refreshes updated_at in one statement
func (r *postgresPostRepo) Update(ctx context.Context, id string, req posts.UpdatePostRequest) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET title = COALESCE($2, title),
			content = COALESCE($3, content),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, req.Title, req.Content))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete removes a post, returning ErrNotFound when no row matched
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var post posts.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}
