// Package store defines the domain repository contracts.
//
// These interfaces represent business contracts, independent of the
// underlying storage. Concrete implementations live in
// internal/store/pg (PostgreSQL) and internal/store/memory (tests/dev).
//
// Conventions:
//   - Context is always the first parameter
//   - Domain errors are in errors.go (ErrNotFound, ErrDuplicate)
package store

import (
	"context"
	"time"
)

// Role is the access level attached to a user.
// Comparison is exact membership, there is no hierarchy between roles.
type Role string

const (
	// RoleUser is the default unprivileged role assigned at registration.
	RoleUser Role = "USER"
	// RoleAuthor may create and manage posts.
	RoleAuthor Role = "AUTHOR"
)

// User is an identity record. PasswordHash never leaves the store and
// password packages; response DTOs must not carry it.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Post is a blog entry owned by an author.
type Post struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment belongs to a post and a user.
type Comment struct {
	ID        string
	Content   string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// CreateUserInput contains the data to create a user.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository defines operations over users.
type UserRepository interface {
	// GetByID looks a user up by ID. Returns ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail looks a user up by (normalized) email.
	// Returns ErrNotFound if it does not exist.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmailOrUsername reports whether any user already holds the
	// given email or username. Single combined query, used by registration.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// Create creates a user with the default role.
	// Returns ErrDuplicate if email or username is already taken.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// Delete removes a user by ID. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// UpdatePostInput contains the mutable fields of a post.
type UpdatePostInput struct {
	Title   string
	Content string
}

// PostRepository defines operations over posts.
type PostRepository interface {
	// List returns all posts, newest first.
	List(ctx context.Context) ([]Post, error)

	// GetByID returns ErrNotFound if the post does not exist.
	GetByID(ctx context.Context, id string) (*Post, error)

	// Create stores a new post for the given author.
	Create(ctx context.Context, title, content, authorID string) (*Post, error)

	// Update replaces title and content. Returns ErrNotFound if absent.
	Update(ctx context.Context, id string, input UpdatePostInput) (*Post, error)

	// Delete removes a post. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines operations over comments.
type CommentRepository interface {
	// ListByPost returns the comments of a post, newest first.
	ListByPost(ctx context.Context, postID string) ([]Comment, error)

	// GetByID returns ErrNotFound if the comment does not exist.
	GetByID(ctx context.Context, id string) (*Comment, error)

	// Create stores a new comment by userID on postID.
	Create(ctx context.Context, postID, userID, content string) (*Comment, error)

	// Delete removes a comment. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories plus a health probe.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository

	// Ping verifies connectivity to the backing datastore.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close() error
}
