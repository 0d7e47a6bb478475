// Package memory implements the store contracts in process memory.
// Used for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gulcan00/blog-api/internal/store"
)

// Store is the in-memory store. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	users    map[string]store.User
	posts    map[string]store.Post
	comments map[string]store.Comment

	now func() time.Time
}

// New builds an empty memory store.
func New() *Store {
	return &Store{
		users:    make(map[string]store.User),
		posts:    make(map[string]store.Post),
		comments: make(map[string]store.Comment),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() store.UserRepository       { return (*userRepo)(s) }
func (s *Store) Posts() store.PostRepository       { return (*postRepo)(s) }
func (s *Store) Comments() store.CommentRepository { return (*commentRepo)(s) }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)

// ─── Users ───

type userRepo Store

func (r *userRepo) GetByID(_ context.Context, id string) (*store.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*store.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *userRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Create(_ context.Context, in store.CreateUserInput) (*store.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == in.Email || u.Username == in.Username {
			return nil, store.ErrDuplicate
		}
	}
	now := r.now()
	u := store.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         store.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	out := u
	return &out, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// SetRole overrides a user's role. Test helper; postgres does this via
// migration or manual update.
func (s *Store) SetRole(id string, role store.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Role = role
		s.users[id] = u
	}
}

// ─── Posts ───

type postRepo Store

func (r *postRepo) List(_ context.Context) ([]store.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]store.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *postRepo) GetByID(_ context.Context, id string) (*store.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (r *postRepo) Create(_ context.Context, title, content, authorID string) (*store.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	p := store.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.posts[p.ID] = p
	out := p
	return &out, nil
}

func (r *postRepo) Update(_ context.Context, id string, in store.UpdatePostInput) (*store.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Title = in.Title
	p.Content = in.Content
	p.UpdatedAt = r.now()
	r.posts[id] = p
	out := p
	return &out, nil
}

func (r *postRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.posts, id)
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

// ─── Comments ───

type commentRepo Store

func (r *commentRepo) ListByPost(_ context.Context, postID string) ([]store.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []store.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *commentRepo) GetByID(_ context.Context, id string) (*store.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *commentRepo) Create(_ context.Context, postID, userID, content string) (*store.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := store.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: r.now(),
	}
	r.comments[c.ID] = c
	out := c
	return &out, nil
}

func (r *commentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}
