package database

import (
	"context"
	"sort"
	"sync"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

// NewMemory returns a Database backed by process memory. Every repository operation
// holds a lock for its whole duration, so each one is atomic with respect to the others.
// Records are copied on the way in and out; callers never share memory with the store.
func NewMemory(opts ...Option) Database {
	o := buildOptions(opts)

	users := &memUserRepo{opts: o, byID: map[string]*models.User{}}
	posts := &memPostRepo{opts: o, byID: map[string]*memPost{}}
	comments := &memCommentRepo{opts: o}

	return Database{
		userRepo:    users,
		postRepo:    posts,
		commentRepo: comments,
		seeder:      memSeeder{posts: posts, comments: comments},
	}
}

type memUserRepo struct {
	opts options

	mu    sync.RWMutex
	byID  map[string]*models.User
	order []string
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// FindByUsername returns the earliest registered user with that username.
func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.byID[id]; u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Add(_ context.Context, user *models.User) error {
	user.ID = r.opts.newID()

	r.mu.Lock()
	defer r.mu.Unlock()

	c := *user
	r.byID[c.ID] = &c
	r.order = append(r.order, c.ID)
	return nil
}

type memPost struct {
	post *models.Post
	seq  uint64
}

type memPostRepo struct {
	opts options

	mu   sync.RWMutex
	byID map[string]*memPost
	seq  uint64
}

func (r *memPostRepo) FindAll(_ context.Context) ([]*models.Post, error) {
	// Snapshot under the lock; Update replaces e.post while holding it.
	r.mu.RLock()
	entries := make([]memPost, 0, len(r.byID))
	for _, e := range r.byID {
		entries = append(entries, memPost{post: e.post.Clone(), seq: e.seq})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.seq < b.seq
	})

	posts := make([]*models.Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, e.post)
	}
	return posts, nil
}

func (r *memPostRepo) FindByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return e.post.Clone(), nil
}

func (r *memPostRepo) Add(_ context.Context, post *models.Post) error {
	now := r.opts.now()
	post.ID = r.opts.newID()
	post.CreatedAt = now
	post.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(post.Clone())
	return nil
}

// insert must be called with mu held.
func (r *memPostRepo) insert(post *models.Post) {
	r.seq++
	r.byID[post.ID] = &memPost{post: post, seq: r.seq}
}

func (r *memPostRepo) Update(_ context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, nil
	}

	updated := e.post.Clone()
	patch.Apply(updated)
	updated.ID = e.post.ID
	updated.CreatedAt = e.post.CreatedAt
	updated.UpdatedAt = r.opts.now()

	e.post = updated
	return updated.Clone(), nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

type memCommentRepo struct {
	opts options

	mu       sync.RWMutex
	comments []models.Comment
}

func (r *memCommentRepo) FindByPostID(_ context.Context, postID string) ([]*models.Comment, error) {
	r.mu.RLock()
	matched := make([]*models.Comment, 0)
	for i := range r.comments {
		if r.comments[i].PostID == postID {
			c := r.comments[i]
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *memCommentRepo) Add(_ context.Context, comment *models.Comment) error {
	comment.ID = r.opts.newID()
	comment.CreatedAt = r.opts.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments = append(r.comments, *comment)
	return nil
}

type memSeeder struct {
	posts    *memPostRepo
	comments *memCommentRepo
}

func (s memSeeder) Seed(_ context.Context, posts []models.Post, comments []models.Comment) error {
	s.posts.mu.Lock()
	for i := range posts {
		p := posts[i].Clone()
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		s.posts.insert(p)
	}
	s.posts.mu.Unlock()

	s.comments.mu.Lock()
	s.comments.comments = append(s.comments.comments, comments...)
	s.comments.mu.Unlock()
	return nil
}
