package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

// UserRepo stores registered users. Lookups return (nil, nil) when nothing matches.
type UserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
}

// PostRepo stores blog posts. Lookups return (nil, nil) when nothing matches.
type PostRepo interface {
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// Add assigns the post a fresh id and sets both timestamps to now.
	Add(ctx context.Context, post *models.Post) error
	// Update merges patch over the stored post and bumps UpdatedAt.
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	// Delete reports whether a post was removed. Comments are left in place.
	Delete(ctx context.Context, id string) (bool, error)
}

// CommentRepo stores comments. The referenced post is never checked.
type CommentRepo interface {
	// FindByPostID returns the comments of one post, oldest first.
	FindByPostID(ctx context.Context, postID string) ([]*models.Comment, error)
	Add(ctx context.Context, comment *models.Comment) error
}

// Seeder loads records verbatim, keeping their ids and timestamps.
type Seeder interface {
	Seed(ctx context.Context, posts []models.Post, comments []models.Comment) error
}

type Database struct {
	userRepo    UserRepo
	postRepo    PostRepo
	commentRepo CommentRepo
	seeder      Seeder
	close       func() error
}

// Accessor methods for each repository

func (d Database) UserRepo() UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() PostRepo {
	return d.postRepo
}

func (d Database) CommentRepo() CommentRepo {
	return d.commentRepo
}

func (d Database) Seed(ctx context.Context, posts []models.Post, comments []models.Comment) error {
	return d.seeder.Seed(ctx, posts, comments)
}

// Close releases the backing store, if it holds anything.
func (d Database) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// Open builds the Database for the given DB_TYPE: "memory" (the default) or "sqlite".
func Open(kind string, opts ...Option) (Database, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "memory":
		return NewMemory(opts...), nil
	case "sqlite":
		db, err := OpenSQLite("")
		if err != nil {
			return Database{}, err
		}
		d, err := NewSQL(db, opts...)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return Database{}, err
		}
		return d, nil
	default:
		return Database{}, fmt.Errorf("unsupported DB_TYPE %q", kind)
	}
}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock replaces the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
