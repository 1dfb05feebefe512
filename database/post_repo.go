package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

type SQLPostRepo struct {
	db   *gorm.DB
	opts options
}

func newSQLPostRepo(db *gorm.DB, o options) *SQLPostRepo {
	return &SQLPostRepo{db: db, opts: o}
}

// FindAll returns all posts, newest first. Posts created at the same instant keep insertion order.
func (r *SQLPostRepo) FindAll(ctx context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid ASC").Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID, or nil if there is none
func (r *SQLPostRepo) FindByID(ctx context.Context, id string) (*models.Post, error) {
	return findPost(r.db.WithContext(ctx), id)
}

func findPost(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	err := db.Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post into the database
func (r *SQLPostRepo) Add(ctx context.Context, post *models.Post) error {
	now := r.opts.now()
	post.ID = r.opts.newID()
	post.CreatedAt = now
	post.UpdatedAt = now
	return r.db.WithContext(ctx).Create(post).Error
}

// Update merges patch over an existing post in the database
func (r *SQLPostRepo) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	var updated *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findPost(tx, id)
		if err != nil || existing == nil {
			return err
		}

		createdAt := existing.CreatedAt
		patch.Apply(existing)
		existing.ID = id
		existing.CreatedAt = createdAt
		existing.UpdatedAt = r.opts.now()

		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a post from the database by id
func (r *SQLPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
