package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

type SQLCommentRepo struct {
	db   *gorm.DB
	opts options
}

func newSQLCommentRepo(db *gorm.DB, o options) *SQLCommentRepo {
	return &SQLCommentRepo{db: db, opts: o}
}

// FindByPostID returns the comments for a post, oldest first
func (r *SQLCommentRepo) FindByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("rowid ASC").
		Find(&comments).Error
	return comments, err
}

// Add inserts a new comment into the database
func (r *SQLCommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	comment.ID = r.opts.newID()
	comment.CreatedAt = r.opts.now()
	return r.db.WithContext(ctx).Create(comment).Error
}
