package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

type SQLUserRepo struct {
	db   *gorm.DB
	opts options
}

func newSQLUserRepo(db *gorm.DB, o options) *SQLUserRepo {
	return &SQLUserRepo{db: db, opts: o}
}

// FindByID returns a user by its ID, or nil if there is none
func (r *SQLUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the earliest registered user with that username
func (r *SQLUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("rowid ASC").
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Add inserts a new user into the database. Usernames are not required to be unique.
func (r *SQLUserRepo) Add(ctx context.Context, user *models.User) error {
	user.ID = r.opts.newID()
	return r.db.WithContext(ctx).Create(user).Error
}
