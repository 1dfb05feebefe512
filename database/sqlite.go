package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

// gormLogWriter routes GORM's logger through zerolog.
type gormLogWriter struct {
	logger zerolog.Logger
}

func (w gormLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// OpenSQLite opens a private in-memory SQLite database. The name only has to be unique
// within the process; an empty name gets a random one. Nothing is written to disk and
// the data lives as long as the returned handle.
func OpenSQLite(name string) (*gorm.DB, error) {
	if name == "" {
		name = uuid.NewString()
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)

	newLogger := logger.New(
		gormLogWriter{log.With().Str("component", "gorm").Logger()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  newLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQL returns a Database backed by db, migrating the schema first.
func NewSQL(db *gorm.DB, opts ...Option) (Database, error) {
	o := buildOptions(opts)

	if err := models.AutoMigrate(db); err != nil {
		return Database{}, err
	}

	mismatches, err := models.ColumnMismatches(db)
	if err != nil {
		return Database{}, err
	}
	for table, columns := range mismatches {
		log.Warn().Str("table", table).Strs("columns", columns).Msg("columns not mapped by any model field")
	}

	return Database{
		userRepo:    newSQLUserRepo(db, o),
		postRepo:    newSQLPostRepo(db, o),
		commentRepo: newSQLCommentRepo(db, o),
		seeder:      sqlSeeder{db: db},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

type sqlSeeder struct {
	db *gorm.DB
}

func (s sqlSeeder) Seed(ctx context.Context, posts []models.Post, comments []models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range posts {
			p := posts[i].Clone()
			if p.UpdatedAt.IsZero() {
				p.UpdatedAt = p.CreatedAt
			}
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("seed post %s: %w", p.ID, err)
			}
		}
		for i := range comments {
			c := comments[i]
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed comment %s: %w", c.ID, err)
			}
		}
		return nil
	})
}
