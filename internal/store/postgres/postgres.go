// Package postgres is the relational Store implementation, backed by GORM
// over PostgreSQL. Multi-statement sequences with visible intermediate
// states (session replacement, order-line upserts) run inside transactions.
package postgres

import (
	"errors"
	"fmt"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Product{},
		&domain.ProductCategory{},
		&domain.Order{},
		&domain.OrderProduct{},
	)
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// wrap hides driver detail behind the store error sentinel. Record-not-found
// is not an error at this layer and must be mapped to a nil result before
// calling wrap.
func wrap(err error) error {
	return fmt.Errorf("%w: %v", store.ErrStore, err)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
