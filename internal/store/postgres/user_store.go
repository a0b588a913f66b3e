package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func userOut(u *domain.User, o store.Options) *domain.User {
	if o.Protected {
		return domain.ProtectUser(u)
	}
	return u
}

func (s *Store) AddUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	rec := *user
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return userOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	var existing domain.User
	err := s.db.WithContext(ctx).First(&existing, "id = ?", user.ID).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}

	rec := *user
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return userOut(&rec, store.Resolve(opts)), nil
}

// DeleteUser cascades to the user's sessions, orders, and order lines in one
// transaction.
func (s *Store) DeleteUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	var rec domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Session{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM order_products WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Order{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, "id = ?", id).Error
	})
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return userOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	var rec domain.User
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return userOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	var recs []*domain.User
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = userOut(rec, o)
	}
	return recs, nil
}

func (s *Store) DeleteAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	var recs []*domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.User{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = userOut(rec, o)
	}
	return recs, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string, opts ...store.Option) (*domain.User, error) {
	var rec domain.User
	err := s.db.WithContext(ctx).First(&rec, "username = ?", username).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return userOut(&rec, store.Resolve(opts)), nil
}

// Authenticate returns nil for an unknown username and for a wrong password
// alike.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	var rec domain.User
	err := s.db.WithContext(ctx).First(&rec, "username = ?", username).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)) != nil {
		return nil, nil
	}
	return &rec, nil
}
