package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"gorm.io/gorm"
)

// AddSession deletes any existing session for the user and creates the new
// one inside a single transaction, so no concurrent request can observe two
// sessions for the same user.
func (s *Store) AddSession(ctx context.Context, secret, userID string) (*domain.Session, error) {
	rec := domain.Session{
		ID:     uuid.New().String(),
		Secret: secret,
		UserID: userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Session{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) (*domain.Session, error) {
	var rec domain.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Session{}, "id = ?", id).Error
	})
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var rec domain.Session
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) GetSessionForUser(ctx context.Context, userID string) (*domain.Session, error) {
	var rec domain.Session
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) GetAllSessions(ctx context.Context) ([]*domain.Session, error) {
	var recs []*domain.Session
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}

func (s *Store) DeleteAllSessions(ctx context.Context) ([]*domain.Session, error) {
	var recs []*domain.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.Session{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}
