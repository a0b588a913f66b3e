package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
)

// AddSession replaces any existing session for the user before creating the
// new one, so a user never holds two sessions.
func (s *Store) AddSession(ctx context.Context, secret, userID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}

	rec := domain.Session{
		ID:     uuid.New().String(),
		Secret: secret,
		UserID: userID,
	}
	s.sessions[rec.ID] = rec
	out := rec
	return &out, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	delete(s.sessions, id)
	return &rec, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *Store) GetSessionForUser(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.sessions {
		if rec.UserID == userID {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) GetAllSessions(ctx context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, rec := range s.sessions {
		sess := rec
		out = append(out, &sess)
	}
	return out, nil
}

func (s *Store) DeleteAllSessions(ctx context.Context) ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for id, rec := range s.sessions {
		sess := rec
		out = append(out, &sess)
		delete(s.sessions, id)
	}
	return out, nil
}
