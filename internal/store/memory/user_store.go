package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func (s *Store) AddUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *copyUser(*user)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.users[rec.ID] = rec
	return userOut(rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, nil
	}
	rec := *copyUser(*user)
	s.users[rec.ID] = rec
	return userOut(rec, store.Resolve(opts)), nil
}

// DeleteUser removes the user and cascades to their sessions, orders, and
// those orders' lines.
func (s *Store) DeleteUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	delete(s.users, id)

	for sid, sess := range s.sessions {
		if sess.UserID == id {
			delete(s.sessions, sid)
		}
	}
	for oid, order := range s.orders {
		if order.UserID != id {
			continue
		}
		delete(s.orders, oid)
		for lid, line := range s.lines {
			if line.OrderID == oid {
				delete(s.lines, lid)
			}
		}
	}
	return userOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return userOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := store.Resolve(opts)
	out := make([]*domain.User, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, userOut(rec, o))
	}
	return out, nil
}

func (s *Store) DeleteAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := store.Resolve(opts)
	out := make([]*domain.User, 0, len(s.users))
	for id, rec := range s.users {
		out = append(out, userOut(rec, o))
		delete(s.users, id)
	}
	return out, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string, opts ...store.Option) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.users {
		if rec.Username == username {
			return userOut(rec, store.Resolve(opts)), nil
		}
	}
	return nil, nil
}

// Authenticate returns nil for an unknown username and for a wrong password
// alike; callers cannot distinguish the two through this method.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.users {
		if rec.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)) != nil {
			return nil, nil
		}
		return copyUser(rec), nil
	}
	return nil, nil
}
