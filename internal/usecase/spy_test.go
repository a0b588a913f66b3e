package usecase_test

import (
	"context"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

// spyStore implements only the base Store contract. It counts calls so
// tests can prove the validation gate rejects before any store access, and
// can be primed with an error to exercise the ServerError wrapper. It
// deliberately lacks every optional capability.
type spyStore struct {
	calls int
	err   error
}

func (s *spyStore) touch() error {
	s.calls++
	return s.err
}

func (s *spyStore) AddUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *spyStore) UpdateUser(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *spyStore) DeleteUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	return nil, s.touch()
}

func (s *spyStore) GetUser(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: "spy", Password: "hash", Level: domain.Levelf(domain.LevelCustomer)}, nil
}

func (s *spyStore) GetAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	return nil, s.touch()
}

func (s *spyStore) DeleteAllUsers(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	return nil, s.touch()
}

func (s *spyStore) AddProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *spyStore) UpdateProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *spyStore) DeleteProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	return nil, s.touch()
}

func (s *spyStore) GetProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	return nil, s.touch()
}

func (s *spyStore) GetAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	return nil, s.touch()
}

func (s *spyStore) DeleteAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	return nil, s.touch()
}

func (s *spyStore) AddOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *spyStore) UpdateOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *spyStore) DeleteOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	return nil, s.touch()
}

func (s *spyStore) GetOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	return nil, s.touch()
}

func (s *spyStore) GetAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	return nil, s.touch()
}

func (s *spyStore) DeleteAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	return nil, s.touch()
}
