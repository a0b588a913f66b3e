package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

func (s *Store) AddProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *product
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.products[rec.ID] = rec
	return productOut(rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return nil, nil
	}
	rec := *product
	s.products[rec.ID] = rec
	return productOut(rec, store.Resolve(opts)), nil
}

// DeleteProduct does not touch order lines referencing the product; lines
// are cleaned up by order deletion only.
func (s *Store) DeleteProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	delete(s.products, id)
	return productOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return productOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := store.Resolve(opts)
	out := make([]*domain.Product, 0, len(s.products))
	for _, rec := range s.products {
		out = append(out, productOut(rec, o))
	}
	return out, nil
}

func (s *Store) DeleteAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := store.Resolve(opts)
	out := make([]*domain.Product, 0, len(s.products))
	for id, rec := range s.products {
		out = append(out, productOut(rec, o))
		delete(s.products, id)
	}
	return out, nil
}

func (s *Store) GetProductsByCategory(ctx context.Context, categoryID string, opts ...store.Option) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := store.Resolve(opts)
	var out []*domain.Product
	for _, rec := range s.products {
		if rec.CategoryID == categoryID {
			out = append(out, productOut(rec, o))
		}
	}
	return out, nil
}

func (s *Store) AddCategory(ctx context.Context, category *domain.ProductCategory) (*domain.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *category
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.categories[rec.ID] = rec
	out := rec
	return &out, nil
}

// DeleteCategory leaves products pointing at the removed category; the
// reference is weak and never enforced here.
func (s *Store) DeleteCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	delete(s.categories, id)
	return &rec, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *Store) GetAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ProductCategory, 0, len(s.categories))
	for _, rec := range s.categories {
		cat := rec
		out = append(out, &cat)
	}
	return out, nil
}

func (s *Store) DeleteAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ProductCategory, 0, len(s.categories))
	for id, rec := range s.categories {
		cat := rec
		out = append(out, &cat)
		delete(s.categories, id)
	}
	return out, nil
}
