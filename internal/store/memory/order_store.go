package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

func (s *Store) AddOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *order
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.orders[rec.ID] = rec
	return orderOut(rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return nil, nil
	}
	rec := *order
	s.orders[rec.ID] = rec
	return orderOut(rec, store.Resolve(opts)), nil
}

// DeleteOrder removes the order and its lines.
func (s *Store) DeleteOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	delete(s.orders, id)
	s.deleteLinesLocked(id)
	return orderOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return orderOut(rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := store.Resolve(opts)
	out := make([]*domain.Order, 0, len(s.orders))
	for _, rec := range s.orders {
		out = append(out, orderOut(rec, o))
	}
	return out, nil
}

// DeleteAllOrders removes every order and its lines, same as deleting each
// one individually.
func (s *Store) DeleteAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := store.Resolve(opts)
	out := make([]*domain.Order, 0, len(s.orders))
	for id, rec := range s.orders {
		out = append(out, orderOut(rec, o))
		delete(s.orders, id)
		s.deleteLinesLocked(id)
	}
	return out, nil
}

func (s *Store) GetOrdersForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := store.Resolve(opts)
	var out []*domain.Order
	for _, rec := range s.orders {
		if rec.UserID == userID {
			out = append(out, orderOut(rec, o))
		}
	}
	return out, nil
}

// GetActiveOrderForUser returns the user's open cart, creating one when none
// exists. A user never ends up with two active orders through this path.
func (s *Store) GetActiveOrderForUser(ctx context.Context, userID string, opts ...store.Option) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.orders {
		if rec.UserID == userID && rec.Status == domain.OrderActive {
			return orderOut(rec, store.Resolve(opts)), nil
		}
	}

	rec := domain.Order{
		ID:     uuid.New().String(),
		Status: domain.OrderActive,
		UserID: userID,
	}
	s.orders[rec.ID] = rec
	return orderOut(rec, store.Resolve(opts)), nil
}

// GetUserOrder reads as missing both when the order does not exist and when
// it belongs to a different user.
func (s *Store) GetUserOrder(ctx context.Context, orderID, userID string, opts ...store.Option) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.orders[orderID]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	return orderOut(rec, store.Resolve(opts)), nil
}

func (s *Store) DeleteAllOrdersForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := store.Resolve(opts)
	var out []*domain.Order
	for id, rec := range s.orders {
		if rec.UserID != userID {
			continue
		}
		out = append(out, orderOut(rec, o))
		delete(s.orders, id)
		s.deleteLinesLocked(id)
	}
	return out, nil
}

func (s *Store) AddProductToOrder(ctx context.Context, quantity int, orderID, productID string) (*domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, nil
	}

	for id, line := range s.lines {
		if line.OrderID == orderID && line.ProductID == productID {
			line.Quantity += quantity
			s.lines[id] = line
			return &domain.OrderItem{Name: product.Name, Quantity: line.Quantity, Price: product.Price}, nil
		}
	}

	line := domain.OrderProduct{
		ID:        uuid.New().String(),
		Quantity:  quantity,
		OrderID:   orderID,
		ProductID: productID,
	}
	s.lines[line.ID] = line
	return &domain.OrderItem{Name: product.Name, Quantity: quantity, Price: product.Price}, nil
}

// RemoveProductFromOrder drops the whole line and reports its accumulated
// quantity, never a partial decrement.
func (s *Store) RemoveProductFromOrder(ctx context.Context, orderID, productID string) (*domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, line := range s.lines {
		if line.OrderID != orderID || line.ProductID != productID {
			continue
		}
		delete(s.lines, id)
		item := domain.OrderItem{Quantity: line.Quantity}
		if product, ok := s.products[productID]; ok {
			item.Name = product.Name
			item.Price = product.Price
		}
		return &item, nil
	}
	return nil, nil
}

func (s *Store) GetProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.OrderItem
	for _, line := range s.lines {
		if line.OrderID != orderID {
			continue
		}
		product, ok := s.products[line.ProductID]
		if !ok {
			continue
		}
		out = append(out, &domain.OrderItem{Name: product.Name, Quantity: line.Quantity, Price: product.Price})
	}
	return out, nil
}

func (s *Store) DeleteAllProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.OrderProduct
	for id, line := range s.lines {
		if line.OrderID != orderID {
			continue
		}
		removed := line
		out = append(out, &removed)
		delete(s.lines, id)
	}
	return out, nil
}

func (s *Store) GetAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.OrderProduct, 0, len(s.lines))
	for _, line := range s.lines {
		rec := line
		out = append(out, &rec)
	}
	return out, nil
}

func (s *Store) DeleteAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.OrderProduct, 0, len(s.lines))
	for id, line := range s.lines {
		rec := line
		out = append(out, &rec)
		delete(s.lines, id)
	}
	return out, nil
}

// deleteLinesLocked removes every line of an order; callers hold the write
// lock.
func (s *Store) deleteLinesLocked(orderID string) {
	for id, line := range s.lines {
		if line.OrderID == orderID {
			delete(s.lines, id)
		}
	}
}
