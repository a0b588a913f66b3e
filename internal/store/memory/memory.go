// Package memory is the in-memory Store used by tests and by deployments
// that run without a database. All state lives in maps guarded by a single
// RWMutex; records are copied on the way in and out so callers never share
// memory with the store.
package memory

import (
	"sync"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

type Store struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	sessions   map[string]domain.Session
	products   map[string]domain.Product
	categories map[string]domain.ProductCategory
	orders     map[string]domain.Order
	lines      map[string]domain.OrderProduct
}

func New() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		sessions:   make(map[string]domain.Session),
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.ProductCategory),
		orders:     make(map[string]domain.Order),
		lines:      make(map[string]domain.OrderProduct),
	}
}

// copyUser clones u, including the level pointer target.
func copyUser(u domain.User) *domain.User {
	out := u
	if u.Level != nil {
		lvl := *u.Level
		out.Level = &lvl
	}
	return &out
}

func userOut(u domain.User, o store.Options) *domain.User {
	out := copyUser(u)
	if o.Protected {
		return domain.ProtectUser(out)
	}
	return out
}

func productOut(p domain.Product, o store.Options) *domain.Product {
	out := p
	if o.Protected {
		return domain.ProtectProduct(&out)
	}
	return &out
}

func orderOut(o domain.Order, opts store.Options) *domain.Order {
	out := o
	if opts.Protected {
		return domain.ProtectOrder(&out)
	}
	return &out
}
