package usecase

import "github.com/ray/storefront-backend/internal/store"

// Usecases bundles the per-family wrappers around one injected store.
type Usecases struct {
	Users    *Users
	Products *Products
	Orders   *Orders
}

func New(st store.Store) *Usecases {
	return &Usecases{
		Users:    NewUsers(st),
		Products: NewProducts(st),
		Orders:   NewOrders(st),
	}
}
