package usecase

import (
	"context"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

// Orders wraps the order and cart store operations.
type Orders struct {
	store store.Store
}

func NewOrders(st store.Store) *Orders {
	return &Orders{store: st}
}

func (o *Orders) checkStore() error {
	if o.store == nil {
		return ErrStoreNotConfigured
	}
	return nil
}

func (o *Orders) carts(action string) (store.Carts, error) {
	if o.store == nil {
		return nil, ErrStoreNotConfigured
	}
	carts, ok := o.store.(store.Carts)
	if !ok {
		return nil, serverErr("Orders", action, errNoCapability)
	}
	return carts, nil
}

func validateStatus(status domain.OrderStatus) *ValidationError {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: "must be active or inactive"}
	}
	return nil
}

func (o *Orders) Add(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(
		validateStatus(order.Status),
		requireID("userId", order.UserID),
	); err != nil {
		return nil, err
	}
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.AddOrder(ctx, order, opts...)
	if err != nil {
		return nil, serverErr("Orders.Add", "adding order", err)
	}
	return out, nil
}

func (o *Orders) Update(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(
		requireID("id", order.ID),
		validateStatus(order.Status),
		requireID("userId", order.UserID),
	); err != nil {
		return nil, err
	}
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.UpdateOrder(ctx, order, opts...)
	if err != nil {
		return nil, serverErr("Orders.Update", "updating order", err)
	}
	return out, nil
}

func (o *Orders) Delete(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.DeleteOrder(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Orders.Delete", "deleting order", err)
	}
	return out, nil
}

func (o *Orders) Get(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.GetOrder(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Orders.Get", "getting order", err)
	}
	return out, nil
}

func (o *Orders) GetAll(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.GetAllOrders(ctx, opts...)
	if err != nil {
		return nil, serverErr("Orders.GetAll", "getting orders", err)
	}
	return out, nil
}

func (o *Orders) DeleteAll(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	if err := o.checkStore(); err != nil {
		return nil, err
	}
	out, err := o.store.DeleteAllOrders(ctx, opts...)
	if err != nil {
		return nil, serverErr("Orders.DeleteAll", "deleting orders", err)
	}
	return out, nil
}

func (o *Orders) GetForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	if err := firstError(requireID("userId", userID)); err != nil {
		return nil, err
	}
	carts, err := o.carts("getting orders")
	if err != nil {
		return nil, err
	}
	out, err := carts.GetOrdersForUser(ctx, userID, opts...)
	if err != nil {
		return nil, serverErr("Orders.GetForUser", "getting orders", err)
	}
	return out, nil
}

// GetActiveForUser is get-or-create: it never returns nil on success.
func (o *Orders) GetActiveForUser(ctx context.Context, userID string, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(requireID("userId", userID)); err != nil {
		return nil, err
	}
	carts, err := o.carts("getting active order")
	if err != nil {
		return nil, err
	}
	out, err := carts.GetActiveOrderForUser(ctx, userID, opts...)
	if err != nil {
		return nil, serverErr("Orders.GetActiveForUser", "getting active order", err)
	}
	return out, nil
}

// GetUserOrder conflates "no such order" and "not this user's order" into a
// single nil result.
func (o *Orders) GetUserOrder(ctx context.Context, orderID, userID string, opts ...store.Option) (*domain.Order, error) {
	if err := firstError(
		requireID("orderId", orderID),
		requireID("userId", userID),
	); err != nil {
		return nil, err
	}
	carts, err := o.carts("getting order")
	if err != nil {
		return nil, err
	}
	out, err := carts.GetUserOrder(ctx, orderID, userID, opts...)
	if err != nil {
		return nil, serverErr("Orders.GetUserOrder", "getting order", err)
	}
	return out, nil
}

func (o *Orders) DeleteAllForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	if err := firstError(requireID("userId", userID)); err != nil {
		return nil, err
	}
	carts, err := o.carts("deleting orders")
	if err != nil {
		return nil, err
	}
	out, err := carts.DeleteAllOrdersForUser(ctx, userID, opts...)
	if err != nil {
		return nil, serverErr("Orders.DeleteAllForUser", "deleting orders", err)
	}
	return out, nil
}

func (o *Orders) AddProduct(ctx context.Context, quantity int, orderID, productID string) (*domain.OrderItem, error) {
	if err := firstError(
		requireQuantity("quantity", quantity),
		requireID("orderId", orderID),
		requireID("productId", productID),
	); err != nil {
		return nil, err
	}
	carts, err := o.carts("adding product to order")
	if err != nil {
		return nil, err
	}
	out, err := carts.AddProductToOrder(ctx, quantity, orderID, productID)
	if err != nil {
		return nil, serverErr("Orders.AddProduct", "adding product to order", err)
	}
	return out, nil
}

func (o *Orders) RemoveProduct(ctx context.Context, orderID, productID string) (*domain.OrderItem, error) {
	if err := firstError(
		requireID("orderId", orderID),
		requireID("productId", productID),
	); err != nil {
		return nil, err
	}
	carts, err := o.carts("removing product from order")
	if err != nil {
		return nil, err
	}
	out, err := carts.RemoveProductFromOrder(ctx, orderID, productID)
	if err != nil {
		return nil, serverErr("Orders.RemoveProduct", "removing product from order", err)
	}
	return out, nil
}

func (o *Orders) GetProducts(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	if err := firstError(requireID("orderId", orderID)); err != nil {
		return nil, err
	}
	carts, err := o.carts("getting order products")
	if err != nil {
		return nil, err
	}
	out, err := carts.GetProductsInOrder(ctx, orderID)
	if err != nil {
		return nil, serverErr("Orders.GetProducts", "getting order products", err)
	}
	return out, nil
}

func (o *Orders) DeleteAllProducts(ctx context.Context, orderID string) ([]*domain.OrderProduct, error) {
	if err := firstError(requireID("orderId", orderID)); err != nil {
		return nil, err
	}
	carts, err := o.carts("deleting order products")
	if err != nil {
		return nil, err
	}
	out, err := carts.DeleteAllProductsInOrder(ctx, orderID)
	if err != nil {
		return nil, serverErr("Orders.DeleteAllProducts", "deleting order products", err)
	}
	return out, nil
}

func (o *Orders) GetAllLines(ctx context.Context) ([]*domain.OrderProduct, error) {
	carts, err := o.carts("getting order products")
	if err != nil {
		return nil, err
	}
	out, err := carts.GetAllOrderProducts(ctx)
	if err != nil {
		return nil, serverErr("Orders.GetAllLines", "getting order products", err)
	}
	return out, nil
}

func (o *Orders) DeleteAllLines(ctx context.Context) ([]*domain.OrderProduct, error) {
	carts, err := o.carts("deleting order products")
	if err != nil {
		return nil, err
	}
	out, err := carts.DeleteAllOrderProducts(ctx)
	if err != nil {
		return nil, serverErr("Orders.DeleteAllLines", "deleting order products", err)
	}
	return out, nil
}
