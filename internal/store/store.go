package store

import (
	"context"

	"github.com/ray/storefront-backend/internal/domain"
)

// Store is the uniform persistence contract for the three core entity
// families. Every read/write takes optional call options; Protected()
// requests the redacted projection on the returned records.
//
// A missing record is reported as a nil result with a nil error, never as an
// error. Errors are reserved for backend failures (see ErrStore).
type Store interface {
	AddUser(ctx context.Context, user *domain.User, opts ...Option) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User, opts ...Option) (*domain.User, error)
	DeleteUser(ctx context.Context, id string, opts ...Option) (*domain.User, error)
	GetUser(ctx context.Context, id string, opts ...Option) (*domain.User, error)
	GetAllUsers(ctx context.Context, opts ...Option) ([]*domain.User, error)
	DeleteAllUsers(ctx context.Context, opts ...Option) ([]*domain.User, error)

	AddProduct(ctx context.Context, product *domain.Product, opts ...Option) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product, opts ...Option) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string, opts ...Option) (*domain.Product, error)
	GetProduct(ctx context.Context, id string, opts ...Option) (*domain.Product, error)
	GetAllProducts(ctx context.Context, opts ...Option) ([]*domain.Product, error)
	DeleteAllProducts(ctx context.Context, opts ...Option) ([]*domain.Product, error)

	AddOrder(ctx context.Context, order *domain.Order, opts ...Option) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order, opts ...Option) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string, opts ...Option) (*domain.Order, error)
	GetOrder(ctx context.Context, id string, opts ...Option) (*domain.Order, error)
	GetAllOrders(ctx context.Context, opts ...Option) ([]*domain.Order, error)
	DeleteAllOrders(ctx context.Context, opts ...Option) ([]*domain.Order, error)
}

// Accounts is the optional account-lookup capability. Authenticate returns
// nil for a wrong username and for a wrong password alike, so the two cases
// cannot be told apart through this call.
type Accounts interface {
	GetUserByUsername(ctx context.Context, username string, opts ...Option) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// Sessions is the optional session capability. AddSession atomically
// replaces any existing session for the user, keeping at most one session
// per user at all times.
type Sessions interface {
	AddSession(ctx context.Context, secret, userID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionForUser(ctx context.Context, userID string) (*domain.Session, error)
	GetAllSessions(ctx context.Context) ([]*domain.Session, error)
	DeleteAllSessions(ctx context.Context) ([]*domain.Session, error)
}

// Categories is the optional product-category capability. Category deletion
// never cascades to products; the reference from product to category is weak.
type Categories interface {
	AddCategory(ctx context.Context, category *domain.ProductCategory) (*domain.ProductCategory, error)
	DeleteCategory(ctx context.Context, id string) (*domain.ProductCategory, error)
	GetCategory(ctx context.Context, id string) (*domain.ProductCategory, error)
	GetAllCategories(ctx context.Context) ([]*domain.ProductCategory, error)
	DeleteAllCategories(ctx context.Context) ([]*domain.ProductCategory, error)
	GetProductsByCategory(ctx context.Context, categoryID string, opts ...Option) ([]*domain.Product, error)
}

// Carts is the optional cart/order-line capability.
//
// GetActiveOrderForUser is get-or-create: a user always has exactly one
// active order after calling it. GetUserOrder must match both the order id
// and the owner; an order belonging to someone else reads as missing.
// AddProductToOrder upserts on (orderID, productID), summing quantities, and
// returns nil when the product is unknown. RemoveProductFromOrder reports
// the full accumulated quantity of the removed line.
type Carts interface {
	GetOrdersForUser(ctx context.Context, userID string, opts ...Option) ([]*domain.Order, error)
	GetActiveOrderForUser(ctx context.Context, userID string, opts ...Option) (*domain.Order, error)
	GetUserOrder(ctx context.Context, orderID, userID string, opts ...Option) (*domain.Order, error)
	DeleteAllOrdersForUser(ctx context.Context, userID string, opts ...Option) ([]*domain.Order, error)
	AddProductToOrder(ctx context.Context, quantity int, orderID, productID string) (*domain.OrderItem, error)
	RemoveProductFromOrder(ctx context.Context, orderID, productID string) (*domain.OrderItem, error)
	GetProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error)
	DeleteAllProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderProduct, error)
	GetAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error)
	DeleteAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error)
}
