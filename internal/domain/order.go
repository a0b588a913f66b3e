package domain

import "github.com/shopspring/decimal"

// OrderStatus marks an order as an open cart or a finalized purchase.
type OrderStatus string

const (
	OrderActive   OrderStatus = "active"
	OrderInactive OrderStatus = "inactive"
)

func (s OrderStatus) Valid() bool {
	return s == OrderActive || s == OrderInactive
}

// Order is a user's cart or past purchase. A user has at most one active
// order at a time.
type Order struct {
	ID     string      `json:"id" gorm:"type:uuid;primaryKey"`
	Status OrderStatus `json:"status" gorm:"not null"`
	UserID string      `json:"userId,omitempty" gorm:"type:uuid;index;not null"`
}

// OrderProduct is one line of an order. Identity is effectively
// (OrderID, ProductID): adding the same product to the same order again
// bumps Quantity instead of creating a second line.
type OrderProduct struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	Quantity  int    `json:"quantity" gorm:"not null"`
	OrderID   string `json:"orderId" gorm:"type:uuid;uniqueIndex:idx_order_line;not null"`
	ProductID string `json:"productId" gorm:"type:uuid;uniqueIndex:idx_order_line;not null"`
}

// OrderItem is the catalog-facing view of an order line returned by the
// cart operations.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
