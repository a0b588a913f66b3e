package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username  string
	password  string
	firstName string
	lastName  string
	level     domain.UserLevel
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username:  fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:  "testpassword123",
		firstName: "Test",
		lastName:  "User",
		level:     domain.LevelCustomer,
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithLevel(level domain.UserLevel) *UserBuilder {
	b.level = level
	return b
}

// Build creates the user through the store and returns it along with the
// raw password.
func (b *UserBuilder) Build(t *testing.T, st store.Store) (*domain.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user, err := st.AddUser(context.Background(), &domain.User{
		Username:  b.username,
		Password:  string(hashed),
		FirstName: b.firstName,
		LastName:  b.lastName,
		Level:     domain.Levelf(b.level),
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// ProductBuilder creates test products with a builder pattern
type ProductBuilder struct {
	name       string
	price      decimal.Decimal
	categoryID string
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:  fmt.Sprintf("product_%s", uuid.New().String()[:8]),
		price: decimal.NewFromFloat(9.99),
	}
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

func (b *ProductBuilder) WithPrice(price decimal.Decimal) *ProductBuilder {
	b.price = price
	return b
}

func (b *ProductBuilder) WithCategory(categoryID string) *ProductBuilder {
	b.categoryID = categoryID
	return b
}

func (b *ProductBuilder) Build(t *testing.T, st store.Store) *domain.Product {
	t.Helper()

	product, err := st.AddProduct(context.Background(), &domain.Product{
		Name:       b.name,
		Price:      b.price,
		CategoryID: b.categoryID,
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// OrderBuilder creates test orders with a builder pattern
type OrderBuilder struct {
	status domain.OrderStatus
	userID string
}

func NewOrderBuilder(userID string) *OrderBuilder {
	return &OrderBuilder{
		status: domain.OrderActive,
		userID: userID,
	}
}

func (b *OrderBuilder) WithStatus(status domain.OrderStatus) *OrderBuilder {
	b.status = status
	return b
}

func (b *OrderBuilder) Build(t *testing.T, st store.Store) *domain.Order {
	t.Helper()

	order, err := st.AddOrder(context.Background(), &domain.Order{
		Status: b.status,
		UserID: b.userID,
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}
