package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store/memory"
	"github.com/ray/storefront-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersValidationGate(t *testing.T) {
	ctx := context.Background()
	validID := uuid.New().String()

	tests := []struct {
		name      string
		call      func(o *usecase.Orders) error
		wantField string
	}{
		{
			name: "add with bad status",
			call: func(o *usecase.Orders) error {
				_, err := o.Add(ctx, &domain.Order{Status: "pending", UserID: validID})
				return err
			},
			wantField: "status",
		},
		{
			name: "add with malformed user id",
			call: func(o *usecase.Orders) error {
				_, err := o.Add(ctx, &domain.Order{Status: domain.OrderActive, UserID: "u1"})
				return err
			},
			wantField: "userId",
		},
		{
			name: "add product with zero quantity",
			call: func(o *usecase.Orders) error {
				_, err := o.AddProduct(ctx, 0, validID, validID)
				return err
			},
			wantField: "quantity",
		},
		{
			name: "add product with malformed order id",
			call: func(o *usecase.Orders) error {
				_, err := o.AddProduct(ctx, 1, "nope", validID)
				return err
			},
			wantField: "orderId",
		},
		{
			name: "add product with malformed product id",
			call: func(o *usecase.Orders) error {
				_, err := o.AddProduct(ctx, 1, validID, "nope")
				return err
			},
			wantField: "productId",
		},
		{
			name: "user order with malformed order id",
			call: func(o *usecase.Orders) error {
				_, err := o.GetUserOrder(ctx, "bad", validID)
				return err
			},
			wantField: "orderId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyStore{}
			orders := usecase.NewOrders(spy)

			err := tt.call(orders)

			var verr *usecase.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Zero(t, spy.calls, "store must not be touched on invalid input")
		})
	}
}

func TestOrdersMissingCapability(t *testing.T) {
	// spyStore implements only the base contract; every cart operation
	// must surface the generic server error.
	orders := usecase.NewOrders(&spyStore{})
	ctx := context.Background()
	id := uuid.New().String()

	var serr *usecase.ServerError

	_, err := orders.GetActiveForUser(ctx, id)
	require.ErrorAs(t, err, &serr)

	_, err = orders.AddProduct(ctx, 1, id, id)
	require.ErrorAs(t, err, &serr)

	_, err = orders.GetAllLines(ctx)
	require.ErrorAs(t, err, &serr)
}

func TestOrdersUpdateMissingReturnsNil(t *testing.T) {
	orders := usecase.NewOrders(memory.New())

	updated, err := orders.Update(context.Background(), &domain.Order{
		ID:     uuid.New().String(),
		Status: domain.OrderActive,
		UserID: uuid.New().String(),
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestOrdersCartFlow(t *testing.T) {
	st := memory.New()
	orders := usecase.NewOrders(st)
	ctx := context.Background()

	user, err := st.AddUser(ctx, &domain.User{
		Username: "a", Password: "p", Level: domain.Levelf(domain.LevelCustomer),
	})
	require.NoError(t, err)

	product, err := st.AddProduct(ctx, &domain.Product{Name: "mug"})
	require.NoError(t, err)

	cart, err := orders.GetActiveForUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)

	item, err := orders.AddProduct(ctx, 2, cart.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, item)

	item, err = orders.AddProduct(ctx, 3, cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	items, err := orders.GetProducts(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	removed, err := orders.RemoveProduct(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, 5, removed.Quantity)
}
