package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/ray/storefront-backend/internal/store/postgres"
	"github.com/ray/storefront-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	added, err := st.AddUser(ctx, &domain.User{
		Username: "alice",
		Password: "hashed",
		Level:    domain.Levelf(domain.LevelCustomer),
	})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	got, err := st.GetUser(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, got.Level)
	assert.Equal(t, domain.LevelCustomer, *got.Level)

	protectedUser, err := st.GetUser(ctx, added.ID, store.Protected())
	require.NoError(t, err)
	assert.Empty(t, protectedUser.ID)
	assert.Nil(t, protectedUser.Level)
	assert.Len(t, protectedUser.Password, len("hashed"))
	assert.NotContains(t, protectedUser.Password, "h")

	missing, err := st.GetUser(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	updatedMissing, err := st.UpdateUser(ctx, &domain.User{
		ID: uuid.New().String(), Username: "ghost", Password: "p", Level: domain.Levelf(domain.LevelCustomer),
	})
	require.NoError(t, err)
	assert.Nil(t, updatedMissing)
}

func TestAuthenticate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	_, password := testutil.NewUserBuilder().WithUsername("bob").Build(t, st)

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid credentials", "bob", password, true},
		{"wrong password", "bob", "nope", false},
		{"unknown username", "nobody", password, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := st.Authenticate(ctx, tt.username, tt.password)
			require.NoError(t, err)
			if tt.want {
				assert.NotNil(t, user)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestSessionReplace(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)

	_, err := st.AddSession(ctx, "secret1", user.ID)
	require.NoError(t, err)
	_, err = st.AddSession(ctx, "secret2", user.ID)
	require.NoError(t, err)

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "secret2", sessions[0].Secret)

	sess, err := st.GetSessionForUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "secret2", sess.Secret)
}

func TestActiveOrderGetOrCreate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)

	first, err := st.GetActiveOrderForUser(ctx, user.ID)
	require.NoError(t, err)
	second, err := st.GetActiveOrderForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	first.Status = domain.OrderInactive
	_, err = st.UpdateOrder(ctx, first)
	require.NoError(t, err)

	third, err := st.GetActiveOrderForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestOrderLineUpsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)
	order := testutil.NewOrderBuilder(user.ID).Build(t, st)
	product := testutil.NewProductBuilder().
		WithName("mug").
		WithPrice(decimal.NewFromFloat(4.50)).
		Build(t, st)

	first, err := st.AddProductToOrder(ctx, 2, order.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "mug", first.Name)
	assert.True(t, first.Price.Equal(decimal.NewFromFloat(4.50)))

	second, err := st.AddProductToOrder(ctx, 3, order.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Quantity)

	lines, err := st.GetAllOrderProducts(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	removed, err := st.RemoveProductFromOrder(ctx, order.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, 5, removed.Quantity)

	unknown, err := st.AddProductToOrder(ctx, 1, order.ID, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestGetProductsInOrder(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)
	order := testutil.NewOrderBuilder(user.ID).Build(t, st)
	mug := testutil.NewProductBuilder().WithName("mug").Build(t, st)
	pen := testutil.NewProductBuilder().WithName("pen").Build(t, st)

	_, err := st.AddProductToOrder(ctx, 1, order.ID, mug.ID)
	require.NoError(t, err)
	_, err = st.AddProductToOrder(ctx, 4, order.ID, pen.ID)
	require.NoError(t, err)

	items, err := st.GetProductsInOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeleteUserCascades(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)
	order := testutil.NewOrderBuilder(user.ID).Build(t, st)
	product := testutil.NewProductBuilder().Build(t, st)

	_, err := st.AddSession(ctx, "secret", user.ID)
	require.NoError(t, err)
	_, err = st.AddProductToOrder(ctx, 1, order.ID, product.ID)
	require.NoError(t, err)

	deleted, err := st.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	orders, err := st.GetOrdersForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := st.GetAllOrderProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeleteAllOrdersCascadesLines(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, st)
	order := testutil.NewOrderBuilder(user.ID).Build(t, st)
	product := testutil.NewProductBuilder().Build(t, st)

	_, err := st.AddProductToOrder(ctx, 2, order.ID, product.ID)
	require.NoError(t, err)

	deleted, err := st.DeleteAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	lines, err := st.GetAllOrderProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines, "bulk order deletion cleans up lines like single deletion")
}

func TestCategories(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	st := postgres.New(testDB.DB)
	ctx := context.Background()

	cat, err := st.AddCategory(ctx, &domain.ProductCategory{Name: "books"})
	require.NoError(t, err)
	require.NotEmpty(t, cat.ID)

	product := testutil.NewProductBuilder().WithCategory(cat.ID).Build(t, st)
	testutil.NewProductBuilder().Build(t, st)

	inCategory, err := st.GetProductsByCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, product.ID, inCategory[0].ID)

	// Deleting the category leaves the product with a dangling weak ref.
	_, err = st.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)

	survivor, err := st.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Equal(t, cat.ID, survivor.CategoryID)
}
