package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Field   string          `json:"field,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func signUp(t *testing.T, ts *testutil.TestServer, client *http.Client, username string) envelope {
	t.Helper()
	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/auth/signup"), map[string]string{
		"username":  username,
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "signup failed: %s", env.Message)
	return env
}

func TestSignUpIssuesCookiesAndProtectedBody(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := newClient(t)

	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/auth/signup"), map[string]string{
		"username":  "alice",
		"password":  "password123",
		"firstName": "Alice",
		"lastName":  "Doe",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", env.Status)

	names := map[string]bool{}
	for _, c := range resp.Cookies() {
		names[c.Name] = true
		assert.True(t, c.HttpOnly, "credential cookies must be http-only")
	}
	assert.True(t, names["access_token"])
	assert.True(t, names["refresh_token"])

	var user domain.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Empty(t, user.ID)
	assert.Nil(t, user.Level)
	assert.Equal(t, strings.Repeat("*", len("password123")), user.Password)
	assert.Equal(t, "alice", user.Username)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	ts := testutil.NewTestServer(t)

	signUp(t, ts, newClient(t), "alice")

	resp, env := doJSON(t, newClient(t), http.MethodPost, ts.APIURL("/auth/signup"), map[string]string{
		"username":  "alice",
		"password":  "password123",
		"firstName": "Other",
		"lastName":  "Alice",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username already taken", env.Message)
}

func TestSignInWrongPassword(t *testing.T) {
	ts := testutil.NewTestServer(t)
	signUp(t, ts, newClient(t), "alice")

	resp, env := doJSON(t, newClient(t), http.MethodPost, ts.APIURL("/auth/signin"), map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", env.Message)
}

func TestSignInWhileSignedIn(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := newClient(t)
	signUp(t, ts, client, "alice")

	// Same client still carries live cookies.
	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/auth/signin"), map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "already signed in", env.Message)
}

func TestMeLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := newClient(t)
	signUp(t, ts, client, "alice")

	resp, env := doJSON(t, client, http.MethodGet, ts.APIURL("/me"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user domain.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.ID)
	assert.Nil(t, user.Level)
	assert.NotContains(t, user.Password, "$2", "hash must never reach the client")

	resp, _ = doJSON(t, client, http.MethodPost, ts.APIURL("/auth/signout"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Signed out: the protected surface answers as if it does not exist.
	resp, env = doJSON(t, client, http.MethodGet, ts.APIURL("/me"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", env.Message)
}

func TestUnauthenticatedProtectedRoutes(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := newClient(t)

	for _, path := range []string{"/me", "/cart", "/orders", "/admin/users"} {
		resp, env := doJSON(t, client, http.MethodGet, ts.APIURL(path), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "not found", env.Message, path)
	}
}

func TestAdminGateRejectsCustomer(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := newClient(t)
	signUp(t, ts, client, "alice")

	// The privilege comparison is exact: a customer credential reads the
	// admin surface as missing.
	resp, env := doJSON(t, client, http.MethodGet, ts.APIURL("/admin/users"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", env.Message)
}

// signInAdmin provisions an admin account through the store and signs it in,
// returning a client holding its cookies.
func signInAdmin(t *testing.T, ts *testutil.TestServer) *http.Client {
	t.Helper()

	_, password := testutil.NewUserBuilder().
		WithUsername("root").
		WithLevel(domain.LevelAdmin).
		Build(t, ts.Store)

	client := newClient(t)
	resp, _ := doJSON(t, client, http.MethodPost, ts.APIURL("/auth/signin"), map[string]string{
		"username": "root",
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func TestCustomerGateRejectsAdmin(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := signInAdmin(t, ts)

	resp, _ := doJSON(t, client, http.MethodGet, ts.APIURL("/admin/users"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, client, http.MethodGet, ts.APIURL("/me"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductAddRequiresPrice(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := signInAdmin(t, ts)

	// Omitting the price is not the same as pricing at zero.
	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/admin/products"), map[string]interface{}{
		"name": "Keyboard",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "price", env.Field)

	resp, env = doJSON(t, client, http.MethodPost, ts.APIURL("/admin/products"), map[string]interface{}{
		"name":  "Keyboard",
		"price": -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "price", env.Field)

	// An explicit zero price is allowed.
	resp, _ = doJSON(t, client, http.MethodPost, ts.APIURL("/admin/products"), map[string]interface{}{
		"name":  "Keyboard",
		"price": 0,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicCatalog(t *testing.T) {
	ts := testutil.NewTestServer(t)
	product := testutil.NewProductBuilder().WithName("Keyboard").Build(t, ts.Store)

	client := newClient(t)

	resp, env := doJSON(t, client, http.MethodGet, ts.APIURL("/products"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []*domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Keyboard", products[0].Name)
	assert.Empty(t, products[0].ID, "public reads are protected projections")

	resp, _ = doJSON(t, client, http.MethodGet, ts.APIURL("/products/"+product.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, client, http.MethodGet, ts.APIURL("/products/8f2b6a24-0000-4000-8000-000000000000"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	product := testutil.NewProductBuilder().WithName("Mug").Build(t, ts.Store)

	client := newClient(t)
	signUp(t, ts, client, "alice")

	// First cart read creates the open order.
	resp, env := doJSON(t, client, http.MethodGet, ts.APIURL("/cart"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, domain.OrderActive, cart.Status)
	assert.Empty(t, cart.UserID)

	resp, env = doJSON(t, client, http.MethodPost, ts.APIURL("/cart/items"), map[string]interface{}{
		"quantity":  2,
		"productId": product.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var item domain.OrderItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Mug", item.Name)
	assert.Equal(t, 2, item.Quantity)

	// Adding the same product again accumulates into the existing line.
	resp, env = doJSON(t, client, http.MethodPost, ts.APIURL("/cart/items"), map[string]interface{}{
		"quantity":  3,
		"productId": product.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 5, item.Quantity)

	resp, env = doJSON(t, client, http.MethodGet, ts.APIURL("/cart/items"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []*domain.OrderItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	resp, env = doJSON(t, client, http.MethodDelete, ts.APIURL("/cart/items/"+product.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 5, item.Quantity)
}

func TestCheckoutStartsFreshCart(t *testing.T) {
	ts := testutil.NewTestServer(t)
	product := testutil.NewProductBuilder().Build(t, ts.Store)

	client := newClient(t)
	signUp(t, ts, client, "alice")

	resp, _ := doJSON(t, client, http.MethodPost, ts.APIURL("/cart/items"), map[string]interface{}{
		"quantity":  1,
		"productId": product.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/cart/checkout"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var checkedOut domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &checkedOut))
	assert.Equal(t, domain.OrderInactive, checkedOut.Status)

	resp, env = doJSON(t, client, http.MethodGet, ts.APIURL("/cart/items"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []*domain.OrderItem
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &items))
	}
	assert.Empty(t, items, "checkout leaves the next cart empty")

	// History shows both the finalized order and the fresh one.
	resp, env = doJSON(t, client, http.MethodGet, ts.APIURL("/orders"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []*domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Len(t, orders, 2)
}

func TestOrderOwnershipScoped(t *testing.T) {
	ts := testutil.NewTestServer(t)

	other, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, ts.Store)
	foreign := testutil.NewOrderBuilder(other.ID).Build(t, ts.Store)

	client := newClient(t)
	signUp(t, ts, client, "alice")

	// Another user's order reads as missing, not forbidden.
	resp, env := doJSON(t, client, http.MethodGet, ts.APIURL("/orders/"+foreign.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", env.Message)
}

func TestValidationErrorSurfacesField(t *testing.T) {
	ts := testutil.NewTestServer(t)
	product := testutil.NewProductBuilder().Build(t, ts.Store)

	client := newClient(t)
	signUp(t, ts, client, "alice")

	resp, env := doJSON(t, client, http.MethodPost, ts.APIURL("/cart/items"), map[string]interface{}{
		"quantity":  0,
		"productId": product.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "quantity", env.Field)
}

func TestHealth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/health", ts.BaseURL()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
