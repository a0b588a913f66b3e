package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ray/storefront-backend/internal/api/middleware"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/ray/storefront-backend/internal/usecase"
)

type OrderHandler struct {
	orders *usecase.Orders
}

func NewOrderHandler(orders *usecase.Orders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type AddToCartRequest struct {
	Quantity  int    `json:"quantity"`
	ProductID string `json:"productId"`
}

// Cart returns the caller's open order, creating one when none exists.
func (h *OrderHandler) Cart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	order, err := h.orders.GetActiveForUser(r.Context(), claims.Subject, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart", order)
}

func (h *OrderHandler) CartItems(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	order, err := h.orders.GetActiveForUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.orders.GetProducts(r.Context(), order.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart items", items)
}

func (h *OrderHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	order, err := h.orders.GetActiveForUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, err)
		return
	}

	item, err := h.orders.AddProduct(r.Context(), req.Quantity, order.ID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	if item == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "product added to cart", item)
}

func (h *OrderHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	order, err := h.orders.GetActiveForUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, err)
		return
	}

	item, err := h.orders.RemoveProduct(r.Context(), order.ID, chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, err)
		return
	}
	if item == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "product removed from cart", item)
}

// Checkout finalizes the open cart by flipping it inactive. The next cart
// read creates a fresh active order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	order, err := h.orders.GetActiveForUser(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, err)
		return
	}

	order.Status = domain.OrderInactive
	updated, err := h.orders.Update(r.Context(), order, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "order checked out", updated)
}

// History lists the caller's orders, open cart included.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	orders, err := h.orders.GetForUser(r.Context(), claims.Subject, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "orders", orders)
}

// Order is the ownership-scoped fetch: an order that exists but belongs to
// another user answers 404, indistinguishable from a missing one.
func (h *OrderHandler) Order(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	order, err := h.orders.GetUserOrder(r.Context(), chi.URLParam(r, "id"), claims.Subject, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if order == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "order", order)
}

func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "orders", orders)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if order == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "order deleted", order)
}
