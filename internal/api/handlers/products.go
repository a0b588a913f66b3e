package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/ray/storefront-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products *usecase.Products
}

func NewProductHandler(products *usecase.Products) *ProductHandler {
	return &ProductHandler{products: products}
}

// ProductRequest carries the price as a pointer: a decimal zero value would
// make an absent price indistinguishable from an explicit 0.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  string           `json:"categoryId"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// GetAll serves the public catalog, so every record goes out as a protected
// projection.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		products, err := h.products.GetByCategory(r.Context(), categoryID, store.Protected())
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, "products", products)
		return
	}

	products, err := h.products.GetAll(r.Context(), store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "products", products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"), store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if product == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "product", product)
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Price == nil {
		respondError(w, &usecase.ValidationError{Field: "price", Message: "must be provided"})
		return
	}

	product, err := h.products.Add(r.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product added", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Price == nil {
		respondError(w, &usecase.ValidationError{Field: "price", Message: "must be provided"})
		return
	}

	product, err := h.products.Update(r.Context(), &domain.Product{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if product == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "product updated", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if product == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "product deleted", product)
}

func (h *ProductHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.GetAllCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "categories", categories)
}

func (h *ProductHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.products.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if category == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "category", category)
}

func (h *ProductHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	category, err := h.products.AddCategory(r.Context(), &domain.ProductCategory{Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "category added", category)
}

func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.products.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if category == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "category deleted", category)
}
