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

type UserHandler struct {
	users *usecase.Users
}

func NewUserHandler(users *usecase.Users) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Me returns the caller's own record in the protected projection.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	user, err := h.users.Get(r.Context(), claims.Subject, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "user", user)
}

// UpdateMe changes the caller's profile fields; password and privilege
// level are untouchable through this path.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), &domain.User{
		ID:        claims.Subject,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "user updated", user)
}

// DeleteMe removes the caller's account; the store cascades their orders
// and sessions.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondNotFound(w)
		return
	}

	user, err := h.users.Delete(r.Context(), claims.Subject, store.Protected())
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondNotFound(w)
		return
	}

	middleware.ClearCredentialCookies(w)
	respondOK(w, "user deleted", user)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "users", users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "user", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondNotFound(w)
		return
	}
	respondOK(w, "user deleted", user)
}
