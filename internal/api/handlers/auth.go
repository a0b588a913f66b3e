package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ray/storefront-backend/internal/api/middleware"
	"github.com/ray/storefront-backend/internal/auth"
	"github.com/ray/storefront-backend/internal/domain"
)

type AuthHandler struct {
	manager    *auth.Manager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(manager *auth.Manager, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{manager: manager, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type SignUpRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp registers a customer account. Admin accounts are created through
// the admin user endpoints, never through public sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	_, refresh := middleware.Credentials(r)
	creds, err := h.manager.SignUp(r.Context(), &domain.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Level:     domain.Levelf(domain.LevelCustomer),
	}, refresh)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAlreadySignedIn):
			respondBadRequest(w, "already signed in")
		case errors.Is(err, auth.ErrUsernameTaken):
			respondBadRequest(w, "username already taken")
		default:
			respondError(w, err)
		}
		return
	}

	middleware.SetCredentialCookies(w, creds, h.accessTTL, h.refreshTTL)
	respondOK(w, "signed up", domain.ProtectUser(creds.User))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	_, refresh := middleware.Credentials(r)
	creds, err := h.manager.SignIn(r.Context(), req.Username, req.Password, refresh)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAlreadySignedIn):
			respondBadRequest(w, "already signed in")
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond(w, http.StatusUnauthorized, Envelope{Status: "error", Message: "invalid credentials"})
		default:
			respondError(w, err)
		}
		return
	}

	middleware.SetCredentialCookies(w, creds, h.accessTTL, h.refreshTTL)
	respondOK(w, "signed in", domain.ProtectUser(creds.User))
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	access, refresh := middleware.Credentials(r)
	if err := h.manager.SignOut(r.Context(), access, refresh); err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			respondNotFound(w)
			return
		}
		respondError(w, err)
		return
	}

	middleware.ClearCredentialCookies(w)
	respondOK(w, "signed out", nil)
}
