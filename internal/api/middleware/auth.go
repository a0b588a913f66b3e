package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ray/storefront-backend/internal/auth"
	"github.com/ray/storefront-backend/internal/domain"
)

type contextKey string

const claimsKey contextKey = "claims"

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// Credentials extracts the access/refresh pair from the request cookies.
// Either may be absent.
func Credentials(r *http.Request) (access, refresh string) {
	if c, err := r.Cookie(AccessCookie); err == nil {
		access = c.Value
	}
	if c, err := r.Cookie(RefreshCookie); err == nil {
		refresh = c.Value
	}
	return access, refresh
}

// SetCredentialCookies re-emits a freshly issued pair to the caller.
func SetCredentialCookies(w http.ResponseWriter, creds *auth.Credentials, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    creds.AccessToken,
		Path:     "/",
		MaxAge:   int(accessTTL.Seconds()),
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    creds.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
	})
}

// ClearCredentialCookies invalidates both credentials at the transport
// boundary.
func ClearCredentialCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}

// Gate is the authorization middleware. It consults the session manager's
// policy gate with an exact privilege level; when a rotation happened the
// fresh pair is re-emitted as cookies before the request proceeds.
//
// Failures answer with a not-found-shaped body so unauthenticated callers
// cannot probe which resources exist.
func Gate(mgr *auth.Manager, level domain.UserLevel, accessTTL, refreshTTL time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, refresh := Credentials(r)

			claims, creds, err := mgr.Authorize(r.Context(), access, refresh, level)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthorized) {
					log.Printf("ERROR [middleware.Gate] authorization failed: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "not found"})
				return
			}

			if creds != nil {
				SetCredentialCookies(w, creds, accessTTL, refreshTTL)
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the verified caller snapshot set by Gate.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
