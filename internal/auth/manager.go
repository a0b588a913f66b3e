package auth

import (
	"context"
	"errors"
	"log"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/usecase"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAlreadySignedIn    = errors.New("already signed in")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Credentials is a freshly issued access/refresh pair along with the user it
// belongs to.
type Credentials struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Manager drives the per-user session state machine: signed out, signed in,
// and the rotation step between an expired access credential and a still
// live refresh credential. Session existence in the store is the source of
// truth for refresh-credential liveness.
type Manager struct {
	users  *usecase.Users
	tokens *Tokens
}

func NewManager(users *usecase.Users, tokens *Tokens) *Manager {
	return &Manager{users: users, tokens: tokens}
}

// liveSession resolves a presented refresh credential to its session. It
// returns nil when the credential does not verify, when no session exists
// for its user, or when the stored secret is a different token (revoked by
// rotation or sign-out).
func (m *Manager) liveSession(ctx context.Context, refresh string) (*domain.Session, *Claims, error) {
	if refresh == "" {
		return nil, nil, nil
	}
	claims, err := m.tokens.VerifyRefresh(refresh)
	if err != nil {
		return nil, nil, nil
	}
	sess, err := m.users.GetSessionForUser(ctx, claims.Subject)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil || sess.Secret != refresh {
		return nil, nil, nil
	}
	return sess, claims, nil
}

// refuseIfSignedIn blocks sign-up and sign-in while the presented refresh
// credential is still live. A failure during the check is a hard error, not
// a silent pass.
func (m *Manager) refuseIfSignedIn(ctx context.Context, refresh string) error {
	sess, _, err := m.liveSession(ctx, refresh)
	if err != nil {
		return err
	}
	if sess != nil {
		return ErrAlreadySignedIn
	}
	return nil
}

// issue mints a credential pair and atomically replaces the user's session
// with one bound to the new refresh credential.
func (m *Manager) issue(ctx context.Context, user *domain.User) (*Credentials, error) {
	access, refresh, err := m.tokens.MintPair(user)
	if err != nil {
		return nil, err
	}
	if _, err := m.users.AddSession(ctx, refresh, user.ID); err != nil {
		return nil, err
	}
	return &Credentials{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// SignUp registers the user and signs them in.
func (m *Manager) SignUp(ctx context.Context, user *domain.User, presentedRefresh string) (*Credentials, error) {
	if err := m.refuseIfSignedIn(ctx, presentedRefresh); err != nil {
		return nil, err
	}

	existing, err := m.users.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	created, err := m.users.Add(ctx, user)
	if err != nil {
		return nil, err
	}
	return m.issue(ctx, created)
}

func (m *Manager) SignIn(ctx context.Context, username, password, presentedRefresh string) (*Credentials, error) {
	if err := m.refuseIfSignedIn(ctx, presentedRefresh); err != nil {
		return nil, err
	}

	user, err := m.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return m.issue(ctx, user)
}

// Rotate exchanges a live refresh credential for a fresh pair. The old
// session dies with the replacement, so the presented credential cannot be
// used twice.
func (m *Manager) Rotate(ctx context.Context, refresh string) (*Credentials, error) {
	sess, claims, err := m.liveSession(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrUnauthorized
	}

	user := &domain.User{
		ID:        claims.Subject,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Level:     domain.Levelf(claims.Level),
	}
	return m.issue(ctx, user)
}

// SignOut requires both credentials and a live session; anything less reads
// as already signed out.
func (m *Manager) SignOut(ctx context.Context, access, refresh string) error {
	if access == "" || refresh == "" {
		return ErrUnauthorized
	}
	sess, _, err := m.liveSession(ctx, refresh)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrUnauthorized
	}
	_, err = m.users.DeleteSession(ctx, sess.ID)
	return err
}

// Authorize is the policy gate. It resolves the caller from the access
// credential, falling back to rotation when that credential is missing or
// expired, and requires the privilege level to match exactly: an admin is
// rejected at a customer-only gate just as a customer is rejected at an
// admin-only one.
//
// The returned Credentials is non-nil only when a rotation happened; the
// transport layer must re-emit the pair to the caller.
func (m *Manager) Authorize(ctx context.Context, access, refresh string, level domain.UserLevel) (*Claims, *Credentials, error) {
	if access != "" {
		claims, err := m.tokens.VerifyAccess(access)
		if err == nil {
			if claims.Level != level {
				return nil, nil, ErrUnauthorized
			}
			return claims, nil, nil
		}
		log.Printf("ERROR [auth.Manager.Authorize] access credential rejected: %v", err)
	}

	// The refresh claims carry the level too, so a wrong-level caller is
	// turned away before rotation replaces their session. Rotating first
	// would discard the fresh pair on the mismatch and revoke a session the
	// caller still holds.
	if refresh != "" {
		if claims, err := m.tokens.VerifyRefresh(refresh); err == nil && claims.Level != level {
			return nil, nil, ErrUnauthorized
		}
	}

	creds, err := m.Rotate(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}

	claims, err := m.tokens.VerifyAccess(creds.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	if claims.Level != level {
		return nil, nil, ErrUnauthorized
	}
	return claims, creds, nil
}
