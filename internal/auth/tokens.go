package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ray/storefront-backend/internal/config"
	"github.com/ray/storefront-backend/internal/domain"
)

// Claims is the signed user snapshot carried by both credentials. It lets
// the policy gate check the privilege level without a store round-trip.
type Claims struct {
	Username  string           `json:"username"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Level     domain.UserLevel `json:"level"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies the access/refresh credential pair. The two
// credentials are signed with independent secrets.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(cfg *config.Config) *Tokens {
	return &Tokens{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (t *Tokens) mint(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	if user.Level == nil {
		return "", errors.New("user has no privilege level")
	}
	now := time.Now()
	claims := Claims{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Level:     *user.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// MintPair issues a fresh access and refresh credential for the user.
func (t *Tokens) MintPair(user *domain.User) (access, refresh string, err error) {
	access, err = t.mint(user, t.accessSecret, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.mint(user, t.refreshSecret, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func verify(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (t *Tokens) VerifyAccess(token string) (*Claims, error) {
	return verify(token, t.accessSecret)
}

func (t *Tokens) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, t.refreshSecret)
}
