package usecase

import (
	"context"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Users wraps the user family of store operations with validation and error
// normalization. It holds no state of its own and is safe for concurrent
// use.
type Users struct {
	store store.Store
}

func NewUsers(st store.Store) *Users {
	return &Users{store: st}
}

func (u *Users) checkStore() error {
	if u.store == nil {
		return ErrStoreNotConfigured
	}
	return nil
}

// accounts resolves the optional account-lookup capability of the active
// store.
func (u *Users) accounts(action string) (store.Accounts, error) {
	if u.store == nil {
		return nil, ErrStoreNotConfigured
	}
	acc, ok := u.store.(store.Accounts)
	if !ok {
		return nil, serverErr("Users", action, errNoCapability)
	}
	return acc, nil
}

// sessions resolves the optional session capability of the active store.
func (u *Users) sessions(action string) (store.Sessions, error) {
	if u.store == nil {
		return nil, ErrStoreNotConfigured
	}
	sess, ok := u.store.(store.Sessions)
	if !ok {
		return nil, serverErr("Users", action, errNoCapability)
	}
	return sess, nil
}

func validateLevel(level *domain.UserLevel) *ValidationError {
	if level == nil || !level.Valid() {
		return &ValidationError{Field: "level", Message: "must be 0 or 1"}
	}
	return nil
}

// Add validates and persists a new user, hashing the password before the
// store sees it.
func (u *Users) Add(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	if err := firstError(
		requireNonEmpty("username", user.Username),
		requireNonEmpty("password", user.Password),
		validateLevel(user.Level),
	); err != nil {
		return nil, err
	}
	if err := u.checkStore(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serverErr("Users.Add", "adding user", err)
	}
	rec := *user
	rec.Password = string(hashed)

	out, err := u.store.AddUser(ctx, &rec, opts...)
	if err != nil {
		return nil, serverErr("Users.Add", "adding user", err)
	}
	return out, nil
}

// Update changes profile fields only. Password and privilege level are
// carried over from the stored record and cannot be changed through this
// path.
func (u *Users) Update(ctx context.Context, user *domain.User, opts ...store.Option) (*domain.User, error) {
	if err := firstError(
		requireID("id", user.ID),
		requireNonEmpty("username", user.Username),
	); err != nil {
		return nil, err
	}
	if err := u.checkStore(); err != nil {
		return nil, err
	}

	existing, err := u.store.GetUser(ctx, user.ID)
	if err != nil {
		return nil, serverErr("Users.Update", "updating user", err)
	}
	if existing == nil {
		return nil, nil
	}

	rec := *user
	rec.Password = existing.Password
	rec.Level = existing.Level

	out, err := u.store.UpdateUser(ctx, &rec, opts...)
	if err != nil {
		return nil, serverErr("Users.Update", "updating user", err)
	}
	return out, nil
}

func (u *Users) Delete(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := u.checkStore(); err != nil {
		return nil, err
	}
	out, err := u.store.DeleteUser(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Users.Delete", "deleting user", err)
	}
	return out, nil
}

func (u *Users) Get(ctx context.Context, id string, opts ...store.Option) (*domain.User, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := u.checkStore(); err != nil {
		return nil, err
	}
	out, err := u.store.GetUser(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Users.Get", "getting user", err)
	}
	return out, nil
}

func (u *Users) GetAll(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	if err := u.checkStore(); err != nil {
		return nil, err
	}
	out, err := u.store.GetAllUsers(ctx, opts...)
	if err != nil {
		return nil, serverErr("Users.GetAll", "getting users", err)
	}
	return out, nil
}

func (u *Users) DeleteAll(ctx context.Context, opts ...store.Option) ([]*domain.User, error) {
	if err := u.checkStore(); err != nil {
		return nil, err
	}
	out, err := u.store.DeleteAllUsers(ctx, opts...)
	if err != nil {
		return nil, serverErr("Users.DeleteAll", "deleting users", err)
	}
	return out, nil
}

func (u *Users) GetByUsername(ctx context.Context, username string, opts ...store.Option) (*domain.User, error) {
	if err := firstError(requireNonEmpty("username", username)); err != nil {
		return nil, err
	}
	acc, err := u.accounts("getting user")
	if err != nil {
		return nil, err
	}
	out, err := acc.GetUserByUsername(ctx, username, opts...)
	if err != nil {
		return nil, serverErr("Users.GetByUsername", "getting user", err)
	}
	return out, nil
}

func (u *Users) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if err := firstError(
		requireNonEmpty("username", username),
		requireNonEmpty("password", password),
	); err != nil {
		return nil, err
	}
	acc, err := u.accounts("authenticating user")
	if err != nil {
		return nil, err
	}
	out, err := acc.Authenticate(ctx, username, password)
	if err != nil {
		return nil, serverErr("Users.Authenticate", "authenticating user", err)
	}
	return out, nil
}

func (u *Users) AddSession(ctx context.Context, secret, userID string) (*domain.Session, error) {
	if err := firstError(
		requireNonEmpty("secret", secret),
		requireID("userId", userID),
	); err != nil {
		return nil, err
	}
	sess, err := u.sessions("adding session")
	if err != nil {
		return nil, err
	}
	out, err := sess.AddSession(ctx, secret, userID)
	if err != nil {
		return nil, serverErr("Users.AddSession", "adding session", err)
	}
	return out, nil
}

func (u *Users) DeleteSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	sess, err := u.sessions("deleting session")
	if err != nil {
		return nil, err
	}
	out, err := sess.DeleteSession(ctx, id)
	if err != nil {
		return nil, serverErr("Users.DeleteSession", "deleting session", err)
	}
	return out, nil
}

func (u *Users) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	sess, err := u.sessions("getting session")
	if err != nil {
		return nil, err
	}
	out, err := sess.GetSession(ctx, id)
	if err != nil {
		return nil, serverErr("Users.GetSession", "getting session", err)
	}
	return out, nil
}

func (u *Users) GetSessionForUser(ctx context.Context, userID string) (*domain.Session, error) {
	if err := firstError(requireID("userId", userID)); err != nil {
		return nil, err
	}
	sess, err := u.sessions("getting session")
	if err != nil {
		return nil, err
	}
	out, err := sess.GetSessionForUser(ctx, userID)
	if err != nil {
		return nil, serverErr("Users.GetSessionForUser", "getting session", err)
	}
	return out, nil
}

func (u *Users) GetAllSessions(ctx context.Context) ([]*domain.Session, error) {
	sess, err := u.sessions("getting sessions")
	if err != nil {
		return nil, err
	}
	out, err := sess.GetAllSessions(ctx)
	if err != nil {
		return nil, serverErr("Users.GetAllSessions", "getting sessions", err)
	}
	return out, nil
}

func (u *Users) DeleteAllSessions(ctx context.Context) ([]*domain.Session, error) {
	sess, err := u.sessions("deleting sessions")
	if err != nil {
		return nil, err
	}
	out, err := sess.DeleteAllSessions(ctx)
	if err != nil {
		return nil, serverErr("Users.DeleteAllSessions", "deleting sessions", err)
	}
	return out, nil
}
