package usecase

import (
	"errors"
	"fmt"
	"log"
)

// ErrStoreNotConfigured means a use-case was constructed without a store.
// This is a wiring mistake, not a user-facing condition.
var ErrStoreNotConfigured = errors.New("store is not configured")

// errNoCapability marks an optional store capability missing on the active
// implementation. Callers see it as a ServerError.
var errNoCapability = errors.New("active store does not support this operation")

// ValidationError reports a per-operation schema failure. It is raised
// before any store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ServerError is the caller-facing shape of a store failure. It carries the
// action description only; the underlying error is logged here and never
// leaves the use-case layer.
type ServerError struct {
	Action string
}

func (e *ServerError) Error() string {
	return "error " + e.Action
}

// serverErr logs the store failure and returns the generic wrapper.
func serverErr(method, action string, err error) *ServerError {
	log.Printf("ERROR [usecase.%s] %s: %v", method, action, err)
	return &ServerError{Action: action}
}
