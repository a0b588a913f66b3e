package usecase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field validators. Each returns nil on success so call sites read as a
// short list of rules.

func requireNonEmpty(field, value string) *ValidationError {
	if value == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	return nil
}

func requireID(field, value string) *ValidationError {
	if _, err := uuid.Parse(value); err != nil {
		return &ValidationError{Field: field, Message: "must be a well-formed id"}
	}
	return nil
}

func requireQuantity(field string, value int) *ValidationError {
	if value < 1 {
		return &ValidationError{Field: field, Message: "must be at least 1"}
	}
	return nil
}

func requirePrice(field string, value decimal.Decimal) *ValidationError {
	if value.IsNegative() {
		return &ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

func firstError(checks ...*ValidationError) error {
	for _, c := range checks {
		if c != nil {
			return c
		}
	}
	return nil
}
