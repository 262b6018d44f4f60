package store

import (
	"errors"
	"fmt"

	"tableside/internal/models"
)

var (
	// ErrNotFound means the referenced order, request, or menu item id does
	// not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart means checkout was attempted with zero cart lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// InvalidTransitionError reports a status change that is not a legal
// successor of the current state.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
