package services

import (
	"errors"
	"fmt"

	"github.com/huangang/collabhub/internal/store"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyApplied    = errors.New("already applied to this project")
	ErrProjectNotOpen    = errors.New("project is not open for applications")
	ErrProjectFull       = errors.New("project has no free slots")
	ErrCapacityExceeded  = errors.New("project capacity exceeded")
	ErrNotPending        = errors.New("membership is not pending")
	ErrTransientConflict = errors.New("concurrent update conflict, try again")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ValidationError reports an invalid or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// storeErr maps a store failure onto the service error kinds.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%s: %w", what, ErrTransientConflict)
	default:
		return fmt.Errorf("%s: %w: %w", what, ErrStoreUnavailable, err)
	}
}
