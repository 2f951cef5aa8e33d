package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/notepad/internal/notes/store"
)

var (
	ErrValidation         = errors.New("validation_error")
	ErrUsernameTaken      = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrNoteNotFound       = errors.New("not_found")
	ErrStoreTimeout       = errors.New("store_timeout")
)

// validationError wraps ErrValidation with a message safe to show a user.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// mapStoreError translates store errors the callers care about. Everything
// else is returned as is and ends up as a 500.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrTimeout):
		return fmt.Errorf("%w: %v", ErrStoreTimeout, err)
	default:
		return err
	}
}
