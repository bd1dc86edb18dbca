package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrDependencyUnavailable  = errors.New("dependency unavailable")
	ErrTransferDeadlinePassed = errors.New("transfer deadline has passed")
	ErrTeamRequired           = errors.New("fantasy team required")
	ErrNotEditing             = errors.New("edit mode is not active")
)

// backendError marks err as a transient backend failure unless it already
// carries a roster classification.
func backendError(op string, err error) error {
	if IsValidationError(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, roster.ErrEntryNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}

// IsValidationError reports roster rule violations.
func IsValidationError(err error) bool {
	return errors.Is(err, roster.ErrInvalidFormation) ||
		errors.Is(err, roster.ErrCaptainConflict) ||
		errors.Is(err, roster.ErrMultipleArmbands) ||
		errors.Is(err, roster.ErrPositionMismatch) ||
		errors.Is(err, roster.ErrDuplicatePlayer) ||
		errors.Is(err, roster.ErrIncompatibleSwap)
}
