package usecase

import (
	"errors"
)

const (
	OutcomeSuccess        = "success"
	OutcomeDeadlinePassed = "deadline_passed"
	OutcomeInvalid        = "invalid"
	OutcomeNotFound       = "not_found"
	OutcomeTeamRequired   = "team_required"
	OutcomeBackendFailure = "backend_failure"
	OutcomeUnclassified   = "error"
)

// MutationObserver receives one call per finished roster mutation and one
// per failed backend call.
type MutationObserver interface {
	RosterMutation(operation, outcome string)
	BackendFailure(operation string)
}

type nopObserver struct{}

func (nopObserver) RosterMutation(string, string) {}
func (nopObserver) BackendFailure(string)         {}

func MutationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrTransferDeadlinePassed):
		return OutcomeDeadlinePassed
	case errors.Is(err, ErrTeamRequired):
		return OutcomeTeamRequired
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrDependencyUnavailable):
		return OutcomeBackendFailure
	case errors.Is(err, ErrInvalidInput), IsValidationError(err):
		return OutcomeInvalid
	default:
		return OutcomeUnclassified
	}
}
