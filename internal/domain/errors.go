package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the repository, service, and delivery layers.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not found")
	ErrDependency     = errors.New("dependency unavailable")
	ErrInvitationUsed = errors.New("invitation already used")
	ErrEncoding       = errors.New("encoding failed")
)

// ValidationError returns an error wrapping ErrValidation with the given message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ProvisioningError reports a Create that failed after the invitation row was
// written. Compensated is true when the row was removed again; when false the
// row is orphaned and needs reconciliation.
type ProvisioningError struct {
	InvitationID string
	Step         string
	Compensated  bool
	Err          error
}

func (e *ProvisioningError) Error() string {
	state := "compensated"
	if !e.Compensated {
		state = "orphaned"
	}
	return fmt.Sprintf("provision invitation %s: %s failed (%s): %v", e.InvitationID, e.Step, state, e.Err)
}

// Unwrap exposes both the cause and ErrDependency so callers can use errors.Is on either.
func (e *ProvisioningError) Unwrap() []error {
	return []error{ErrDependency, e.Err}
}
