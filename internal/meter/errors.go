package meter

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a serial or id was looked up in its expected
	// location and no row came back.
	ErrNotFound = errors.New("meter not found")

	// ErrDuplicateSerial means a serial already occupies a location and
	// cannot be introduced again.
	ErrDuplicateSerial = errors.New("serial number already exists")

	// ErrAccountDeactivated means the acting user's profile is inactive.
	// Checked before any table is touched.
	ErrAccountDeactivated = errors.New("account deactivated")

	// ErrDuplicateOperation means the idempotency key was already recorded,
	// so the operation has run (or is running) and must not apply twice.
	ErrDuplicateOperation = errors.New("operation already applied")
)

// ValidationError rejects malformed input before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
