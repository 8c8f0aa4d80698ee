package service

import (
	"errors"
	"fmt"
)

// Domain Errors
var (
	// Validation failures. All wrap ErrValidation so callers can match the
	// class without naming every rule.
	ErrValidation    = errors.New("validation failed")
	ErrInvalidCourse = fmt.Errorf("%w: course must be two letters followed by 1-3 digits, like CS101", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: date must be a calendar date in YYYY-MM-DD form", ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: status must be Present or Absent", ErrValidation)
	ErrEmptyName     = fmt.Errorf("%w: name must not be empty", ErrValidation)

	// ErrDuplicateName signals a name collision on add or update. The
	// store's unique constraint is the authoritative source; the friendly
	// pre-check raises the same error.
	ErrDuplicateName = errors.New("a student with this name already exists; try adding initials")

	// ErrNotFound signals that a report subject does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint signals a store-level rejection that no validation rule
	// caught first.
	ErrConstraint = errors.New("store constraint violated")
)

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
