// =============================================================================
// PNP Vendor Generator - Validation
// =============================================================================
//
// This module validates vendor records before they are rendered into the
// generated vendor table:
//   - PNP IDs must be exactly three ASCII characters
//   - PNP IDs must be unique across the whole registry
//
// ERROR HANDLING:
//   Validation is fail-fast. The first violation ends the run; there is no
//   per-row recovery. Every error is a *ValidationError that unwraps to one of
//   the sentinel errors below, so callers can test with errors.Is.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"iter"

	"github.com/go-playground/validator/v10"

	"github.com/ginjaninja78/pnp-vendors/pnp"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidPNPID is returned when a PNP ID is not exactly 3 ASCII bytes.
	ErrInvalidPNPID = errors.New("PNP ID must be exactly 3 ASCII characters")

	// ErrDuplicatePNPID is returned when a PNP ID appears more than once.
	// Duplicate keys in a map literal do not compile, so they are rejected here.
	ErrDuplicatePNPID = errors.New("duplicate PNP ID")
)

// pnpIDRule is the validator tag applied to PNP IDs. "len" counts runes and
// "ascii" restricts every rune to one byte, so together they pin the ASCII
// encoding to exactly three bytes.
const pnpIDRule = "len=3,ascii"

// =============================================================================
// VALIDATION ERROR TYPE
// =============================================================================

// ValidationError represents a single validation failure.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Err is the sentinel error describing the failure.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field '%s' failed rule '%s': %v (value: %q)", e.Field, e.Rule, e.Err, e.Value)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// VALIDATOR
// =============================================================================

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a struct using its `validate` tags. It is used for
// configuration structs.
func Struct(s any) error {
	return validate.Struct(s)
}

// ValidatePNPID checks that id encodes to exactly three ASCII bytes.
//
// RETURNS:
//   - nil if the ID is valid.
//   - A *ValidationError wrapping ErrInvalidPNPID otherwise.
func ValidatePNPID(id string) error {
	err := validate.Var(id, pnpIDRule)
	if err == nil {
		return nil
	}

	rule := pnpIDRule
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		rule = fieldErrs[0].Tag()
	}

	return &ValidationError{
		Field: "pnp_id",
		Value: id,
		Rule:  rule,
		Err:   ErrInvalidPNPID,
	}
}

// UniqueIDs wraps a vendor sequence and fails on the first PNP ID that was
// already seen. Records before the duplicate are passed through unchanged;
// nothing is yielded after the error.
func UniqueIDs(vendors iter.Seq2[pnp.Vendor, error]) iter.Seq2[pnp.Vendor, error] {
	return func(yield func(pnp.Vendor, error) bool) {
		seen := make(map[string]struct{})

		for vendor, err := range vendors {
			if err != nil {
				yield(pnp.Vendor{}, err)
				return
			}

			if _, dup := seen[vendor.PNPID]; dup {
				yield(pnp.Vendor{}, &ValidationError{
					Field: "pnp_id",
					Value: vendor.PNPID,
					Rule:  "unique",
					Err:   ErrDuplicatePNPID,
				})
				return
			}
			seen[vendor.PNPID] = struct{}{}

			if !yield(vendor, nil) {
				return
			}
		}
	}
}
