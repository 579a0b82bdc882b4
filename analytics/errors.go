/*
errors.go - Centralized error types for the analytics engine

PURPOSE:
  All validation errors in one place for consistency and discoverability.
  Every error here is a precondition failure: raised synchronously before
  any accumulation, never retried.

ERROR CATEGORIES:
  1. Data errors   - Top-level input collections malformed or empty
  2. Config errors - Policy configuration absent, incomplete, or wrong type

WHAT IS NOT AN ERROR:
  Unknown seller/product references and non-numeric fields inside
  individual records are silently absorbed (skip or coerce to zero).
  One malformed record never aborts the whole report.

USAGE:
  rows, err := analytics.Analyze(data, config)
  if errors.Is(err, analytics.ErrInvalidData) {
      // top-level input shape was wrong, nothing was processed
  }

SEE ALSO:
  - validate.go: Where these errors are raised
  - factory/config.go: Raises the config errors at the JSON boundary
*/
package analytics

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidData is returned when the input data is missing, or any of
	// the sellers/products/purchase_records collections is absent or empty.
	ErrInvalidData = errors.New("invalid input data")

	// ErrInvalidConfig is returned when the policy configuration is absent
	// or not a structured object.
	ErrInvalidConfig = errors.New("config must be an object")

	// ErrMissingPolicy is returned when the revenue or bonus policy field
	// is not defined in the configuration.
	ErrMissingPolicy = errors.New("policy not defined in config")

	// ErrInvalidPolicyType is returned when a policy field is present but
	// does not resolve to an invocable policy function.
	ErrInvalidPolicyType = errors.New("policy is not a function")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDataError reports which top-level collection failed the shape check.
type InvalidDataError struct {
	Field  string // "data", "sellers", "products", "purchase_records"
	Reason string // "missing", "not a sequence", "empty"
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid input data: %s %s", e.Field, e.Reason)
}

func (e *InvalidDataError) Unwrap() error { return ErrInvalidData }

// PolicyError reports which policy field failed and how. Err is one of
// ErrMissingPolicy or ErrInvalidPolicyType.
type PolicyError struct {
	Field string // "calculateRevenue" or "calculateBonus"
	Err   error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *PolicyError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is any of the precondition
// failures raised before accumulation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingPolicy) ||
		errors.Is(err, ErrInvalidPolicyType)
}
