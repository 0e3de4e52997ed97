/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All validation outcomes in one place. Every error here is raised
  synchronously before any state mutation - the engine never partially
  writes and never silently corrects (an over-long request is rejected,
  not clamped to the available balance).

ERROR CATEGORIES:
  1. Range errors - malformed date spans reaching the day counter
  2. Validation errors - business rule violations on create/edit
  3. Transition errors - illegal lifecycle state changes

USAGE:
  Callers branch with errors.Is(), or errors.As() for the structured
  InsufficientBalanceError which carries the available amount:

    var ibe *leave.InsufficientBalanceError
    if errors.As(err, &ibe) {
        show(ibe.Available)
    }
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned by the day counter when end < start.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrInvalidDateRange is returned when a request's end date precedes
	// its start date.
	ErrInvalidDateRange = errors.New("invalid date range: end before start")

	// ErrMissingAcquisitionPeriod is returned when no acquisition period is
	// selected for a create or edit.
	ErrMissingAcquisitionPeriod = errors.New("no acquisition period selected")

	// ErrPeriodExhausted is returned when the selected period is flagged
	// fully consumed. Rejection is unconditional, regardless of request size.
	ErrPeriodExhausted = errors.New("acquisition period fully consumed")

	// ErrInsufficientBalance is returned when requested days exceed the
	// period's remaining balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidSoldDays is returned when sold days fall outside 0-10.
	ErrInvalidSoldDays = errors.New("sold days must be between 0 and 10")

	// ErrInvalidTransition is returned for illegal status changes
	// (e.g. approving a rejected request).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRequestNotFound is returned when a referenced request doesn't exist.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports a balance shortage. Available is carried
// so the caller can present it to the requester.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: %d days available, %d requested",
		e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// TransitionError reports an illegal lifecycle transition with the states
// involved.
type TransitionError struct {
	From RequestStatus
	To   RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition request from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is a recoverable, caller-facing
// validation outcome rather than an infrastructure failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrMissingAcquisitionPeriod) ||
		errors.Is(err, ErrPeriodExhausted) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidSoldDays)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrEmployeeNotFound)
}
