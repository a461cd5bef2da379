/*
errors.go - Centralized error types for the interest engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every error here is a caller-input validation failure: none are
  transient, so none are retryable. A failed computation yields no amount.

ERROR KINDS:
  DateOrderError          From is after To
  CursorTooFarError       NextInterest implies more than one month of
                          pro-rata under a periodic convention
  UnknownConventionError  convention value outside the enum
  UnknownCompoundModeError
  InvalidRateError        NaN, infinite or <= -100%

USAGE:
  if errors.Is(err, interest.ErrCursorTooFar) {
      ...
  }
  var dateErr *interest.DateOrderError
  if errors.As(err, &dateErr) {
      log.Printf("bad span: %s > %s", dateErr.From, dateErr.To)
  }
*/
package interest

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrDateOrder          = errors.New("from date after to date")
	ErrMissingDate        = errors.New("from and to dates are required")
	ErrCursorTooFar       = errors.New("next interest date too far from period start")
	ErrUnknownConvention  = errors.New("unknown day-count convention")
	ErrUnknownCompounding = errors.New("unknown compounding mode")
	ErrInvalidRate        = errors.New("invalid interest rate")
	ErrRecordNotFound     = errors.New("calculation record not found")
	ErrDuplicateRecord    = errors.New("duplicate calculation record id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

type DateOrderError struct {
	From Date
	To   Date
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("from date %s is after to date %s", e.From, e.To)
}

func (e *DateOrderError) Unwrap() error { return ErrDateOrder }

// CursorTooFarError reports a NextInterest date whose distance from the
// period start is more than one whole month.
type CursorTooFarError struct {
	From    Date
	Cursor  Date
	Elapsed Span
}

func (e *CursorTooFarError) Error() string {
	return fmt.Sprintf("next interest date %s is %s after %s; at most one month is allowed",
		e.Cursor, e.Elapsed, e.From)
}

func (e *CursorTooFarError) Unwrap() error { return ErrCursorTooFar }

type UnknownConventionError struct {
	Value any
}

func (e *UnknownConventionError) Error() string {
	return fmt.Sprintf("unknown day-count convention: %v", e.Value)
}

func (e *UnknownConventionError) Unwrap() error { return ErrUnknownConvention }

type UnknownCompoundModeError struct {
	Value any
}

func (e *UnknownCompoundModeError) Error() string {
	return fmt.Sprintf("unknown compounding mode: %v", e.Value)
}

func (e *UnknownCompoundModeError) Unwrap() error { return ErrUnknownCompounding }

type InvalidRateError struct {
	Rate float64
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid interest rate %v: must be a finite fraction above -1", e.Rate)
}

func (e *InvalidRateError) Unwrap() error { return ErrInvalidRate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDateOrder) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrCursorTooFar) ||
		errors.Is(err, ErrUnknownConvention) ||
		errors.Is(err, ErrUnknownCompounding) ||
		errors.Is(err, ErrInvalidRate)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
