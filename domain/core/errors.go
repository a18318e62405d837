package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Parameter errors, raised before any generation happens
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidCount     = fmt.Errorf("%w: count", ErrInvalidParameter)
	ErrInvalidWeights   = fmt.Errorf("%w: weight table", ErrInvalidParameter)
	ErrEmptyItemSet     = fmt.Errorf("%w: item set is empty", ErrInvalidParameter)

	// Measurement errors
	ErrUndefinedMetric      = errors.New("undefined metric")
	ErrNoClicks             = fmt.Errorf("%w: arm has no clicks", ErrUndefinedMetric)
	ErrNumericDegeneracy    = errors.New("numeric degeneracy")
	ErrZeroVariance         = fmt.Errorf("%w: zero variance", ErrNumericDegeneracy)
	ErrInsufficientData     = fmt.Errorf("%w: insufficient observations", ErrNumericDegeneracy)
	ErrZeroExpectedCell     = fmt.Errorf("%w: contingency table has a zero expected frequency", ErrNumericDegeneracy)
	ErrDegenerateProportion = fmt.Errorf("%w: pooled proportion is 0 or 1", ErrNumericDegeneracy)

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
)

// Error constructors with context
func NewParameterError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, field, reason)
}

func NewCountError(field string, n int, reason string) error {
	return fmt.Errorf("%w %s=%d: %s", ErrInvalidCount, field, n, reason)
}

func NewWeightError(table string, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidWeights, table, reason)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsUndefinedMetric(err error) bool {
	return errors.Is(err, ErrUndefinedMetric)
}

func IsNumericDegeneracy(err error) bool {
	return errors.Is(err, ErrNumericDegeneracy)
}

// IsUndefinedResult reports whether err means a statistic cannot be measured,
// as opposed to a programming or parameter failure.
func IsUndefinedResult(err error) bool {
	return IsUndefinedMetric(err) || IsNumericDegeneracy(err)
}
