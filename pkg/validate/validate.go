// Package validate holds the parameter checks shared by the pricing core.
package validate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every ParamError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports an input outside its documented domain.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %g)", ErrInvalidParameter, e.Field, e.Reason, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func fail(field string, v float64, reason string) error {
	return &ParamError{Field: field, Value: v, Reason: reason}
}

// Probability requires v in [0,1].
func Probability(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fail(field, v, "must be between 0 and 1")
	}
	return nil
}

// Ratio is Probability under a name that reads better for loadings.
func Ratio(field string, v float64) error {
	return Probability(field, v)
}

// Positive requires a finite v > 0.
func Positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fail(field, v, "must be positive")
	}
	return nil
}

// NonNegative requires a finite v >= 0.
func NonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fail(field, v, "must not be negative")
	}
	return nil
}

// PositiveInt requires v > 0.
func PositiveInt(field string, v int) error {
	if v <= 0 {
		return fail(field, float64(v), "must be positive")
	}
	return nil
}

// NonNegativeInt requires v >= 0.
func NonNegativeInt(field string, v int) error {
	if v < 0 {
		return fail(field, float64(v), "must not be negative")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
