package shear

import (
	"errors"
	"fmt"
)

// Domain errors for structural model operations.
var (
	// ErrConfiguration indicates a physically meaningless model parameter.
	ErrConfiguration = errors.New("shear: invalid configuration")

	// ErrNumerical indicates a matrix operation that failed to produce a
	// usable result.
	ErrNumerical = errors.New("shear: numerical failure")

	// ErrInputRange indicates an analysis input outside its valid range.
	ErrInputRange = errors.New("shear: input out of range")
)

// ConfigError reports the configuration field that was rejected.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("shear: invalid configuration: %s: %s", e.Field, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// NumericalError reports the operation that failed and why.
type NumericalError struct {
	Op     string
	Detail string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("shear: numerical failure in %s: %s", e.Op, e.Detail)
}

func (e *NumericalError) Unwrap() error {
	return ErrNumerical
}

// RangeError reports an analysis input that was out of range.
type RangeError struct {
	Field  string
	Detail string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("shear: input out of range: %s: %s", e.Field, e.Detail)
}

func (e *RangeError) Unwrap() error {
	return ErrInputRange
}
