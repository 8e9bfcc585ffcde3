package flags

import (
	"errors"
	"fmt"
	"strings"
)

// Registration errors are returned while building a [Schema].
var (
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidSpec   = errors.New("invalid spec")
	ErrDuplicateName = errors.New("duplicate name")
	ErrSealed        = errors.New("schema is sealed")
)

// Parse errors are returned from [Parse], and always wrap one of these.
var (
	ErrUnknownFlag      = errors.New("unknown flag")
	ErrMissingValue     = errors.New("missing value")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrValidationFailed = errors.New("validation failed")
	ErrRequiredMissing  = errors.New("required value missing")
)

// Lookup errors are returned from the [Result] getters.
var (
	ErrNotBound  = errors.New("no value bound")
	ErrWrongType = errors.New("wrong value type")
)

func dashed(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// UnknownFlagError is returned when an option token doesn't match any declared option or shortcut.
type UnknownFlagError struct {
	Name  string
	Token string // Token is the flag as it was given, with its dashes.
}

func (e *UnknownFlagError) Error() string {
	if len(e.Token) > 0 {
		return fmt.Sprintf("%s: %s", ErrUnknownFlag, e.Token)
	}
	return fmt.Sprintf("%s: %s", ErrUnknownFlag, dashed(e.Name))
}

func (e *UnknownFlagError) Unwrap() error { return ErrUnknownFlag }

// MissingValueError is returned when a value-bearing option has no inline or following value.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s: %s requires a value", ErrMissingValue, dashed(e.Name))
}

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// InvalidValueTypeError is returned when a raw value can't be coerced to the declared type.
type InvalidValueTypeError struct {
	Name  string
	Value string
	Type  ValueType
}

func (e *InvalidValueTypeError) Error() string {
	if e.Type == Bool {
		return fmt.Sprintf("%s: '%s' is not a boolean for %s, expected one of: %s", ErrInvalidValueType, e.Value, e.Name,
			strings.Join(append(append([]string{}, TrueWords...), FalseWords...), ", "))
	}
	return fmt.Sprintf("%s: '%s' is not a valid %s for %s", ErrInvalidValueType, e.Value, e.Type, e.Name)
}

func (e *InvalidValueTypeError) Unwrap() error { return ErrInvalidValueType }

// ValidationFailedError is returned when a [Validator] rejects a value.
type ValidationFailedError struct {
	Name    string
	Message string
	Err     error
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidationFailed, e.Name, e.Message)
}

func (e *ValidationFailedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidationFailed}
	}
	return []error{ErrValidationFailed, e.Err}
}

// RequiredMissingError is returned when a [Required] option or argument is never bound.
type RequiredMissingError struct {
	Name string
	Kind Kind
}

func (e *RequiredMissingError) Error() string {
	if e.Kind == KindOption {
		return fmt.Sprintf("%s: option %s", ErrRequiredMissing, dashed(e.Name))
	}
	return fmt.Sprintf("%s: argument '%s'", ErrRequiredMissing, e.Name)
}

func (e *RequiredMissingError) Unwrap() error { return ErrRequiredMissing }
