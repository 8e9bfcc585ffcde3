package flags

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z0-9][\w-]*$`)
	shortcutPattern = regexp.MustCompile(`^[a-zA-Z0-9]$`)
)

// Kind distinguishes options from positional arguments.
type Kind int

const (
	KindOption Kind = iota
	KindArgument
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindArgument:
		return "argument"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ValueType is the type a raw token is coerced to.
type ValueType int

const (
	String ValueType = iota
	Int
	Float
	Bool
)

func (t ValueType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Mode is a set of bits that control how a [Spec] is bound.
type Mode uint8

const (
	Required Mode = 1 << iota // A value must be given.
	Optional                  // A value may be given, the default is used otherwise. This is implied if Required is not set.
	Boolean                   // The option is a switch that takes no value. Options only.
	Array                     // Values accumulate instead of overwriting.
)

// Has reports whether all bits of other are set in m.
func (m Mode) Has(other Mode) bool {
	return m&other == other
}

func (m Mode) String() string {
	var parts []string
	for _, bit := range []struct {
		mode Mode
		name string
	}{{Required, "required"}, {Optional, "optional"}, {Boolean, "boolean"}, {Array, "array"}} {
		if m.Has(bit.mode) {
			parts = append(parts, bit.name)
		}
	}
	if len(parts) == 0 {
		return "optional"
	}
	return strings.Join(parts, "|")
}

// Validator checks a coerced value, and may return a replacement value.
// A non-nil error rejects the value, and its message is reported to the user.
type Validator func(value any) (any, error)

// Spec declares a single option or positional argument.
// Specs are configured with the With* methods, and should be treated as read-only once added to a [Schema].
type Spec struct {
	name        string
	kind        Kind
	typ         ValueType
	mode        Mode
	shortcuts   []string
	description string
	def         any
	hasDefault  bool
	validator   Validator
	envKey      string
}

// NewOption declares an option.
func NewOption(name string, typ ValueType, mode Mode, description string) *Spec {
	return &Spec{name: name, kind: KindOption, typ: typ, mode: mode, description: description}
}

// Switch declares a [Boolean] option, which is false unless given.
func Switch(name, description string) *Spec {
	return NewOption(name, Bool, Boolean, description)
}

// NewArgument declares a positional argument.
func NewArgument(name string, typ ValueType, mode Mode, description string) *Spec {
	return &Spec{name: name, kind: KindArgument, typ: typ, mode: mode, description: description}
}

// WithShortcuts adds single character aliases for an option, e.g. "v" for "verbose".
func (s *Spec) WithShortcuts(shortcuts ...string) *Spec {
	s.shortcuts = append(s.shortcuts, shortcuts...)
	return s
}

// WithDefault sets the value used when nothing is given.
// [Array] specs take a slice of the value type.
func (s *Spec) WithDefault(val any) *Spec {
	s.def = val
	s.hasDefault = true
	return s
}

// WithValidator sets a [Validator] that's run on every coerced value.
func (s *Spec) WithValidator(fn Validator) *Spec {
	s.validator = fn
	return s
}

// WithEnv names a configuration key that's consulted when the option isn't given.
// See [WithEnv] for setting the source.
func (s *Spec) WithEnv(key string) *Spec {
	s.envKey = key
	return s
}

func (s *Spec) Name() string { return s.name }
func (s *Spec) Kind() Kind { return s.kind }
func (s *Spec) Type() ValueType { return s.typ }
func (s *Spec) Mode() Mode { return s.mode }
func (s *Spec) Description() string { return s.description }
func (s *Spec) EnvKey() string { return s.envKey }
func (s *Spec) Shortcuts() []string { return slices.Clone(s.shortcuts) }
func (s *Spec) HasDefault() bool { return s.hasDefault }
func (s *Spec) IsRequired() bool { return s.mode.Has(Required) }
func (s *Spec) IsBoolean() bool { return s.mode.Has(Boolean) }
func (s *Spec) IsArray() bool { return s.mode.Has(Array) }
func (s *Spec) HasValidator() bool { return s.validator != nil }

func (s *Spec) validate(v any) (any, error) {
	if s.validator == nil {
		return v, nil
	}
	return s.validator(v)
}

// Default returns the value bound when the spec isn't given.
// Boolean specs default to false, and Array specs to an empty slice, unless set otherwise.
// Returns nil if there's no default.
func (s *Spec) Default() any {
	switch {
	case s.hasDefault:
		return copyValue(s.def)
	case s.IsBoolean():
		return false
	case s.IsArray():
		return emptySlice(s.typ)
	default:
		return nil
	}
}

func (s *Spec) clone() *Spec {
	cp := *s
	cp.shortcuts = slices.Clone(s.shortcuts)
	cp.def = copyValue(s.def)
	return &cp
}

func (s *Spec) String() string {
	return fmt.Sprintf("%s '%s' (%s, %s)", s.kind, s.name, s.typ, s.mode)
}

// check enforces invariants that don't depend on the rest of a [Schema].
// It also normalizes the default value to the spec's value type.
func (s *Spec) check() error {
	if !namePattern.MatchString(s.name) {
		return fmt.Errorf("%w: %s name '%s'", ErrInvalidName, s.kind, s.name)
	}
	if s.typ < String || s.typ > Bool {
		return fmt.Errorf("%w: %s has unknown value type", ErrInvalidSpec, s)
	}
	if s.mode.Has(Required | Optional) {
		return fmt.Errorf("%w: %s cannot be both required and optional", ErrInvalidSpec, s)
	}
	if !s.mode.Has(Required) {
		s.mode |= Optional
	}
	if s.IsRequired() && s.hasDefault {
		return fmt.Errorf("%w: %s is required, so it can't have a default", ErrInvalidSpec, s)
	}
	for _, short := range s.shortcuts {
		if !shortcutPattern.MatchString(short) {
			return fmt.Errorf("%w: shortcut '%s' for %s must be a single letter or digit", ErrInvalidName, short, s)
		}
	}
	if s.kind == KindArgument {
		if len(s.shortcuts) > 0 {
			return fmt.Errorf("%w: %s cannot have shortcuts", ErrInvalidSpec, s)
		}
		if s.IsBoolean() {
			return fmt.Errorf("%w: %s cannot be boolean", ErrInvalidSpec, s)
		}
		if len(s.envKey) > 0 {
			return fmt.Errorf("%w: %s cannot read from the environment", ErrInvalidSpec, s)
		}
	}
	if s.IsBoolean() {
		if s.typ != Bool {
			return fmt.Errorf("%w: %s must have the bool value type", ErrInvalidSpec, s)
		}
		if s.mode.Has(Required) || s.mode.Has(Array) {
			return fmt.Errorf("%w: %s cannot be required or array", ErrInvalidSpec, s)
		}
		if s.hasDefault {
			return fmt.Errorf("%w: %s always defaults to false", ErrInvalidSpec, s)
		}
	}
	if s.hasDefault {
		def, err := normalize(s.typ, s.IsArray(), s.def)
		if err != nil {
			return fmt.Errorf("%w: default for %s: %v", ErrInvalidSpec, s, err)
		}
		s.def = def
	}
	return nil
}
