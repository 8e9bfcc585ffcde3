package flags

import (
	"fmt"
	"maps"
	"slices"
)

// Result holds the values bound by [Parse].
//
// Every declared option with a default, every [Boolean] option, and every [Array] option has a value, whether it was given or not.
// Use [Result.IsSet] to tell the difference.
type Result struct {
	schema   *Schema
	options  map[string]any
	given    map[string]bool
	args     map[string]any
	argOrder []string
	leftover []string
}

func newResult(schema *Schema) *Result {
	return &Result{
		schema:  schema,
		options: map[string]any{},
		given:   map[string]bool{},
		args:    map[string]any{},
	}
}

func (r *Result) bindArg(spec *Spec, val any) {
	r.args[spec.name] = val
	r.argOrder = append(r.argOrder, spec.name)
}

// Option returns the value bound to an option by canonical name or shortcut.
func (r *Result) Option(name string) (any, bool) {
	if spec, ok := r.schema.Option(name); ok {
		name = spec.name
	}
	val, ok := r.options[name]
	return copyValue(val), ok
}

// Arg returns the value bound to a positional argument.
func (r *Result) Arg(name string) (any, bool) {
	val, ok := r.args[name]
	return copyValue(val), ok
}

// ArgAt returns the value bound to the argument declared at index.
func (r *Result) ArgAt(index int) (any, bool) {
	args := r.schema.args
	if index < 0 || index >= len(args) {
		return nil, false
	}
	return r.Arg(args[index].name)
}

// IsSet reports whether an option or argument was given, rather than defaulted.
// Options bound from an environment source count as given.
func (r *Result) IsSet(name string) bool {
	if spec, ok := r.schema.Option(name); ok {
		return r.given[spec.name]
	}
	return slices.Contains(r.argOrder, name)
}

// Options returns a copy of all bound option values by canonical name.
func (r *Result) Options() map[string]any {
	out := make(map[string]any, len(r.options))
	for k, v := range r.options {
		out[k] = copyValue(v)
	}
	return out
}

// Args returns a copy of all bound argument values by name.
func (r *Result) Args() map[string]any {
	out := make(map[string]any, len(r.args))
	for k, v := range r.args {
		out[k] = copyValue(v)
	}
	return out
}

// Leftover returns positional tokens that weren't bound to a declared argument.
func (r *Result) Leftover() []string {
	return slices.Clone(r.leftover)
}

// Tokens renders the given values back into canonical tokens.
// Options come first as "--name=value" sorted by name, followed by "--" and then positional values.
// Parsing the returned tokens with the same [Schema] produces an equal [Result].
func (r *Result) Tokens() []string {
	var tokens []string
	for _, name := range slices.Sorted(maps.Keys(r.given)) {
		for _, elem := range elements(r.options[name]) {
			tokens = append(tokens, fmt.Sprintf("--%s=%s", name, formatValue(elem)))
		}
	}
	if len(r.argOrder) == 0 && len(r.leftover) == 0 {
		return tokens
	}
	tokens = append(tokens, terminator)
	for _, name := range r.argOrder {
		for _, elem := range elements(r.args[name]) {
			tokens = append(tokens, formatValue(elem))
		}
	}
	return append(tokens, r.leftover...)
}

func (r *Result) lookup(name string) (any, error) {
	if val, ok := r.Option(name); ok {
		return val, nil
	}
	if val, ok := r.Arg(name); ok {
		return val, nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrNotBound, name)
}

// Get returns the value bound to an option or argument as type T.
// Options are checked before arguments.
func Get[T any](r *Result, name string) (T, error) {
	var zero T
	val, err := r.lookup(name)
	if err != nil {
		return zero, err
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: '%s' is %T, not %T", ErrWrongType, name, val, zero)
	}
	return typed, nil
}

func (r *Result) GetString(name string) (string, error) { return Get[string](r, name) }
func (r *Result) GetInt(name string) (int, error) { return Get[int](r, name) }
func (r *Result) GetFloat(name string) (float64, error) { return Get[float64](r, name) }
func (r *Result) GetBool(name string) (bool, error) { return Get[bool](r, name) }
func (r *Result) GetStrings(name string) ([]string, error) { return Get[[]string](r, name) }
func (r *Result) GetInts(name string) ([]int, error) { return Get[[]int](r, name) }
func (r *Result) GetFloats(name string) ([]float64, error) { return Get[[]float64](r, name) }
func (r *Result) GetBools(name string) ([]bool, error) { return Get[[]bool](r, name) }
