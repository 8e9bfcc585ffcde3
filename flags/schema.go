package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/saylorsolutions/console/alias"
)

// Schema is the set of options and positional arguments accepted by one command.
// Arguments are ordered, options are keyed by canonical name, and option shortcuts are resolved with a schema-local [alias.Table].
type Schema struct {
	args      []*Spec
	options   map[string]*Spec
	shortcuts *alias.Table
	sealed    bool
}

// NewSchema creates an empty [Schema].
func NewSchema() *Schema {
	return &Schema{
		options:   map[string]*Spec{},
		shortcuts: alias.New(),
	}
}

func (s *Schema) init() {
	if s.options == nil {
		s.options = map[string]*Spec{}
	}
	if s.shortcuts == nil {
		s.shortcuts = alias.New()
	}
}

// AddOption declares an option.
// A copy of spec is stored, so later changes to spec have no effect.
func (s *Schema) AddOption(spec *Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: nil option", ErrInvalidSpec)
	}
	if spec.kind != KindOption {
		return fmt.Errorf("%w: %s added as an option", ErrInvalidSpec, spec)
	}
	s.init()
	if s.sealed {
		return fmt.Errorf("%w: unable to add %s", ErrSealed, spec)
	}
	spec = spec.clone()
	if err := spec.check(); err != nil {
		return err
	}
	if _, ok := s.options[spec.name]; ok || s.shortcuts.Has(spec.name) {
		return fmt.Errorf("%w: option '%s' is already declared", ErrDuplicateName, spec.name)
	}
	for _, short := range spec.shortcuts {
		if _, ok := s.options[short]; ok {
			return fmt.Errorf("%w: shortcut '%s' is already an option name", ErrDuplicateName, short)
		}
		if existing := s.shortcuts.Resolve(short); existing != short && existing != spec.name {
			return fmt.Errorf("option '%s': %w", spec.name, &alias.DuplicateAliasError{Alias: short, Existing: existing, Canonical: spec.name})
		}
	}
	for _, short := range spec.shortcuts {
		if err := s.shortcuts.Register(spec.name, short); err != nil {
			return err
		}
	}
	s.options[spec.name] = spec
	return nil
}

// AddArgument declares the next positional argument.
// Only the last argument may be in [Array] mode, and a [Required] argument can't follow an optional one.
func (s *Schema) AddArgument(spec *Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: nil argument", ErrInvalidSpec)
	}
	if spec.kind != KindArgument {
		return fmt.Errorf("%w: %s added as an argument", ErrInvalidSpec, spec)
	}
	s.init()
	if s.sealed {
		return fmt.Errorf("%w: unable to add %s", ErrSealed, spec)
	}
	spec = spec.clone()
	if err := spec.check(); err != nil {
		return err
	}
	for _, arg := range s.args {
		if arg.name == spec.name {
			return fmt.Errorf("%w: argument '%s' is already declared", ErrDuplicateName, spec.name)
		}
	}
	if n := len(s.args); n > 0 {
		last := s.args[n-1]
		if last.IsArray() {
			return fmt.Errorf("%w: %s cannot follow array %s", ErrInvalidSpec, spec, last)
		}
		if spec.IsRequired() && !last.IsRequired() {
			return fmt.Errorf("%w: required %s cannot follow optional %s", ErrInvalidSpec, spec, last)
		}
	}
	s.args = append(s.args, spec)
	return nil
}

// Add declares each spec as an option or argument, according to its [Kind].
// The first error is returned, and specs before it remain declared.
func (s *Schema) Add(specs ...*Spec) error {
	for _, spec := range specs {
		if spec == nil {
			return fmt.Errorf("%w: nil spec", ErrInvalidSpec)
		}
		var err error
		if spec.kind == KindArgument {
			err = s.AddArgument(spec)
		} else {
			err = s.AddOption(spec)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MustAdd is like [Schema.Add], but panics on error.
// It's intended for application bootstrap, where a bad declaration is a programming error.
func (s *Schema) MustAdd(specs ...*Spec) *Schema {
	if err := s.Add(specs...); err != nil {
		panic(err)
	}
	return s
}

// Option finds an option by canonical name or shortcut.
func (s *Schema) Option(nameOrShortcut string) (*Spec, bool) {
	if s == nil {
		return nil, false
	}
	spec, ok := s.options[s.shortcuts.Resolve(nameOrShortcut)]
	return spec, ok
}

// Argument finds a positional argument by name.
func (s *Schema) Argument(name string) (*Spec, bool) {
	if s == nil {
		return nil, false
	}
	for _, arg := range s.args {
		if arg.name == name {
			return arg, true
		}
	}
	return nil, false
}

// Options returns declared options sorted by name.
func (s *Schema) Options() []*Spec {
	if s == nil {
		return nil
	}
	opts := make([]*Spec, 0, len(s.options))
	for _, spec := range s.options {
		opts = append(opts, spec)
	}
	slices.SortFunc(opts, func(a, b *Spec) int {
		return strings.Compare(a.name, b.name)
	})
	return opts
}

// Arguments returns declared arguments in position order.
func (s *Schema) Arguments() []*Spec {
	if s == nil {
		return nil
	}
	return slices.Clone(s.args)
}

// Shortcuts returns the sorted shortcuts for the named option.
func (s *Schema) Shortcuts(name string) []string {
	if s == nil {
		return nil
	}
	return s.shortcuts.Aliases(name)
}

// Len returns the number of declared options and arguments.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.options) + len(s.args)
}

// Seal prevents further declarations.
func (s *Schema) Seal() {
	if s == nil {
		return
	}
	s.init()
	s.sealed = true
	s.shortcuts.Seal()
}

// Inherit returns a new [Schema] with this schema's arguments and options, plus the options of each parent.
// Options already declared take precedence: a parent option with a clashing name is skipped, and clashing parent shortcuts are dropped.
// Parent arguments are never inherited.
func (s *Schema) Inherit(parents ...*Schema) *Schema {
	merged := NewSchema()
	if s != nil {
		merged.args = slices.Clone(s.args)
		for name, spec := range s.options {
			merged.options[name] = spec
			for _, short := range s.shortcuts.Aliases(name) {
				_ = merged.shortcuts.Register(name, short)
			}
		}
	}
	for _, parent := range parents {
		for _, spec := range parent.Options() {
			if _, ok := merged.Option(spec.name); ok {
				continue
			}
			inherited := spec.clone()
			inherited.shortcuts = nil
			for _, short := range spec.shortcuts {
				if _, ok := merged.Option(short); ok {
					continue
				}
				inherited.shortcuts = append(inherited.shortcuts, short)
			}
			merged.options[inherited.name] = inherited
			for _, short := range inherited.shortcuts {
				_ = merged.shortcuts.Register(inherited.name, short)
			}
		}
	}
	return merged
}
