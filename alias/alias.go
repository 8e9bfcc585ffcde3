// Package alias provides a registry of alternative names that resolve to one canonical name.
// It's used for command aliases as well as option shortcuts.
package alias

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrDuplicateAlias = errors.New("duplicate alias")
	ErrSealed         = errors.New("alias table is sealed")
)

// DuplicateAliasError is returned when an alias is already bound to a different canonical name.
type DuplicateAliasError struct {
	Alias     string
	Existing  string
	Canonical string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("%s: '%s' is bound to '%s', cannot bind it to '%s'", ErrDuplicateAlias, e.Alias, e.Existing, e.Canonical)
}

func (e *DuplicateAliasError) Unwrap() error {
	return ErrDuplicateAlias
}

// Table maps each alias to exactly one canonical name, and tracks the aliases of each canonical name.
//
// A Table is populated during registration and then sealed.
// Registration is not concurrency safe, but a sealed Table may be read from any number of goroutines.
type Table struct {
	toCanonical map[string]string
	toAliases   map[string][]string
	sealed      bool
}

// New creates an empty [Table].
// The zero value is also ready to use.
func New() *Table {
	t := new(Table)
	t.init()
	return t
}

func (t *Table) init() {
	if t == nil {
		panic("nil alias table")
	}
	if t.toCanonical == nil {
		t.toCanonical = map[string]string{}
	}
	if t.toAliases == nil {
		t.toAliases = map[string][]string{}
	}
}

// Register binds alias to canonical.
// Self-aliasing is silently ignored, as is registering the same pair twice.
func (t *Table) Register(canonical, alias string) error {
	t.init()
	if t.sealed {
		return fmt.Errorf("%w: unable to register '%s'", ErrSealed, alias)
	}
	if alias == canonical {
		return nil
	}
	if existing, ok := t.toCanonical[alias]; ok {
		if existing == canonical {
			return nil
		}
		return &DuplicateAliasError{Alias: alias, Existing: existing, Canonical: canonical}
	}
	t.toCanonical[alias] = canonical
	aliases := append(t.toAliases[canonical], alias)
	slices.Sort(aliases)
	t.toAliases[canonical] = aliases
	return nil
}

// Resolve returns the canonical name bound to nameOrAlias.
// Names that aren't aliases are returned unchanged.
func (t *Table) Resolve(nameOrAlias string) string {
	if t == nil {
		return nameOrAlias
	}
	if canonical, ok := t.toCanonical[nameOrAlias]; ok {
		return canonical
	}
	return nameOrAlias
}

// Has reports whether alias is registered.
func (t *Table) Has(alias string) bool {
	if t == nil {
		return false
	}
	_, ok := t.toCanonical[alias]
	return ok
}

// Aliases returns a sorted copy of the aliases registered for canonical.
func (t *Table) Aliases(canonical string) []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.toAliases[canonical])
}

// Len returns the number of registered aliases.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.toCanonical)
}

// Seal closes registration.
func (t *Table) Seal() {
	t.init()
	t.sealed = true
}

// Sealed reports whether [Table.Seal] has been called.
func (t *Table) Sealed() bool {
	return t != nil && t.sealed
}
