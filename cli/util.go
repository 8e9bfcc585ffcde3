package cli

import (
	"errors"
	"fmt"
)

// MustGet is used with a [flags.Result] getter to panic if the value is not bound, or is not the right type.
// The developer usually knows whether a get call will fail, since the schema is declared up front.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

var (
	ErrArgMap = errors.New("failed to map argument(s)")
)

// MapLeftover is an easy way to map leftover positional tokens to variables (targets), and require a certain amount.
// This will return an error if there are not enough leftovers and/or targets to satisfy the amount required by minArgs.
// Targets elements should not be nil.
func MapLeftover(inv *Invocation, minArgs int, targets ...*string) error {
	var leftover []string
	if inv != nil && inv.Flags != nil {
		leftover = inv.Flags.Leftover()
	}
	if len(leftover) < minArgs {
		return NewUsageError("%w: not enough arguments (%d) to satisfy minArgs (%d)", ErrArgMap, len(leftover), minArgs)
	}
	if len(targets) < minArgs {
		return fmt.Errorf("%w: not enough targets (%d) to satisfy minArgs (%d)", ErrArgMap, len(targets), minArgs)
	}
	for i := 0; i < len(leftover) && i < len(targets); i++ {
		if targets[i] == nil {
			return fmt.Errorf("%w: target %d is nil", ErrArgMap, i)
		}
		*targets[i] = leftover[i]
	}
	return nil
}
