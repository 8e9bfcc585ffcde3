package manifest

import (
	"strings"
)

// collector gathers every problem found while applying a manifest, so they can be reported together.
// A collector is not concurrency safe.
type collector struct {
	errs []error
}

// Add adds a new, potentially nil error.
// Nil errors will not be included.
func (c *collector) Add(err error) *collector {
	if err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// Result will return nil if no errors have been added.
// Otherwise, it will return itself.
func (c *collector) Result() error {
	if len(c.errs) > 0 {
		return c
	}
	return nil
}

func (c *collector) Error() string {
	msgs := make([]string, len(c.errs))
	for i, err := range c.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap allows using [errors.Is] and [errors.As] to identify any collected error.
func (c *collector) Unwrap() []error {
	return c.errs
}
