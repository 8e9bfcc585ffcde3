package cli

import "context"

// PreExec is a function that may run before execution of a command's handler.
type PreExec func(ctx context.Context, inv *Invocation) error

// AddPreExec registers a function that will be executed right before any handler in this App runs.
// If an error is returned from a [PreExec], then the handler will not be executed, and the error will be returned from Exec instead.
// Note that no [PreExec] functions run when only usage is printed.
//
// Passing a nil [PreExec] function to this method will panic.
func (a *App) AddPreExec(fn PreExec) *App {
	if fn == nil {
		panic("nil pre-exec function")
	}
	a.preExec = append(a.preExec, fn)
	return a
}

func (a *App) runPreExec(ctx context.Context, inv *Invocation) error {
	for _, fn := range a.preExec {
		if err := fn(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}
