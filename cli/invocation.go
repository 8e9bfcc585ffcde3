package cli

import (
	"context"
	"log/slog"

	"github.com/saylorsolutions/console/command"
	"github.com/saylorsolutions/console/flags"
)

// HandlerFunc is a function that may be executed for a command.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// Invocation describes a single execution of a command.
type Invocation struct {
	ID      string         // ID uniquely identifies this invocation in logs.
	Route   *command.Route // Route describes how the command was resolved.
	Flags   *flags.Result  // Flags holds the parsed options and arguments.
	Printer *Printer
	Logger  *slog.Logger // Logger is already annotated with the invocation ID and command.
}

// Command returns the canonical ID of the executed command.
func (inv *Invocation) Command() string {
	return inv.Route.ID
}
