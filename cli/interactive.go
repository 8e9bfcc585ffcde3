package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/google/shlex"
)

const (
	UseCommand  = "$use"  // This is used in interactive mode to indicate that a set of sub-commands should be pushed to the invocation stack.
	BackCommand = "$back" // This is used in interactive mode to indicate that the last element on the invocation stack should be popped.
)

var (
	InteractiveFlag         = "-i"                  // InteractiveFlag specifies the flag that the user should pass to trigger [App.RespondInteractive].
	InteractiveQuitCommands = []string{"quit", "x"} // InteractiveQuitCommands is a slice of strings that should escape from interactive mode.
)

// RespondInteractive will run [App.Interactive] with in if the [InteractiveFlag] is the first argument after the script name in argv.
// Returns false if interactive mode was not requested by the user.
func (a *App) RespondInteractive(ctx context.Context, argv []string, in io.Reader) bool {
	if len(argv) < 2 || argv[1] != InteractiveFlag {
		return false
	}
	if err := a.Interactive(ctx, in); err != nil {
		a.printer.Println("Error running command interactively:", err)
	}
	return true
}

// Interactive reads command lines from in and executes them in this process until in is exhausted, ctx is done, or one of the [InteractiveQuitCommands] is entered.
// Lines are split with shell quoting rules.
//
// The [UseCommand] pushes one or more sub-commands to an invocation stack, so they're prepended to every following line.
// The [BackCommand] pops the stack.
func (a *App) Interactive(ctx context.Context, in io.Reader) error {
	var (
		commandStack [][]string
	)
	prefixCommands := func() []string {
		if len(commandStack) == 0 {
			return nil
		}
		return commandStack[len(commandStack)-1]
	}
	scanner := bufio.NewScanner(in)
	p := a.printer
	p.Printf(`Running '%s' interactively. Enter %s to exit.
Use the %s command with one or more sub-commands to push them to the execution stack, and %s to pop and return.
`, a.name, strings.Join(InteractiveQuitCommands, " or "),
		UseCommand, BackCommand)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(commandStack) > 0 {
			p.Printf("%s %s> ", a.name, strings.Join(prefixCommands(), " "))
		} else {
			p.Printf("%s> ", a.name)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if slices.Contains(InteractiveQuitCommands, strings.ToLower(line)) {
			return nil
		}
		segments, err := shlex.Split(line)
		if err != nil {
			p.Println("Error reading command:", err)
			continue
		}
		if len(segments) == 0 {
			continue
		}
		switch segments[0] {
		case UseCommand:
			newStack := append(slices.Clone(prefixCommands()), segments[1:]...)
			p.Printf("Using '%s'\n", strings.Join(newStack, " "))
			commandStack = append(commandStack, newStack)
			continue
		case BackCommand:
			if len(commandStack) == 0 {
				p.Println("Already at root command")
				continue
			}
			commandStack = commandStack[:len(commandStack)-1]
			continue
		case InteractiveFlag:
			p.Println("Cannot run interactively twice")
			continue
		}
		segments = append(slices.Clone(prefixCommands()), segments...)
		if err := a.Exec(ctx, segments); err != nil && !errors.Is(err, &UsageError{}) {
			p.Println("Error running command:", err)
		}
	}
}
