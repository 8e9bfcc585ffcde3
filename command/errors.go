package command

import (
	"errors"
	"fmt"

	"github.com/saylorsolutions/console/alias"
	"github.com/saylorsolutions/console/flags"
)

var (
	ErrInvalidName    = flags.ErrInvalidName
	ErrDuplicateName  = flags.ErrDuplicateName
	ErrDuplicateAlias = alias.ErrDuplicateAlias
	ErrSealed         = errors.New("registry is sealed")

	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
)

// UnknownCommandError is returned when a command name doesn't resolve to a registered command or group.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%s: '%s'", ErrUnknownCommand, e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}
