package cli

import (
	"fmt"

	"github.com/saylorsolutions/console/command"
	"github.com/saylorsolutions/console/flags"
)

// Command builds a leaf command or group in an [App].
// Builder errors are collected by the App and returned from [App.Exec], so calls can be chained freely.
type Command struct {
	app  *App
	node *command.Node
}

// Command adds a top level leaf command.
// Aliases may be added as a way to support shorter variants of the same command.
func (a *App) Command(name, description string, aliases ...string) *Command {
	return a.register(a.registry, command.NewLeaf(name, nil), description, aliases)
}

// Group adds a top level group of sub-commands.
// Options declared on a group are accepted by all of its sub-commands.
func (a *App) Group(name, description string, aliases ...string) *Command {
	return a.register(a.registry, command.NewGroup(name, nil), description, aliases)
}

func (a *App) register(reg *command.Registry, node *command.Node, description string, aliases []string) *Command {
	node.Describe(description)
	if reg == nil {
		a.addErr(fmt.Errorf("%w: '%s' can't be added to a leaf command", command.ErrInvalidName, node.Name()))
	} else if err := reg.Register(node, aliases...); err != nil {
		a.addErr(err)
	}
	return &Command{app: a, node: node}
}

// Command adds a leaf command to this group.
func (c *Command) Command(name, description string, aliases ...string) *Command {
	return c.app.register(c.node.Children(), command.NewLeaf(name, nil), description, aliases)
}

// Group adds a nested group to this group.
func (c *Command) Group(name, description string, aliases ...string) *Command {
	return c.app.register(c.node.Children(), command.NewGroup(name, nil), description, aliases)
}

// Option declares an option, built with [flags.NewOption] or [flags.Switch].
func (c *Command) Option(spec *flags.Spec) *Command {
	if err := c.node.Schema().AddOption(spec); err != nil {
		c.app.addErr(fmt.Errorf("%s: %w", c.node, err))
	}
	return c
}

// Argument declares the next positional argument, built with [flags.NewArgument].
func (c *Command) Argument(spec *flags.Spec) *Command {
	if err := c.node.Schema().AddArgument(spec); err != nil {
		c.app.addErr(fmt.Errorf("%s: %w", c.node, err))
	}
	return c
}

// Does specifies the [HandlerFunc] executed for this command.
// A command without a handler prints its usage.
func (c *Command) Does(fn HandlerFunc) *Command {
	if fn == nil {
		return c
	}
	c.node.SetHandler(fn)
	return c
}

// Usage allows specifying the usage line shown when help is requested.
// The App name and parent commands will be prepended to this text.
func (c *Command) Usage(format string, args ...any) *Command {
	c.app.setUsage(c.node, fmt.Sprintf(format, args...))
	return c
}

// Node returns the underlying [command.Node].
func (c *Command) Node() *command.Node {
	return c.node
}

// ID returns the delimited canonical ID of the command.
func (c *Command) ID() string {
	return c.node.ID()
}
