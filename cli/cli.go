package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/saylorsolutions/console/command"
	"github.com/saylorsolutions/console/env"
	"github.com/saylorsolutions/console/flags"
)

const (
	HelpCommand    = "help"    // HelpCommand prints usage information for the named command, or the whole App.
	VersionCommand = "version" // VersionCommand prints the App's name and version.
)

var (
	ErrUnknownCommand = command.ErrUnknownCommand
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of flags that should trigger the output of usage information.
)

// App executes commands registered in a [command.Registry], and binds their handlers.
// Commands are added with [App.Command] and [App.Group], or loaded into [App.Registry] and bound with [App.Handle].
//
// The registry is sealed the first time the App executes, and must not be changed after that.
type App struct {
	name      string
	version   string
	usage     string
	usages    map[*command.Node]string
	registry  *command.Registry
	printer   *Printer
	logger    *slog.Logger
	parseOpts []flags.ParseOption
	preExec   []PreExec

	errMux sync.Mutex
	errs   []error

	sealOnce   sync.Once
	dispatcher *command.Dispatcher
}

// Option configures an [App] in [New].
type Option func(a *App)

// WithVersion sets the version printed by the [VersionCommand].
func WithVersion(version string) Option {
	return func(a *App) {
		a.version = version
	}
}

// WithLogger sets the logger used for dispatch events and passed to handlers.
// A nil logger discards everything, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		a.logger = logger
	}
}

// WithPrinter sets the [Printer] used for usage and handler output.
func WithPrinter(printer *Printer) Option {
	return func(a *App) {
		if printer != nil {
			a.printer = printer
		}
	}
}

// WithEnv binds options declared with [flags.Spec.WithEnv] from src.
func WithEnv(src env.Source) Option {
	return func(a *App) {
		a.parseOpts = append(a.parseOpts, flags.WithEnv(src))
	}
}

// WithDelimiter changes the delimiter between group and sub-command names.
func WithDelimiter(delimiter string) Option {
	return func(a *App) {
		a.registry = command.NewRegistry(command.WithDelimiter(delimiter))
	}
}

// WithParseOptions passes options to [flags.Parse] for every command.
func WithParseOptions(opts ...flags.ParseOption) Option {
	return func(a *App) {
		a.parseOpts = append(a.parseOpts, opts...)
	}
}

// New creates an [App].
// The name should be the name used to invoke the CLI, and is shown in usage output.
func New(name string, opts ...Option) *App {
	a := &App{
		name:     name,
		usages:   map[*command.Node]string{},
		registry: command.NewRegistry(),
		printer:  NewPrinter(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the name used to invoke the CLI.
func (a *App) Name() string {
	return a.name
}

// Version returns the configured version, or "dev" if none was given.
func (a *App) Version() string {
	if len(a.version) == 0 {
		return "dev"
	}
	return a.version
}

// Registry exposes the underlying registry, for example to apply a manifest.
func (a *App) Registry() *command.Registry {
	return a.registry
}

// Printer returns the [Printer] shared by all commands.
func (a *App) Printer() *Printer {
	return a.printer
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Usage sets text printed between the App name and the command list in top level usage.
func (a *App) Usage(format string, args ...any) *App {
	a.usage = fmt.Sprintf(format, args...)
	return a
}

func (a *App) addErr(err error) {
	a.errMux.Lock()
	defer a.errMux.Unlock()
	a.errs = append(a.errs, err)
}

// Err returns every error collected while building commands, joined with [errors.Join].
func (a *App) Err() error {
	a.errMux.Lock()
	defer a.errMux.Unlock()
	return errors.Join(a.errs...)
}

// Handle binds fn to the node identified by its delimited canonical ID, e.g. "home:index".
func (a *App) Handle(id string, fn HandlerFunc) error {
	if fn == nil {
		panic("nil handler")
	}
	node, ok := a.registry.FindID(id)
	if !ok {
		return &command.UnknownCommandError{Name: id}
	}
	node.SetHandler(fn)
	return nil
}

// MustHandle works like [App.Handle], but panics if id isn't registered.
func (a *App) MustHandle(id string, fn HandlerFunc) *App {
	if err := a.Handle(id, fn); err != nil {
		panic(err)
	}
	return a
}

// seal adds the help switch to every node, and seals the registry for dispatch.
func (a *App) seal() *command.Dispatcher {
	a.sealOnce.Do(func() {
		a.registry.Walk(func(node *command.Node) bool {
			if _, ok := node.Schema().Option("help"); ok {
				return true
			}
			if err := node.Schema().AddOption(helpSwitch().WithShortcuts("h")); err != nil {
				// The shortcut is taken by a declared option.
				if err := node.Schema().AddOption(helpSwitch()); err != nil {
					a.addErr(fmt.Errorf("adding help to %s: %w", node, err))
				}
			}
			return true
		})
		a.dispatcher = command.NewDispatcher(a.registry, a.parseOpts...)
	})
	return a.dispatcher
}

func helpSwitch() *flags.Spec {
	return flags.Switch("help", "Prints this usage information")
}

// Run executes the command given in argv, where argv[0] is the script name.
func (a *App) Run(ctx context.Context, argv []string) error {
	if len(argv) > 0 {
		argv = argv[1:]
	}
	return a.Exec(ctx, argv)
}

// ExecLine splits line with shell quoting rules, and executes it with [App.Exec].
func (a *App) ExecLine(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return NewUsageError("%w", err)
	}
	return a.Exec(ctx, args)
}

// Exec executes the command given in args, which must not include the script name.
//
// Calling with no arguments, or with one of [HelpPatterns], prints top level usage.
// Parse and dispatch errors are returned as a [UsageError] after usage for the nearest command is printed.
// Errors from handlers are returned as-is, unless they're a [UsageError].
func (a *App) Exec(ctx context.Context, args []string) error {
	d := a.seal()
	if err := a.Err(); err != nil {
		return err
	}
	if len(args) == 0 || slices.Contains(HelpPatterns, args[0]) {
		a.printer.Print(a.appUsage())
		return nil
	}
	switch args[0] {
	case HelpCommand:
		return a.help(args[1:])
	case VersionCommand:
		a.printer.Printf("%s %s\n", a.name, a.Version())
		return nil
	}

	id := uuid.NewString()
	route, result, err := d.DispatchArgs(args)
	if err != nil {
		if route != nil && wantsHelp(route.Node, route.Residual) {
			a.printer.Print(a.nodeUsage(route.Node))
			return nil
		}
		a.logger.Warn("Failed to dispatch command", "invocation", id, "args", strings.Join(args, " "), "error", err)
		return a.usageError(route, WrapUsage(err))
	}
	if help, err := result.GetBool("help"); err == nil && help {
		a.printer.Print(a.nodeUsage(route.Node))
		return nil
	}
	fn, ok := route.Node.Handler().(HandlerFunc)
	if !ok || fn == nil {
		a.printer.Print(a.nodeUsage(route.Node))
		return nil
	}

	inv := &Invocation{
		ID:      id,
		Route:   route,
		Flags:   result,
		Printer: a.printer,
		Logger:  a.logger.With("invocation", id, "command", route.ID),
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.runPreExec(ctx, inv); err != nil {
		inv.Logger.Warn("Pre-exec hook failed", "error", err)
		return err
	}
	inv.Logger.Debug("Executing command")
	if err := fn(ctx, inv); err != nil {
		inv.Logger.Warn("Command failed", "error", err)
		if errors.Is(err, &UsageError{}) {
			return a.usageError(route, err)
		}
		return err
	}
	return nil
}

func (a *App) usageError(route *command.Route, err error) error {
	a.printer.Printf("%s\n\n", err)
	if route != nil {
		a.printer.Print(a.nodeUsage(route.Node))
	} else {
		a.printer.Print(a.appUsage())
	}
	return err
}

func (a *App) help(args []string) error {
	if len(args) == 0 {
		a.printer.Print(a.appUsage())
		return nil
	}
	route, err := a.seal().Resolve(args)
	if err != nil {
		return a.usageError(route, WrapUsage(err))
	}
	a.printer.Print(a.nodeUsage(route.Node))
	return nil
}

// wantsHelp reports whether a token before any "--" terminator resolves to the help option of node.
// A "-h" that is the shortcut of another option is not a request for help.
func wantsHelp(node *command.Node, tokens []string) bool {
	schema := node.EffectiveSchema()
	for _, tok := range tokens {
		if tok == "--" {
			return false
		}
		if !slices.Contains(HelpPatterns, tok) {
			continue
		}
		if spec, ok := schema.Option(strings.TrimLeft(tok, "-")); ok && spec.Name() == "help" {
			return true
		}
	}
	return false
}
