package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/saylorsolutions/console/cli"
	"github.com/saylorsolutions/console/env"
	"github.com/saylorsolutions/console/manifest"
	flag "github.com/spf13/pflag"
)

//go:embed console.hcl
var manifestSrc []byte

var version = "dev"

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	var (
		logLevel  string
		logFormat string
		logFile   string
	)
	fs := flag.NewFlagSet(argv[0], flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.StringVar(&logLevel, "log-level", env.Val(env.OS(), "CONSOLE_LOG_LEVEL", "warn"), "Log level: debug, info, warn, or error")
	fs.StringVar(&logFormat, "log-format", "auto", "Log format: text, json, or auto")
	fs.StringVar(&logFile, "log-file", "", "Also write logs to this file, rotating it as it grows")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "%s [ROOT FLAGS] COMMAND [FLAGS] [ARGS]\n\nROOT FLAGS\n%s", argv[0], fs.FlagUsages())
	}
	if err := fs.Parse(argv[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	printer := cli.NewPrinter()
	logger, closer := newLogger(logLevel, logFormat, logFile, printer.IsTerminal())
	if closer != nil {
		defer func() {
			_ = closer.Close()
		}()
	}

	app, err := newApp(printer, cli.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to set up commands", "error", err)
		return 1
	}

	ctx, stop := signalContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := append([]string{argv[0]}, fs.Args()...)
	if app.RespondInteractive(ctx, args, os.Stdin) {
		return 0
	}
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, &cli.UsageError{}) {
			return 2
		}
		printer.Println("Error:", err)
		return 1
	}
	return 0
}

// newApp builds the demo command tree from the embedded manifest, plus commands declared in code.
func newApp(printer *cli.Printer, opts ...cli.Option) (*cli.App, error) {
	opts = append([]cli.Option{
		cli.WithVersion(version),
		cli.WithPrinter(printer),
		cli.WithEnv(env.OS()),
	}, opts...)
	app := cli.New("console-demo", opts...)
	app.Usage("Demonstrates nested commands, aliases, and flag parsing.\nRun with %s for interactive mode.", cli.InteractiveFlag)

	file, err := manifest.Decode("console.hcl", manifestSrc)
	if err != nil {
		return nil, err
	}
	if err := file.Apply(app.Registry()); err != nil {
		return nil, err
	}
	for id, fn := range map[string]cli.HandlerFunc{
		"greet":            greet,
		"home:index":       listPages,
		"home:admin:users": listUsers,
	} {
		if err := app.Handle(id, fn); err != nil {
			return nil, err
		}
	}
	registerBuiltins(app)
	return app, app.Err()
}
