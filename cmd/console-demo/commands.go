package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/saylorsolutions/console/cli"
	"github.com/saylorsolutions/console/flags"
)

var pages = []struct {
	name string
	tags []string
}{
	{name: "about", tags: []string{"info"}},
	{name: "blog", tags: []string{"news", "posts"}},
	{name: "contact", tags: []string{"info"}},
	{name: "releases", tags: []string{"news"}},
}

var users = []string{"alice", "bob", "carol"}

func greet(_ context.Context, inv *cli.Invocation) error {
	var (
		name  = cli.MustGet(inv.Flags.GetString("name"))
		times = cli.MustGet(inv.Flags.GetInt("times"))
		loud  = cli.MustGet(inv.Flags.GetBool("loud"))
	)
	if times < 1 {
		return cli.NewUsageError("times must be at least 1, got %d", times)
	}
	msg := fmt.Sprintf("Hello, %s!", name)
	if loud {
		msg = strings.ToUpper(msg)
	}
	for range times {
		inv.Printer.Println(msg)
	}
	return nil
}

func listPages(_ context.Context, inv *cli.Invocation) error {
	var (
		limit   = cli.MustGet(inv.Flags.GetInt("limit"))
		tags    = cli.MustGet(inv.Flags.GetStrings("tag"))
		verbose = cli.MustGet(inv.Flags.GetBool("verbose"))
		listed  int
	)
	for _, page := range pages {
		if listed >= limit {
			break
		}
		if len(tags) > 0 && !slices.ContainsFunc(page.tags, func(tag string) bool { return slices.Contains(tags, tag) }) {
			continue
		}
		listed++
		if verbose {
			inv.Printer.Printf("%s\t[%s]\n", page.name, strings.Join(page.tags, ", "))
			continue
		}
		inv.Printer.Println(page.name)
	}
	inv.Logger.Debug("Listed pages", "count", listed)
	return nil
}

func listUsers(_ context.Context, inv *cli.Invocation) error {
	names := cli.MustGet(inv.Flags.GetStrings("names"))
	if len(names) == 0 {
		names = users
	}
	for _, name := range names {
		if !slices.Contains(users, name) {
			return fmt.Errorf("no such user: '%s'", name)
		}
		inv.Printer.Println(name)
	}
	return nil
}

// registerBuiltins adds commands declared in code alongside the manifest.
func registerBuiltins(app *cli.App) {
	app.Command("sum", "Adds numbers together", "add").
		Argument(flags.NewArgument("numbers", flags.Float, flags.Required|flags.Array, "Numbers to add")).
		Option(flags.NewOption("precision", flags.Int, flags.Optional, "Decimal places to print").
			WithShortcuts("p").
			WithDefault(2).
			WithValidator(func(v any) (any, error) {
				if p := v.(int); p < 0 || p > 10 {
					return nil, fmt.Errorf("precision must be between 0 and 10")
				}
				return v, nil
			})).
		Does(func(_ context.Context, inv *cli.Invocation) error {
			var total float64
			for _, n := range cli.MustGet(inv.Flags.GetFloats("numbers")) {
				total += n
			}
			inv.Printer.Printf("%.*f\n", cli.MustGet(inv.Flags.GetInt("precision")), total)
			return nil
		})

	app.Command("echo", "Prints the canonical form of the given flags").
		Option(flags.NewOption("label", flags.String, flags.Optional|flags.Array, "Labels to echo").WithShortcuts("L")).
		Argument(flags.NewArgument("words", flags.String, flags.Array, "Words to echo")).
		Does(func(_ context.Context, inv *cli.Invocation) error {
			inv.Printer.Println(strings.Join(inv.Flags.Tokens(), " "))
			return nil
		})
}
