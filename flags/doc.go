/*
Package flags declares options and positional arguments for a command, and parses argv-style tokens against them.

A [Schema] is built from [Spec] values before any parsing happens:

	schema := flags.NewSchema().MustAdd(
		flags.NewArgument("name", flags.String, flags.Required, "Who to greet"),
		flags.Switch("yes", "Skip confirmation").WithShortcuts("y"),
		flags.NewOption("limit", flags.Int, flags.Optional, "Max results").WithDefault(3),
	)

[Parse] is a single left to right pass over the tokens, and a pure function of the schema and tokens.
Options come first, and the first positional token (or an explicit "--") switches to argument parsing.
That means options are not interspersed with arguments unless [Interspersed] is passed.

Supported option forms are "--name value", "--name=value", "-n value", "-n=value", and a bare "--name" or "-n" for [Boolean] options.
A value-bearing option given more than once keeps the last value, unless it's in [Array] mode, in which case values accumulate.
*/
package flags
