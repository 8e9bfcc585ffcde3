/*
Package cli provides an opinionated executor for a CLI with nested sub-commands, built on the [command] and [flags] packages.

There are a few reasonable (IMHO) policies for how this operates.

  - User-visible output should go to STDERR by default. This is supported with a configurable [Printer].
  - Flags should NOT be interspersed by default. This makes flag and argument parsing much more consistent and predictable, but can be overridden with [WithParseOptions].
  - Global flags are often confusing. Options declared on a group apply to that group's sub-commands, and nothing else.
  - Sub-command aliases are often very convenient, so they're supported as additional, optional parameters to [App.Command] and [App.Group].

# Invocation

Invoking a CLI with sub-commands can always follow this form:

	CLI_NAME [GROUP[:SUB-COMMAND]...] [FLAGS...] [ARGS...]

This consistency helps to build muscle memory for frequent CLI use, and a predictable user experience.
Just calling CLI_NAME will print usage information for the tool.

Each invocation is assigned a unique ID, which is attached to the [Invocation.Logger] given to the handler.

# Usage by default

Usage information can be incredibly helpful for understanding a tool's purpose and expectations.
That's why the '-h' and '--help' flags are set up by default for every command, and the reserved 'help' and 'version' commands are handled by the [App].

Flag, argument, and sub-command usage is included in a usage template along with developer-provided usage information from [Command.Usage].
Usage is also printed with the error when parsing fails, or a handler returns a [UsageError].

# Prioritizing Dev UX

Developers want nice things too, especially with tooling they rely on.
This is the motivation for interactive mode.

If your CLI calls [App.RespondInteractive], then you're enabling the use of the [InteractiveFlag] (which can be changed) to enter this mode.
Lines are split with shell quoting rules, and executed in the same process.

If you want to work with a nested sub-command the [UseCommand] can be used to push that string of sub-commands to an invocation stack.
Use the [BackCommand] to pop the invocation stack and go back to where you were.

To exit interactive mode, use one of the [InteractiveQuitCommands] at the prompt.
*/
package cli
