/*
Package console is a toolkit for console applications that turns a raw argument vector into a resolved command and a validated, typed set of option and argument values.

The module is split into small packages that build on each other:

  - [github.com/saylorsolutions/console/alias] maps aliases to canonical names, for commands and option shortcuts alike.
  - [github.com/saylorsolutions/console/flags] declares options and positional arguments, and parses tokens against them.
  - [github.com/saylorsolutions/console/command] registers commands and groups, routes names like "group:action", and dispatches argv.
  - [github.com/saylorsolutions/console/cli] executes handlers for dispatched commands, with usage output and an interactive mode.
  - [github.com/saylorsolutions/console/manifest] loads command trees declared in HCL files.

Parsing never performs output, and a registry never changes once dispatch begins.
*/
package console
