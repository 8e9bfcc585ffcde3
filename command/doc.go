/*
Package command registers leaf commands and command groups, and resolves argv to one of them.

A [Registry] is a scope of commands and groups, each group owning a nested [Registry] for its children.
Names and aliases are resolved per scope, so "h" may alias one group at the top level, and a different command within that group.

A [Router] maps one input name to a [Route], and supports delimited names like "group:action".
Leaf commands are matched before groups, so a leaf registered as "db:migrate" wins over the "migrate" command in the "db" group.

A [Dispatcher] seals the registry, then walks argv through nested groups until it reaches a terminal node, and parses the remaining tokens with that node's [flags.Schema].
Registration is not concurrency safe, but once sealed a registry is read-only, and any number of goroutines may dispatch with it.
*/
package command
