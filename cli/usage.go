package cli

import (
	"fmt"
	"strings"

	"github.com/saylorsolutions/console/command"
	"github.com/saylorsolutions/console/flags"
)

type usageEntry struct {
	names       string
	description string
}

func (a *App) setUsage(node *command.Node, text string) {
	a.usages[node] = text
}

// appUsage renders top level usage, listing every top level command.
func (a *App) appUsage() string {
	var buf strings.Builder
	buf.WriteString(a.name)
	if len(a.usage) > 0 {
		buf.WriteString("\n\n" + strings.TrimSuffix(a.usage, "\n"))
	}
	buf.WriteString(fmt.Sprintf("\n\nUSAGE:\n%s COMMAND [FLAGS...] [ARGS...]\n", a.name))
	entries := commandEntries(a.registry)
	entries = append(entries,
		usageEntry{names: HelpCommand, description: "Prints usage information for a command"},
		usageEntry{names: VersionCommand, description: "Prints the version of " + a.name},
	)
	buf.WriteString("\nCOMMANDS\n")
	buf.WriteString(formatEntries(entries))
	return buf.String()
}

// nodeUsage renders usage for a single command, including its flags, arguments, and sub-commands.
func (a *App) nodeUsage(node *command.Node) string {
	var (
		buf    strings.Builder
		path   = node.Path()
		schema = node.EffectiveSchema()
	)
	if desc := node.Description(); len(desc) > 0 {
		buf.WriteString(desc + "\n\n")
	}

	line, ok := a.usages[node]
	if ok && len(line) > 0 {
		prefix := append([]string{a.name}, path[:len(path)-1]...)
		line = strings.Join(prefix, " ") + " " + line
	} else {
		line = a.name + " " + strings.Join(path, " ")
		if node.IsGroup() && node.Children().Len() > 0 {
			line += " [COMMAND]"
		}
		line += " [FLAGS]"
		for _, arg := range schema.Arguments() {
			line += " " + flags.ArgumentPlaceholder(arg)
		}
	}
	buf.WriteString("USAGE:\n" + strings.TrimSuffix(line, "\n") + "\n")

	buf.WriteString("\nFLAGS\n")
	buf.WriteString(schema.FlagSet(node.ID()).FlagUsages())
	if args := schema.ArgumentUsages(); len(args) > 0 {
		buf.WriteString("\nARGUMENTS\n")
		buf.WriteString(args)
	}
	if node.IsGroup() && node.Children().Len() > 0 {
		buf.WriteString("\nCOMMANDS\n")
		buf.WriteString(formatEntries(commandEntries(node.Children())))
	}
	return buf.String()
}

// commandEntries lists the commands in a scope, sorted alphabetically, with their aliases.
func commandEntries(reg *command.Registry) []usageEntry {
	nodes := reg.Nodes()
	entries := make([]usageEntry, len(nodes))
	for i, node := range nodes {
		entries[i] = usageEntry{
			names:       strings.Join(append([]string{node.Name()}, node.Aliases()...), ", "),
			description: node.Description(),
		}
	}
	return entries
}

func formatEntries(entries []usageEntry) string {
	var (
		buf    strings.Builder
		maxLen int
	)
	for _, e := range entries {
		if l := len(e.names); l > maxLen {
			maxLen = l
		}
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, e := range entries {
		buf.WriteString(fmt.Sprintf(fmtStr, e.names, e.description))
	}
	return buf.String()
}
