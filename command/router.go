package command

import (
	"strings"
)

// Resolver matches a single command name to a [Route].
type Resolver interface {
	Match(input string) (*Route, bool)
}

// Route describes how an input name resolved.
// A Route is created for each match and never shared.
type Route struct {
	Input     string   // Input is the text that was matched, e.g. "h:index" or "home index".
	ID        string   // ID is the canonical, delimited identifier, e.g. "home:index".
	Node      *Node    // Node is the matched leaf or group.
	Group     string   // Group is the canonical ID of the enclosing group, if any.
	SubAction string   // SubAction is the remaining name within Group.
	Residual  []string // Residual holds the tokens left for the flag parser.
	Path      []*Node  // Path holds every node matched from the top level down, populated by a [Dispatcher].
}

// IsGroup reports whether the route ends at a group rather than a leaf.
func (r *Route) IsGroup() bool {
	return r != nil && r.Node != nil && r.Node.IsGroup()
}

var _ Resolver = (*Router)(nil)

// Router resolves names within one [Registry] scope.
type Router struct {
	registry *Registry
}

// NewRouter creates a [Router] for the given scope.
func NewRouter(registry *Registry) *Router {
	if registry == nil {
		panic("nil registry")
	}
	return &Router{registry: registry}
}

// Match resolves input to a leaf or group in this scope.
//
// The delimiter is trimmed from both ends, and aliases are resolved.
// An exact leaf match is preferred, otherwise input is split on the first delimiter into a group name and a sub-action.
// A false return indicates that nothing matched, which is not an error at this level.
func (r *Router) Match(input string) (*Route, bool) {
	reg := r.registry
	delim := reg.delimiter
	name := trimDelimiter(input, delim, "")
	canonical := reg.aliases.Resolve(name)

	if leaf, ok := reg.leaves[canonical]; ok {
		return &Route{Input: input, ID: leaf.ID(), Node: leaf}, true
	}

	groupPart, actionPart, _ := strings.Cut(canonical, delim)
	if group, ok := reg.groups[reg.aliases.Resolve(groupPart)]; ok {
		route := &Route{
			Input:     input,
			ID:        group.ID(),
			Node:      group,
			Group:     group.ID(),
			SubAction: trimDelimiter(actionPart, delim, " "),
		}
		if len(route.SubAction) > 0 {
			route.ID += delim + route.SubAction
		}
		return route, true
	}
	return nil, false
}

// trimDelimiter removes whole occurrences of delim, and any characters in cutset, from both ends of s.
func trimDelimiter(s, delim, cutset string) string {
	for {
		trimmed := strings.Trim(s, cutset)
		for len(delim) > 0 && strings.HasPrefix(trimmed, delim) {
			trimmed = trimmed[len(delim):]
		}
		for len(delim) > 0 && strings.HasSuffix(trimmed, delim) {
			trimmed = trimmed[:len(trimmed)-len(delim)]
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
