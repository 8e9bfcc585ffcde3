package command

import (
	"strings"

	"github.com/saylorsolutions/console/flags"
)

// Dispatchable turns argv into a terminal [Route] and bound flag values.
type Dispatchable interface {
	Dispatch(argv []string) (*Route, *flags.Result, error)
}

var _ Dispatchable = (*Dispatcher)(nil)

// Dispatcher resolves argv through nested groups, and parses the residual tokens of the terminal node.
type Dispatcher struct {
	registry  *Registry
	parseOpts []flags.ParseOption
}

// NewDispatcher seals registry and creates a [Dispatcher] for it.
// The parse options are passed to [flags.Parse] for every dispatch.
func NewDispatcher(registry *Registry, parseOpts ...flags.ParseOption) *Dispatcher {
	if registry == nil {
		panic("nil registry")
	}
	registry.Seal()
	return &Dispatcher{registry: registry, parseOpts: parseOpts}
}

// Registry returns the sealed [Registry] used for dispatch.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch strips the script name from argv, and then works like [Dispatcher.DispatchArgs].
func (d *Dispatcher) Dispatch(argv []string) (*Route, *flags.Result, error) {
	if len(argv) > 0 {
		argv = argv[1:]
	}
	return d.DispatchArgs(argv)
}

// DispatchArgs resolves args to a terminal node, and parses the remaining tokens against its effective schema.
// If resolution succeeds but parsing fails, then the route is still returned with the error.
func (d *Dispatcher) DispatchArgs(args []string) (*Route, *flags.Result, error) {
	route, err := d.Resolve(args)
	if err != nil {
		return route, nil, err
	}
	result, err := flags.Parse(route.Node.EffectiveSchema(), route.Residual, d.parseOpts...)
	if err != nil {
		return route, nil, err
	}
	return route, result, nil
}

// Resolve finds the terminal node for args without parsing flags.
//
// Groups are descended through either a delimited sub-action ("group:action") or the following token ("group action").
// A group is the terminal node when there's no further token, or the next token looks like a flag.
// When a name can't be resolved, the deepest route matched so far is returned with an [UnknownCommandError].
func (d *Dispatcher) Resolve(args []string) (*Route, error) {
	if len(args) == 0 || len(strings.TrimSpace(args[0])) == 0 {
		return nil, ErrNoCommand
	}
	return d.resolve(d.registry, args[0], args[1:], nil, []string{args[0]})
}

func (d *Dispatcher) resolve(reg *Registry, name string, rest []string, path []*Node, consumed []string) (*Route, error) {
	route, ok := NewRouter(reg).Match(name)
	if !ok {
		return parentRoute(path, rest, consumed), &UnknownCommandError{Name: qualify(reg, name)}
	}
	path = append(path, route.Node)

	if route.IsGroup() {
		group := route.Node
		if len(route.SubAction) > 0 {
			return d.resolve(group.children, route.SubAction, rest, path, consumed)
		}
		if len(rest) > 0 && len(rest[0]) > 0 && !strings.HasPrefix(rest[0], "-") {
			return d.resolve(group.children, rest[0], rest[1:], path, append(consumed, rest[0]))
		}
	}

	route.Input = strings.Join(consumed, " ")
	route.ID = route.Node.ID()
	route.Group, route.SubAction = "", ""
	if parent := route.Node.Parent(); parent != nil {
		route.Group = parent.ID()
		route.SubAction = route.Node.name
	}
	route.Residual = rest
	route.Path = path
	return route, nil
}

// parentRoute describes the group reached before a failed match, so that callers can show its usage.
func parentRoute(path []*Node, rest []string, consumed []string) *Route {
	if len(path) == 0 {
		return nil
	}
	group := path[len(path)-1]
	route := &Route{
		Input:    strings.Join(consumed, " "),
		ID:       group.ID(),
		Node:     group,
		Residual: rest,
		Path:     path,
	}
	if parent := group.Parent(); parent != nil {
		route.Group = parent.ID()
		route.SubAction = group.name
	}
	return route
}

func qualify(reg *Registry, name string) string {
	if reg.owner == nil {
		return name
	}
	return reg.owner.ID() + reg.delimiter + strings.Trim(name, reg.delimiter)
}
