package command

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/saylorsolutions/console/alias"
	"github.com/saylorsolutions/console/flags"
)

const DefaultDelimiter = ":"

var (
	ReservedNames = []string{"help", "version"} // ReservedNames can't be registered as a command, group, or alias.

	namePattern  = regexp.MustCompile(`^[a-z][\w:-]+$`)
	aliasPattern = regexp.MustCompile(`^[a-z][\w:-]*$`)
)

// Registry is one scope of commands and groups.
// The top level scope is created with [NewRegistry], and each group owns a nested scope for its children.
type Registry struct {
	delimiter string
	owner     *Node
	leaves    map[string]*Node
	groups    map[string]*Node
	aliases   *alias.Table
	sealed    bool
}

// RegistryOption configures a [Registry].
type RegistryOption func(r *Registry)

// WithDelimiter sets the delimiter between group and sub-command names, which is ":" by default.
// It applies to nested scopes as well.
func WithDelimiter(delimiter string) RegistryOption {
	return func(r *Registry) {
		if len(delimiter) > 0 {
			r.delimiter = delimiter
		}
	}
}

// NewRegistry creates an empty top level [Registry].
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		delimiter: DefaultDelimiter,
		leaves:    map[string]*Node{},
		groups:    map[string]*Node{},
		aliases:   alias.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Delimiter returns the group delimiter for this scope.
func (r *Registry) Delimiter() string {
	return r.delimiter
}

// Owner returns the group that owns this scope, or nil for the top level.
func (r *Registry) Owner() *Node {
	return r.owner
}

// RegisterCommand creates and registers a leaf command.
func (r *Registry) RegisterCommand(name string, schema *flags.Schema, aliases ...string) (*Node, error) {
	node := NewLeaf(name, schema)
	if err := r.Register(node, aliases...); err != nil {
		return nil, err
	}
	return node, nil
}

// RegisterGroup creates and registers a group.
func (r *Registry) RegisterGroup(name string, schema *flags.Schema, aliases ...string) (*Node, error) {
	node := NewGroup(name, schema)
	if err := r.Register(node, aliases...); err != nil {
		return nil, err
	}
	return node, nil
}

// Register adds an existing [Node] to this scope, with optional aliases.
// Nothing is registered if an error is returned.
func (r *Registry) Register(node *Node, aliases ...string) error {
	if r.sealed {
		return ErrSealed
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidName)
	}
	if node.Registered() {
		return fmt.Errorf("%w: %s is already registered", ErrDuplicateName, node)
	}
	if node.isAncestorOf(r.owner) {
		return fmt.Errorf("%w: %s cannot be registered beneath itself", ErrInvalidName, node)
	}
	if err := validateName(namePattern, node.name); err != nil {
		return err
	}
	if r.taken(node.name) {
		return fmt.Errorf("%w: '%s' is already registered", ErrDuplicateName, node.name)
	}

	var accepted []string
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == node.name || slices.Contains(accepted, a) {
			continue
		}
		if err := validateName(aliasPattern, a); err != nil {
			return err
		}
		if _, ok := r.node(a); ok {
			return &alias.DuplicateAliasError{Alias: a, Existing: a, Canonical: node.name}
		}
		if existing := r.aliases.Resolve(a); existing != a {
			return &alias.DuplicateAliasError{Alias: a, Existing: existing, Canonical: node.name}
		}
		accepted = append(accepted, a)
	}
	for _, a := range accepted {
		if err := r.aliases.Register(node.name, a); err != nil {
			return err
		}
	}

	slices.Sort(accepted)
	node.aliases = accepted
	node.scope = r
	if node.children != nil {
		node.children.inheritDelimiter(r.delimiter)
	}
	if node.kind == Group {
		r.groups[node.name] = node
	} else {
		r.leaves[node.name] = node
	}
	return nil
}

func (r *Registry) inheritDelimiter(delimiter string) {
	r.delimiter = delimiter
	for _, group := range r.groups {
		group.children.inheritDelimiter(delimiter)
	}
}

func validateName(pattern *regexp.Regexp, name string) error {
	if !pattern.MatchString(name) {
		return fmt.Errorf("%w: '%s' must match %s", ErrInvalidName, name, pattern)
	}
	if slices.Contains(ReservedNames, name) {
		return fmt.Errorf("%w: '%s' is reserved", ErrInvalidName, name)
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.node(name); ok {
		return true
	}
	return r.aliases.Has(name)
}

func (r *Registry) node(name string) (*Node, bool) {
	if n, ok := r.leaves[name]; ok {
		return n, true
	}
	n, ok := r.groups[name]
	return n, ok
}

// Lookup finds a node in this scope by name or alias.
func (r *Registry) Lookup(nameOrAlias string) (*Node, bool) {
	return r.node(r.aliases.Resolve(nameOrAlias))
}

// Find walks nested scopes by canonical names or aliases, e.g. Find("home", "index").
func (r *Registry) Find(path ...string) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	node, ok := r.Lookup(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return node, true
	}
	if node.children == nil {
		return nil, false
	}
	return node.children.Find(path[1:]...)
}

// FindID finds a node by its delimited canonical ID, e.g. "home:index".
func (r *Registry) FindID(id string) (*Node, bool) {
	if node, ok := r.Lookup(id); ok {
		return node, true
	}
	group, rest, found := strings.Cut(id, r.delimiter)
	if !found {
		return nil, false
	}
	node, ok := r.Lookup(group)
	if !ok || node.children == nil {
		return nil, false
	}
	return node.children.FindID(rest)
}

// Nodes returns the nodes in this scope sorted by name.
func (r *Registry) Nodes() []*Node {
	nodes := make([]*Node, 0, len(r.leaves)+len(r.groups))
	for _, n := range r.leaves {
		nodes = append(nodes, n)
	}
	for _, n := range r.groups {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int {
		return strings.Compare(a.name, b.name)
	})
	return nodes
}

// Walk visits every node depth first, in name order, until fn returns false.
func (r *Registry) Walk(fn func(node *Node) bool) bool {
	for _, n := range r.Nodes() {
		if !fn(n) {
			return false
		}
		if n.children != nil && !n.children.Walk(fn) {
			return false
		}
	}
	return true
}

// Len returns the number of nodes in this scope, not including nested scopes.
func (r *Registry) Len() int {
	return len(r.leaves) + len(r.groups)
}

// Seal closes registration for this scope and every nested scope, along with each node's schema.
// Effective schemas are computed here, so dispatch never mutates the registry.
func (r *Registry) Seal() {
	if r.sealed {
		return
	}
	r.sealed = true
	r.aliases.Seal()
	for _, n := range r.Nodes() {
		n.schema.Seal()
	}
	for _, n := range r.Nodes() {
		n.effective = n.inherit()
		n.effective.Seal()
		if n.children != nil {
			n.children.Seal()
		}
	}
}

// Sealed reports whether registration is closed.
func (r *Registry) Sealed() bool {
	return r.sealed
}
