package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/saylorsolutions/console/flags"
)

// Kind distinguishes directly runnable commands from groups of sub-commands.
type Kind int

const (
	Leaf Kind = iota
	Group
)

func (k Kind) String() string {
	if k == Group {
		return "group"
	}
	return "command"
}

// Node is a registered leaf command or group.
// A Node can only be registered once, and a group can't be registered beneath itself.
type Node struct {
	name        string
	kind        Kind
	description string
	schema      *flags.Schema
	effective   *flags.Schema
	children    *Registry
	scope       *Registry
	aliases     []string
	handler     any
}

// NewLeaf creates an unregistered leaf command.
// A nil schema accepts no options or arguments.
func NewLeaf(name string, schema *flags.Schema) *Node {
	if schema == nil {
		schema = flags.NewSchema()
	}
	return &Node{name: name, kind: Leaf, schema: schema}
}

// NewGroup creates an unregistered group.
// The group's schema declares options shared with all of its sub-commands, and may be nil.
func NewGroup(name string, schema *flags.Schema) *Node {
	n := NewLeaf(name, schema)
	n.kind = Group
	n.children = NewRegistry()
	n.children.owner = n
	return n
}

func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind { return n.kind }
func (n *Node) IsGroup() bool { return n.kind == Group }
func (n *Node) Description() string { return n.description }
func (n *Node) Aliases() []string { return slices.Clone(n.aliases) }
func (n *Node) Handler() any { return n.handler }
func (n *Node) Registered() bool { return n.scope != nil }
func (n *Node) Schema() *flags.Schema { return n.schema }

// Describe sets a short description of the node, used in usage output.
func (n *Node) Describe(description string) *Node {
	n.description = description
	return n
}

// SetHandler attaches an opaque handler reference that executors can retrieve after dispatch.
func (n *Node) SetHandler(handler any) *Node {
	n.handler = handler
	return n
}

// Children returns the scope of sub-commands for a group, or nil for a leaf.
func (n *Node) Children() *Registry {
	return n.children
}

// Parent returns the group this node is registered under, or nil at the top level.
func (n *Node) Parent() *Node {
	if n.scope == nil {
		return nil
	}
	return n.scope.owner
}

// Path returns the canonical names from the top level down to this node.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent() {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// ID returns the canonical path joined by the registry delimiter, e.g. "home:index".
func (n *Node) ID() string {
	delim := DefaultDelimiter
	if n.scope != nil {
		delim = n.scope.delimiter
	}
	return strings.Join(n.Path(), delim)
}

// EffectiveSchema returns the node's schema merged with the options of every enclosing group.
// Options declared closer to the node take precedence.
func (n *Node) EffectiveSchema() *flags.Schema {
	if n.effective != nil {
		return n.effective
	}
	return n.inherit()
}

func (n *Node) inherit() *flags.Schema {
	var parents []*flags.Schema
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		parents = append(parents, cur.schema)
	}
	return n.schema.Inherit(parents...)
}

// AddChild registers child in this group's scope.
func (n *Node) AddChild(child *Node, aliases ...string) error {
	if n.kind != Group {
		return fmt.Errorf("%w: '%s' is not a group", ErrInvalidName, n.name)
	}
	return n.children.Register(child, aliases...)
}

// Command creates and registers a leaf command in this group.
func (n *Node) Command(name string, schema *flags.Schema, aliases ...string) (*Node, error) {
	child := NewLeaf(name, schema)
	if err := n.AddChild(child, aliases...); err != nil {
		return nil, err
	}
	return child, nil
}

// Group creates and registers a nested group in this group.
func (n *Node) Group(name string, schema *flags.Schema, aliases ...string) (*Node, error) {
	child := NewGroup(name, schema)
	if err := n.AddChild(child, aliases...); err != nil {
		return nil, err
	}
	return child, nil
}

func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	return fmt.Sprintf("%s '%s'", n.kind, n.ID())
}
