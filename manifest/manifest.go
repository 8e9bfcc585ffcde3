package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/saylorsolutions/console/command"
	"github.com/saylorsolutions/console/flags"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	ErrDecode  = errors.New("failed to decode manifest")
	ErrInvalid = errors.New("invalid manifest")
)

// File is the top level of a manifest.
type File struct {
	Commands []*Command `hcl:"command,block"`
	Groups   []*Group   `hcl:"group,block"`
}

// Command declares a leaf command.
type Command struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Aliases     []string `hcl:"aliases,optional"`
	Options     []*Flag  `hcl:"option,block"`
	Arguments   []*Flag  `hcl:"argument,block"`
}

// Group declares a group, with options shared by everything nested in it.
type Group struct {
	Name        string     `hcl:"name,label"`
	Description string     `hcl:"description,optional"`
	Aliases     []string   `hcl:"aliases,optional"`
	Options     []*Flag    `hcl:"option,block"`
	Commands    []*Command `hcl:"command,block"`
	Groups      []*Group   `hcl:"group,block"`
}

// Flag declares an option or an argument.
// Type is one of "string" (the default), "int", "float", or "bool".
type Flag struct {
	Name        string         `hcl:"name,label"`
	Type        string         `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
	Required    bool           `hcl:"required,optional"`
	Switch      bool           `hcl:"switch,optional"`
	Array       bool           `hcl:"array,optional"`
	Shortcuts   []string       `hcl:"shortcuts,optional"`
	Env         string         `hcl:"env,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return Decode(path, src)
}

// Decode parses src as a manifest.
// The filename is used in diagnostics, and its extension selects native HCL or JSON syntax.
func Decode(filename string, src []byte) (*File, error) {
	var file File
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &file, nil
}

// Apply registers every declared command and group in reg.
// Registration continues past failures, and every problem found is returned together.
func (f *File) Apply(reg *command.Registry) error {
	errs := new(collector)
	for _, group := range f.Groups {
		node, err := group.build()
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(wrapNode(node, reg.Register(node, group.Aliases...)))
		errs.Add(group.applyChildren(node))
	}
	for _, cmd := range f.Commands {
		node, err := cmd.build()
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(wrapNode(node, reg.Register(node, cmd.Aliases...)))
	}
	return errs.Result()
}

func (g *Group) applyChildren(node *command.Node) error {
	errs := new(collector)
	for _, child := range g.Groups {
		childNode, err := child.build()
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(wrapNode(childNode, node.AddChild(childNode, child.Aliases...)))
		errs.Add(child.applyChildren(childNode))
	}
	for _, cmd := range g.Commands {
		childNode, err := cmd.build()
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(wrapNode(childNode, node.AddChild(childNode, cmd.Aliases...)))
	}
	return errs.Result()
}

func wrapNode(node *command.Node, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s '%s': %w", node.Kind(), node.Name(), err)
}

func (g *Group) build() (*command.Node, error) {
	schema := flags.NewSchema()
	if err := addOptions(schema, g.Options); err != nil {
		return nil, fmt.Errorf("group '%s': %w", g.Name, err)
	}
	return command.NewGroup(g.Name, schema).Describe(g.Description), nil
}

func (c *Command) build() (*command.Node, error) {
	schema := flags.NewSchema()
	errs := new(collector)
	errs.Add(addOptions(schema, c.Options))
	for _, arg := range c.Arguments {
		spec, err := arg.spec(flags.KindArgument)
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(schema.AddArgument(spec))
	}
	if err := errs.Result(); err != nil {
		return nil, fmt.Errorf("command '%s': %w", c.Name, err)
	}
	return command.NewLeaf(c.Name, schema).Describe(c.Description), nil
}

func addOptions(schema *flags.Schema, options []*Flag) error {
	errs := new(collector)
	for _, opt := range options {
		spec, err := opt.spec(flags.KindOption)
		if err != nil {
			errs.Add(err)
			continue
		}
		errs.Add(schema.AddOption(spec))
	}
	return errs.Result()
}

// spec converts the declaration to a [flags.Spec], evaluating its default.
func (f *Flag) spec(kind flags.Kind) (*flags.Spec, error) {
	typ, err := ParseType(f.Type)
	if err != nil {
		return nil, fmt.Errorf("%s '%s': %w", kind, f.Name, err)
	}
	mode := flags.Optional
	if f.Required {
		mode = flags.Required
	}
	if f.Switch {
		if len(f.Type) > 0 && typ != flags.Bool {
			return nil, fmt.Errorf("%w: %s '%s' is a switch of type %s", ErrInvalid, kind, f.Name, typ)
		}
		typ = flags.Bool
		mode |= flags.Boolean
	}
	if f.Array {
		mode |= flags.Array
	}

	var spec *flags.Spec
	if kind == flags.KindArgument {
		spec = flags.NewArgument(f.Name, typ, mode, f.Description)
	} else {
		spec = flags.NewOption(f.Name, typ, mode, f.Description)
	}
	if len(f.Shortcuts) > 0 {
		spec.WithShortcuts(f.Shortcuts...)
	}
	if len(f.Env) > 0 {
		spec.WithEnv(f.Env)
	}
	def, ok, err := f.defaultValue(typ)
	if err != nil {
		return nil, fmt.Errorf("%s '%s': %w", kind, f.Name, err)
	}
	if ok {
		spec.WithDefault(def)
	}
	return spec, nil
}

func (f *Flag) defaultValue(typ flags.ValueType) (any, bool, error) {
	if f.Default == nil {
		return nil, false, nil
	}
	val, diags := f.Default.Value(nil)
	if diags.HasErrors() {
		return nil, false, fmt.Errorf("%w: invalid default: %w", ErrInvalid, diags)
	}
	if val.IsNull() {
		return nil, false, nil
	}
	return FromCty(val, typ, f.Array)
}

// FromCty converts an HCL value to the Go type used by [flags] for typ.
// Lists and tuples are converted element-wise when array is true.
func FromCty(val cty.Value, typ flags.ValueType, array bool) (any, bool, error) {
	var ty cty.Type
	switch typ {
	case flags.String:
		ty = cty.String
	case flags.Int, flags.Float:
		ty = cty.Number
	case flags.Bool:
		ty = cty.Bool
	default:
		return nil, false, fmt.Errorf("%w: unknown type %s", ErrInvalid, typ)
	}
	if array {
		ty = cty.List(ty)
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return nil, false, fmt.Errorf("%w: cannot convert %s to %s: %w", ErrInvalid, val.Type().FriendlyName(), ty.FriendlyName(), err)
	}

	var target any
	switch {
	case typ == flags.String && !array:
		target = new(string)
	case typ == flags.Int && !array:
		target = new(int)
	case typ == flags.Float && !array:
		target = new(float64)
	case typ == flags.Bool && !array:
		target = new(bool)
	case typ == flags.String:
		target = new([]string)
	case typ == flags.Int:
		target = new([]int)
	case typ == flags.Float:
		target = new([]float64)
	default:
		target = new([]bool)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch t := target.(type) {
	case *string:
		return *t, true, nil
	case *int:
		return *t, true, nil
	case *float64:
		return *t, true, nil
	case *bool:
		return *t, true, nil
	case *[]string:
		return *t, true, nil
	case *[]int:
		return *t, true, nil
	case *[]float64:
		return *t, true, nil
	default:
		return *(t.(*[]bool)), true, nil
	}
}

// ParseType reads a type name, where an empty name means [flags.String].
func ParseType(name string) (flags.ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string":
		return flags.String, nil
	case "int", "integer":
		return flags.Int, nil
	case "float", "number":
		return flags.Float, nil
	case "bool", "boolean":
		return flags.Bool, nil
	default:
		return 0, fmt.Errorf("%w: unknown type '%s'", ErrInvalid, name)
	}
}
