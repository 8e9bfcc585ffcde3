package flags

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// usageValue describes a [Spec] to pflag for usage output.
// Values are never set through it.
type usageValue struct {
	spec *Spec
}

var _ flag.Value = (*usageValue)(nil)

func (v *usageValue) String() string {
	def := v.spec.Default()
	if def == nil {
		return ""
	}
	if v.spec.IsArray() {
		elems := elements(def)
		if len(elems) == 0 {
			return ""
		}
		parts := make([]string, len(elems))
		for i, elem := range elems {
			parts[i] = formatValue(elem)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return formatValue(def)
}

func (v *usageValue) Set(string) error {
	return fmt.Errorf("%s is read-only", v.spec)
}

func (v *usageValue) Type() string {
	typ := v.spec.typ.String()
	if v.spec.typ == Bool && !v.spec.IsBoolean() {
		// pflag drops the placeholder for "bool"
		typ = "boolean"
	}
	if v.spec.IsArray() {
		typ += "s"
	}
	return typ
}

// IsBoolFlag lets pflag omit the value placeholder for switches.
func (v *usageValue) IsBoolFlag() bool {
	return v.spec.IsBoolean()
}

// FlagSet describes the declared options as a [flag.FlagSet], which can render usage text with [flag.FlagSet.FlagUsages].
// Only the first shortcut of each option is shown, since pflag supports one shorthand per flag.
func (s *Schema) FlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = true
	for _, spec := range s.Options() {
		var shorthand string
		if shorts := s.Shortcuts(spec.name); len(shorts) > 0 {
			shorthand = shorts[0]
		}
		usage := spec.description
		if spec.IsRequired() {
			usage += " (required)"
		}
		if len(spec.envKey) > 0 {
			usage += fmt.Sprintf(" [$%s]", spec.envKey)
		}
		f := fs.VarPF(&usageValue{spec: spec}, spec.name, shorthand, usage)
		if spec.IsBoolean() {
			f.NoOptDefVal = "true"
		}
	}
	return fs
}

// ArgumentUsages renders declared arguments as aligned lines, in position order.
func (s *Schema) ArgumentUsages() string {
	args := s.Arguments()
	if len(args) == 0 {
		return ""
	}
	var (
		buf    strings.Builder
		names  = make([]string, len(args))
		maxLen int
	)
	for i, arg := range args {
		names[i] = ArgumentPlaceholder(arg)
		if l := len(names[i]); l > maxLen {
			maxLen = l
		}
	}
	fmtStr := fmt.Sprintf("  %%-%ds   %%s\n", maxLen)
	for i, arg := range args {
		desc := arg.description
		if def := arg.Default(); def != nil && arg.hasDefault {
			desc += fmt.Sprintf(" (default %s)", (&usageValue{spec: arg}).String())
		}
		buf.WriteString(fmt.Sprintf(fmtStr, names[i], desc))
	}
	return buf.String()
}

// ArgumentPlaceholder renders an argument for a usage line, e.g. "<name>", "[name]", or "[name...]".
func ArgumentPlaceholder(arg *Spec) string {
	name := arg.name
	if arg.IsArray() {
		name += "..."
	}
	if arg.IsRequired() {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
