package flags

import (
	"strings"
	"unicode/utf8"

	"github.com/saylorsolutions/console/env"
)

const terminator = "--"

// ParseOption configures [Parse].
type ParseOption func(cfg *parseConfig)

type parseConfig struct {
	env          env.Source
	interspersed bool
	grouping     bool
}

// WithEnv sets the [env.Source] consulted for options declared with [Spec.WithEnv].
// Without a source, env keys are ignored.
func WithEnv(src env.Source) ParseOption {
	return func(cfg *parseConfig) {
		cfg.env = src
	}
}

// Interspersed allows options to follow positional arguments.
// An explicit "--" still ends option parsing.
func Interspersed() ParseOption {
	return func(cfg *parseConfig) {
		cfg.interspersed = true
	}
}

// ShortFlagGrouping expands "-abc" to "-a -b -c" when "abc" is not itself a declared option.
// If a grouped shortcut takes a value, then the rest of the group is its value, e.g. "-vofile" is "-v -o file".
func ShortFlagGrouping() ParseOption {
	return func(cfg *parseConfig) {
		cfg.grouping = true
	}
}

type parser struct {
	schema *Schema
	cfg    parseConfig
	result *Result
}

// Parse binds tokens to the options and arguments declared in schema.
//
// The returned error, if any, wraps one of [ErrUnknownFlag], [ErrMissingValue], [ErrInvalidValueType], [ErrValidationFailed], or [ErrRequiredMissing].
// Parsing has no side effects, so the same input always produces the same result.
func Parse(schema *Schema, tokens []string, opts ...ParseOption) (*Result, error) {
	p := &parser{schema: schema}
	for _, opt := range opts {
		if opt != nil {
			opt(&p.cfg)
		}
	}
	if p.schema == nil {
		p.schema = NewSchema()
	}
	p.result = newResult(p.schema)

	positional, err := p.scan(tokens)
	if err != nil {
		return nil, err
	}
	if err := p.bindArguments(positional); err != nil {
		return nil, err
	}
	if err := p.finalize(); err != nil {
		return nil, err
	}
	return p.result, nil
}

// scan walks tokens once, binding options and collecting positional tokens in order.
func (p *parser) scan(tokens []string) ([]string, error) {
	var (
		positional []string
		inOptions  = true
	)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !inOptions {
			positional = append(positional, token)
			continue
		}
		switch {
		case len(token) == 0:
			continue
		case token == terminator:
			inOptions = false
			continue
		case token == "-" || !strings.HasPrefix(token, "-"):
			positional = append(positional, token)
			if !p.cfg.interspersed {
				inOptions = false
			}
			continue
		}
		consumed, err := p.option(token, tokens[i+1:])
		if err != nil {
			return nil, err
		}
		i += consumed
	}
	return positional, nil
}

// option binds a single option token, returning how many of the following tokens were consumed as its value.
func (p *parser) option(token string, rest []string) (int, error) {
	name := strings.TrimLeft(token, "-")
	dashes := token[:len(token)-len(name)]
	name, inline, hasInline := strings.Cut(name, "=")
	spec, ok := p.schema.Option(name)
	if !ok {
		if p.cfg.grouping && dashes == "-" && !hasInline && utf8.RuneCountInString(name) > 1 {
			return p.group(name, rest)
		}
		return 0, &UnknownFlagError{Name: name, Token: dashes + name}
	}
	return p.bindOption(spec, name, inline, hasInline, rest)
}

func (p *parser) group(shorts string, rest []string) (int, error) {
	for i, r := range shorts {
		short := string(r)
		spec, ok := p.schema.Option(short)
		if !ok {
			return 0, &UnknownFlagError{Name: short, Token: "-" + short}
		}
		if spec.IsBoolean() {
			if err := p.setOption(spec, short, true); err != nil {
				return 0, err
			}
			continue
		}
		if next := i + len(short); next < len(shorts) {
			return p.bindOption(spec, short, shorts[next:], true, rest)
		}
		return p.bindOption(spec, short, "", false, rest)
	}
	return 0, nil
}

func (p *parser) bindOption(spec *Spec, name, inline string, hasInline bool, rest []string) (int, error) {
	if spec.IsBoolean() {
		val := true
		if hasInline {
			b, ok := ParseBool(inline)
			if !ok {
				return 0, &InvalidValueTypeError{Name: name, Value: inline, Type: Bool}
			}
			val = b
		}
		return 0, p.setOption(spec, name, val)
	}

	var (
		raw      = inline
		consumed int
	)
	if !hasInline {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return 0, &MissingValueError{Name: name}
		}
		raw = rest[0]
		consumed = 1
	}
	val, err := p.convert(spec, name, raw)
	if err != nil {
		return 0, err
	}
	return consumed, p.setOption(spec, name, val)
}

func (p *parser) convert(spec *Spec, name, raw string) (any, error) {
	val, ok := coerce(spec.typ, raw)
	if !ok {
		return nil, &InvalidValueTypeError{Name: name, Value: raw, Type: spec.typ}
	}
	return val, nil
}

func (p *parser) setOption(spec *Spec, name string, val any) error {
	val, err := spec.validate(val)
	if err != nil {
		return &ValidationFailedError{Name: name, Message: err.Error(), Err: err}
	}
	if !spec.IsArray() {
		p.result.options[spec.name] = val
		p.result.given[spec.name] = true
		return nil
	}
	var existing any
	if p.result.given[spec.name] {
		existing = p.result.options[spec.name]
	}
	list, err := appendValue(spec.typ, existing, val)
	if err != nil {
		return &ValidationFailedError{Name: name, Message: err.Error(), Err: err}
	}
	p.result.options[spec.name] = list
	p.result.given[spec.name] = true
	return nil
}

// bindArguments assigns positional tokens in declaration order.
// Tokens beyond the declared arguments are kept as leftovers.
func (p *parser) bindArguments(positional []string) error {
	next := 0
	for _, spec := range p.schema.args {
		if spec.IsArray() {
			vals := positional[next:]
			next = len(positional)
			if len(vals) == 0 {
				if spec.IsRequired() {
					return &RequiredMissingError{Name: spec.name, Kind: KindArgument}
				}
				continue
			}
			list := emptySlice(spec.typ)
			for _, raw := range vals {
				val, err := p.argumentValue(spec, raw)
				if err != nil {
					return err
				}
				if list, err = appendValue(spec.typ, list, val); err != nil {
					return &ValidationFailedError{Name: spec.name, Message: err.Error(), Err: err}
				}
			}
			p.result.bindArg(spec, list)
			continue
		}
		if next >= len(positional) {
			if spec.IsRequired() {
				return &RequiredMissingError{Name: spec.name, Kind: KindArgument}
			}
			continue
		}
		val, err := p.argumentValue(spec, positional[next])
		if err != nil {
			return err
		}
		next++
		p.result.bindArg(spec, val)
	}
	if next < len(positional) {
		p.result.leftover = append([]string{}, positional[next:]...)
	}
	return nil
}

func (p *parser) argumentValue(spec *Spec, raw string) (any, error) {
	val, err := p.convert(spec, spec.name, raw)
	if err != nil {
		return nil, err
	}
	val, err = spec.validate(val)
	if err != nil {
		return nil, &ValidationFailedError{Name: spec.name, Message: err.Error(), Err: err}
	}
	return val, nil
}

// finalize applies env fallbacks, enforces required options, and applies defaults.
func (p *parser) finalize() error {
	for _, spec := range p.schema.Options() {
		if p.result.given[spec.name] {
			continue
		}
		if err := p.fromEnv(spec); err != nil {
			return err
		}
	}
	for _, spec := range p.schema.Options() {
		if p.result.given[spec.name] {
			continue
		}
		if spec.IsRequired() {
			return &RequiredMissingError{Name: spec.name, Kind: KindOption}
		}
		if def := spec.Default(); def != nil {
			p.result.options[spec.name] = def
		}
	}
	for _, spec := range p.schema.args {
		if _, ok := p.result.args[spec.name]; ok {
			continue
		}
		if def := spec.Default(); def != nil {
			p.result.args[spec.name] = def
		}
	}
	return nil
}

// fromEnv binds an option from the configured [env.Source].
// Array values are split on commas.
func (p *parser) fromEnv(spec *Spec) error {
	if len(spec.envKey) == 0 || p.cfg.env == nil {
		return nil
	}
	raw, ok := p.cfg.env.Lookup(spec.envKey)
	if !ok {
		return nil
	}
	if spec.IsBoolean() {
		val, ok := ParseBool(raw)
		if !ok {
			return &InvalidValueTypeError{Name: spec.envKey, Value: raw, Type: Bool}
		}
		return p.setOption(spec, spec.envKey, val)
	}
	parts := []string{raw}
	if spec.IsArray() {
		parts = strings.Split(raw, ",")
	}
	for _, part := range parts {
		val, err := p.convert(spec, spec.envKey, strings.TrimSpace(part))
		if err != nil {
			return err
		}
		if err := p.setOption(spec, spec.envKey, val); err != nil {
			return err
		}
	}
	return nil
}
