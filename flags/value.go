package flags

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	TrueWords  = []string{"on", "yes", "true"}  // TrueWords are the case-insensitive words coerced to true.
	FalseWords = []string{"off", "no", "false"} // FalseWords are the case-insensitive words coerced to false.
)

// ParseBool coerces a boolean word from [TrueWords] or [FalseWords].
func ParseBool(raw string) (val bool, ok bool) {
	word := strings.ToLower(strings.TrimSpace(raw))
	if slices.Contains(TrueWords, word) {
		return true, true
	}
	if slices.Contains(FalseWords, word) {
		return false, true
	}
	return false, false
}

func coerce(typ ValueType, raw string) (any, bool) {
	switch typ {
	case String:
		return raw, true
	case Int:
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, false
		}
		return i, true
	case Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	case Bool:
		return ParseBool(raw)
	default:
		return nil, false
	}
}

// formatValue renders a scalar so that coerce returns the same value.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// elements flattens a bound value into its scalar elements.
func elements(v any) []any {
	switch val := v.(type) {
	case []string:
		return toAny(val)
	case []int:
		return toAny(val)
	case []float64:
		return toAny(val)
	case []bool:
		return toAny(val)
	default:
		return []any{val}
	}
}

func toAny[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func emptySlice(typ ValueType) any {
	switch typ {
	case Int:
		return []int{}
	case Float:
		return []float64{}
	case Bool:
		return []bool{}
	default:
		return []string{}
	}
}

// appendValue appends a scalar to a typed slice, starting a new one if list is nil.
func appendValue(typ ValueType, list any, v any) (any, error) {
	if list == nil {
		list = emptySlice(typ)
	}
	var ok bool
	switch l := list.(type) {
	case []string:
		var s string
		if s, ok = v.(string); ok {
			return append(l, s), nil
		}
	case []int:
		var i int
		if i, ok = v.(int); ok {
			return append(l, i), nil
		}
	case []float64:
		var f float64
		if f, ok = v.(float64); ok {
			return append(l, f), nil
		}
	case []bool:
		var b bool
		if b, ok = v.(bool); ok {
			return append(l, b), nil
		}
	}
	return list, fmt.Errorf("cannot append %T to %T", v, list)
}

func copyValue(v any) any {
	switch val := v.(type) {
	case []string:
		return slices.Clone(val)
	case []int:
		return slices.Clone(val)
	case []float64:
		return slices.Clone(val)
	case []bool:
		return slices.Clone(val)
	default:
		return v
	}
}

// normalize converts a developer-supplied value to the canonical Go type for typ.
func normalize(typ ValueType, array bool, v any) (any, error) {
	if !array {
		return normalizeScalar(typ, v)
	}
	var items []any
	switch val := v.(type) {
	case nil:
		return emptySlice(typ), nil
	case []any:
		items = val
	case []string:
		items = toAny(val)
	case []int:
		items = toAny(val)
	case []float64:
		items = toAny(val)
	case []bool:
		items = toAny(val)
	default:
		return nil, fmt.Errorf("expected a slice of %s, got %T", typ, v)
	}
	list := emptySlice(typ)
	for _, item := range items {
		n, err := normalizeScalar(typ, item)
		if err != nil {
			return nil, err
		}
		if list, err = appendValue(typ, list, n); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func normalizeScalar(typ ValueType, v any) (any, error) {
	switch typ {
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Int:
		switch i := v.(type) {
		case int:
			return i, nil
		case int8:
			return int(i), nil
		case int16:
			return int(i), nil
		case int32:
			return int(i), nil
		case int64:
			return int(i), nil
		case uint8:
			return int(i), nil
		case uint16:
			return int(i), nil
		case uint32:
			return int(i), nil
		}
	case Float:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		case int:
			return float64(f), nil
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", typ, v)
}
