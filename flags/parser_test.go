package flags

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/saylorsolutions/console/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return NewSchema().MustAdd(
		NewArgument("name", String, Required, "Who to greet"),
		NewArgument("count", Int, Optional, "How many times").WithDefault(1),
		Switch("yes", "Skip confirmation").WithShortcuts("y"),
		NewOption("limit", Int, Optional, "Max results").WithDefault(3).WithShortcuts("l"),
		NewOption("ratio", Float, Optional, "Ratio"),
		NewOption("tag", String, Array, "Tags").WithShortcuts("t"),
		NewOption("strict", Bool, Optional, "Strict mode"),
	)
}

func TestParse_ScenarioA(t *testing.T) {
	schema := NewSchema().MustAdd(
		NewArgument("name", String, Required, ""),
		Switch("yes", "").WithShortcuts("y"),
	)
	result, err := Parse(schema, []string{"-y", "alice"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"yes": true}, result.Options())
	assert.Equal(t, map[string]any{"name": "alice"}, result.Args())
	assert.Empty(t, result.Leftover())
}

func TestParse_ScenarioB(t *testing.T) {
	schema := NewSchema().MustAdd(NewOption("limit", Int, Optional, "").WithDefault(3))
	result, err := Parse(schema, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"limit": 3}, result.Options())
	assert.Equal(t, map[string]any{}, result.Args())
	assert.False(t, result.IsSet("limit"))
}

func TestParse_ScenarioD(t *testing.T) {
	_, err := Parse(NewSchema().MustAdd(Switch("yes", "")), []string{"--unknown", "x"})
	var unknown *UnknownFlagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "unknown", unknown.Name)
	assert.ErrorIs(t, err, ErrUnknownFlag)
	assert.EqualError(t, err, "unknown flag: --unknown")
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		tokens   []string
		options  map[string]any
		args     map[string]any
		leftover []string
		err      error
	}{
		"Defaults": {
			tokens:  []string{"bob"},
			options: map[string]any{"yes": false, "limit": 3, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Long option with separate value": {
			tokens:  []string{"--limit", "10", "bob"},
			options: map[string]any{"yes": false, "limit": 10, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Inline values": {
			tokens:  []string{"--limit=10", "-t=a", "--ratio=0.5", "--strict=yes", "bob", "2"},
			options: map[string]any{"yes": false, "limit": 10, "tag": []string{"a"}, "ratio": 0.5, "strict": true},
			args:    map[string]any{"name": "bob", "count": 2},
		},
		"Shortcut with separate value": {
			tokens:  []string{"-l", "7", "bob"},
			options: map[string]any{"yes": false, "limit": 7, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Last occurrence wins": {
			tokens:  []string{"--limit=1", "--limit=2", "bob"},
			options: map[string]any{"yes": false, "limit": 2, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Array accumulates": {
			tokens:  []string{"--tag=x", "-t", "y", "--tag", "z", "bob"},
			options: map[string]any{"yes": false, "limit": 3, "tag": []string{"x", "y", "z"}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Boolean words": {
			tokens:  []string{"--yes=OFF", "bob"},
			options: map[string]any{"yes": false, "limit": 3, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Empty tokens skipped": {
			tokens:  []string{"", "-y", "", "bob"},
			options: map[string]any{"yes": true, "limit": 3, "tag": []string{}},
			args:    map[string]any{"name": "bob", "count": 1},
		},
		"Leftovers": {
			tokens:   []string{"bob", "2", "extra", "--yes"},
			options:  map[string]any{"yes": false, "limit": 3, "tag": []string{}},
			args:     map[string]any{"name": "bob", "count": 2},
			leftover: []string{"extra", "--yes"},
		},
		"Terminator": {
			tokens:   []string{"-y", "--", "--limit", "2", "-x"},
			options:  map[string]any{"yes": true, "limit": 3, "tag": []string{}},
			args:     map[string]any{"name": "--limit", "count": 2},
			leftover: []string{"-x"},
		},
		"Dash is positional": {
			tokens:  []string{"-"},
			options: map[string]any{"yes": false, "limit": 3, "tag": []string{}},
			args:    map[string]any{"name": "-", "count": 1},
		},
		"Unknown shortcut": {
			tokens: []string{"-z", "bob"},
			err:    ErrUnknownFlag,
		},
		"Missing value at end": {
			tokens: []string{"--limit"},
			err:    ErrMissingValue,
		},
		"Missing value before flag": {
			tokens: []string{"--limit", "-y", "bob"},
			err:    ErrMissingValue,
		},
		"Invalid int": {
			tokens: []string{"--limit=ten", "bob"},
			err:    ErrInvalidValueType,
		},
		"Invalid float": {
			tokens: []string{"--ratio", "half", "bob"},
			err:    ErrInvalidValueType,
		},
		"Invalid boolean word": {
			tokens: []string{"--yes=maybe", "bob"},
			err:    ErrInvalidValueType,
		},
		"Invalid argument type": {
			tokens: []string{"bob", "two"},
			err:    ErrInvalidValueType,
		},
		"Missing required argument": {
			tokens: []string{"-y"},
			err:    ErrRequiredMissing,
		},
		"Options after arguments are positional": {
			tokens:   []string{"bob", "3", "--limit=9"},
			options:  map[string]any{"yes": false, "limit": 3, "tag": []string{}},
			args:     map[string]any{"name": "bob", "count": 3},
			leftover: []string{"--limit=9"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := Parse(testSchema(), tc.tokens)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.options, result.Options())
			assert.Equal(t, tc.args, result.Args())
			assert.Equal(t, tc.leftover, result.Leftover())
		})
	}
}

func TestParse_OverridePolicy(t *testing.T) {
	single := NewSchema().MustAdd(NewOption("x", Int, Optional, ""))
	result, err := Parse(single, []string{"--x=1", "--x=2"})
	require.NoError(t, err)
	assert.Equal(t, 2, MustGetForTest(result.GetInt("x")))

	array := NewSchema().MustAdd(NewOption("x", Int, Array, ""))
	result, err = Parse(array, []string{"--x=1", "--x=2"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, MustGetForTest(result.GetInts("x")))
}

func MustGetForTest[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func TestParse_RequiredOption(t *testing.T) {
	schema := NewSchema().MustAdd(
		NewOption("token", String, Required, ""),
		Switch("yes", "").WithShortcuts("y"),
		NewArgument("rest", String, Array, ""),
	)
	inputs := [][]string{
		nil,
		{"-y"},
		{"-y", "a", "b"},
		{"--", "--token=x"},
	}
	for _, tokens := range inputs {
		_, err := Parse(schema, tokens)
		var missing *RequiredMissingError
		require.True(t, errors.As(err, &missing), "tokens: %v", tokens)
		assert.Equal(t, "token", missing.Name)
		assert.Equal(t, KindOption, missing.Kind)
	}

	result, err := Parse(schema, []string{"--token", "abc", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "abc", MustGetForTest(result.GetString("token")))
	assert.Equal(t, []string{"a", "b"}, MustGetForTest(result.GetStrings("rest")))
	assert.Empty(t, result.Leftover(), "Array arguments consume all remaining tokens")
}

func TestParse_RequiredArray(t *testing.T) {
	schema := NewSchema().MustAdd(NewArgument("files", String, Required|Array, ""))
	_, err := Parse(schema, nil)
	assert.ErrorIs(t, err, ErrRequiredMissing)

	result, err := Parse(schema, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, MustGetForTest(result.GetStrings("files")))
}

func TestParse_Validator(t *testing.T) {
	errOdd := errors.New("must be even")
	schema := NewSchema().MustAdd(
		NewOption("n", Int, Array, "").WithValidator(func(value any) (any, error) {
			if value.(int)%2 != 0 {
				return nil, errOdd
			}
			return value, nil
		}),
		NewArgument("word", String, Optional, "").WithValidator(func(value any) (any, error) {
			return strings.ToUpper(value.(string)), nil
		}),
	)

	result, err := Parse(schema, []string{"--n=2", "--n", "4", "hello"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, MustGetForTest(result.GetInts("n")))
	assert.Equal(t, "HELLO", MustGetForTest(result.GetString("word")))

	_, err = Parse(schema, []string{"--n=3"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, errOdd)
	var failed *ValidationFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "n", failed.Name)
	assert.Equal(t, "must be even", failed.Message)
}

func TestParse_Env(t *testing.T) {
	schema := NewSchema().MustAdd(
		NewOption("token", String, Required, "").WithEnv("APP_TOKEN"),
		Switch("debug", "").WithEnv("APP_DEBUG"),
		NewOption("tag", String, Array, "").WithEnv("APP_TAGS"),
		NewOption("limit", Int, Optional, "").WithEnv("APP_LIMIT").WithDefault(3),
	)
	src := env.Map{"APP_TOKEN": "secret", "APP_DEBUG": "yes", "APP_TAGS": "a, b"}

	result, err := Parse(schema, nil, WithEnv(src))
	require.NoError(t, err)
	assert.Equal(t, "secret", MustGetForTest(result.GetString("token")))
	assert.True(t, MustGetForTest(result.GetBool("debug")))
	assert.Equal(t, []string{"a", "b"}, MustGetForTest(result.GetStrings("tag")))
	assert.Equal(t, 3, MustGetForTest(result.GetInt("limit")))
	assert.True(t, result.IsSet("token"))
	assert.False(t, result.IsSet("limit"))

	result, err = Parse(schema, []string{"--token=given"}, WithEnv(src))
	require.NoError(t, err)
	assert.Equal(t, "given", MustGetForTest(result.GetString("token")), "Tokens take precedence over env")

	_, err = Parse(schema, nil, WithEnv(env.Map{"APP_TOKEN": "x", "APP_LIMIT": "many"}))
	assert.ErrorIs(t, err, ErrInvalidValueType)

	_, err = Parse(schema, nil)
	assert.ErrorIs(t, err, ErrRequiredMissing, "Env keys are ignored without a source")
}

func TestParse_Interspersed(t *testing.T) {
	result, err := Parse(testSchema(), []string{"bob", "-y", "2", "--limit", "5", "--", "-x"}, Interspersed())
	require.NoError(t, err)
	assert.True(t, MustGetForTest(result.GetBool("yes")))
	assert.Equal(t, 5, MustGetForTest(result.GetInt("limit")))
	assert.Equal(t, 2, MustGetForTest(result.GetInt("count")))
	assert.Equal(t, []string{"-x"}, result.Leftover())
}

func TestParse_ShortFlagGrouping(t *testing.T) {
	schema := NewSchema().MustAdd(
		Switch("all", "").WithShortcuts("a"),
		Switch("brief", "").WithShortcuts("b"),
		NewOption("output", String, Optional, "").WithShortcuts("o"),
		Switch("ab", ""),
	)

	result, err := Parse(schema, []string{"-ba", "-o", "file"}, ShortFlagGrouping())
	require.NoError(t, err)
	assert.True(t, MustGetForTest(result.GetBool("all")))
	assert.True(t, MustGetForTest(result.GetBool("brief")))
	assert.Equal(t, "file", MustGetForTest(result.GetString("output")))

	result, err = Parse(schema, []string{"-aofile"}, ShortFlagGrouping())
	require.NoError(t, err)
	assert.True(t, MustGetForTest(result.GetBool("all")))
	assert.Equal(t, "file", MustGetForTest(result.GetString("output")))

	result, err = Parse(schema, []string{"-abo", "x"}, ShortFlagGrouping())
	require.NoError(t, err)
	assert.Equal(t, "x", MustGetForTest(result.GetString("output")))

	result, err = Parse(schema, []string{"-ab"}, ShortFlagGrouping())
	require.NoError(t, err)
	assert.True(t, MustGetForTest(result.GetBool("ab")), "Declared options take precedence over grouping")
	assert.False(t, MustGetForTest(result.GetBool("all")))

	_, err = Parse(schema, []string{"-az"}, ShortFlagGrouping())
	assert.ErrorIs(t, err, ErrUnknownFlag)

	_, err = Parse(schema, []string{"-ba"})
	assert.ErrorIs(t, err, ErrUnknownFlag, "Grouping is off by default")
	assert.EqualError(t, err, "unknown flag: -ba")

	_, err = Parse(schema, []string{"-aé"}, ShortFlagGrouping())
	var unknown *UnknownFlagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "é", unknown.Name)
	assert.True(t, utf8.ValidString(unknown.Name))
	assert.EqualError(t, err, "unknown flag: -é")
}

func TestParse_Deterministic(t *testing.T) {
	tokens := []string{"--tag=a", "-t", "b", "bob", "3", "x"}
	first, err := Parse(testSchema(), tokens)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := Parse(testSchema(), tokens)
		require.NoError(t, err)
		assert.Equal(t, first.Options(), next.Options())
		assert.Equal(t, first.Args(), next.Args())
		assert.Equal(t, first.Leftover(), next.Leftover())
	}
	_, errA := Parse(testSchema(), []string{"--nope"})
	_, errB := Parse(testSchema(), []string{"--nope"})
	assert.Equal(t, errA, errB)
}

func TestResult_RoundTrip(t *testing.T) {
	schema := NewSchema().MustAdd(
		NewArgument("name", String, Required, ""),
		NewArgument("rest", Float, Array, ""),
		Switch("yes", "").WithShortcuts("y"),
		NewOption("limit", Int, Optional, "").WithDefault(3),
		NewOption("tag", String, Array, "").WithShortcuts("t"),
		NewOption("mode", String, Optional, ""),
	)
	inputs := [][]string{
		{"alice"},
		{"-y", "alice"},
		{"--yes=false", "--limit", "-4", "alice"},
		{"-t", "a=b", "--tag=", "--mode=-dash", "--", "-alice", "1.5", "2"},
		{"--limit=0", "", "0.1"},
	}
	for _, tokens := range inputs {
		t.Run(fmt.Sprint(tokens), func(t *testing.T) {
			first, err := Parse(schema, tokens)
			if err != nil {
				// negative values can't follow an option as a separate token
				assert.ErrorIs(t, err, ErrMissingValue)
				return
			}
			canonical := first.Tokens()
			second, err := Parse(schema, canonical)
			require.NoError(t, err, "canonical tokens: %v", canonical)
			assert.Equal(t, first.Options(), second.Options())
			assert.Equal(t, first.Args(), second.Args())
			assert.Equal(t, first.Leftover(), second.Leftover())
			assert.Equal(t, canonical, second.Tokens())
		})
	}
}

func TestResult_Tokens(t *testing.T) {
	result, err := Parse(testSchema(), []string{"-y", "-t", "b", "--tag=a", "bob", "2", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--tag=b", "--tag=a", "--yes=true", "--", "bob", "2", "x"}, result.Tokens())
}

func TestResult_Getters(t *testing.T) {
	result, err := Parse(testSchema(), []string{"-l", "4", "bob"})
	require.NoError(t, err)

	val, ok := result.Option("l")
	assert.True(t, ok, "Shortcuts should resolve")
	assert.Equal(t, 4, val)
	val, ok = result.ArgAt(0)
	assert.True(t, ok)
	assert.Equal(t, "bob", val)
	_, ok = result.ArgAt(5)
	assert.False(t, ok)
	assert.True(t, result.IsSet("limit"))
	assert.True(t, result.IsSet("name"))
	assert.False(t, result.IsSet("count"))

	_, err = result.GetString("limit")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = result.GetString("ratio")
	assert.ErrorIs(t, err, ErrNotBound)

	tags, err := result.GetStrings("tag")
	require.NoError(t, err)
	tags = append(tags, "mutated")
	assert.Equal(t, []string{}, MustGetForTest(result.GetStrings("tag")), "Results should hand out copies")
}
