package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saylorsolutions/console/cli"
	"github.com/saylorsolutions/console/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDemo(t *testing.T) (*cli.App, *bytes.Buffer) {
	var buf bytes.Buffer
	printer := cli.NewPrinter()
	printer.Redirect(&buf)
	app, err := newApp(printer)
	require.NoError(t, err)
	return app, &buf
}

func TestDemo(t *testing.T) {
	tests := map[string]struct {
		args     []string
		expected string
		err      error
		errText  string
	}{
		"Greet": {
			args:     []string{"greet", "alice"},
			expected: "Hello, alice!\n",
		},
		"Greet loud twice": {
			args:     []string{"g", "-l", "--times=2", "bob"},
			expected: "HELLO, BOB!\nHELLO, BOB!\n",
		},
		"Greet zero times": {
			args: []string{"greet", "--times=0", "bob"},
			err:  &cli.UsageError{},
		},
		"Pages": {
			args:     []string{"h:i", "--limit=2"},
			expected: "about\nblog\n",
		},
		"Pages by tag": {
			args:     []string{"home", "index", "-v", "-t", "news"},
			expected: "blog\t[news, posts]\nreleases\t[news]\n",
		},
		"Users": {
			args:     []string{"home", "admin", "users"},
			expected: "alice\nbob\ncarol\n",
		},
		"Some users": {
			args:     []string{"h:admin:users", "carol"},
			expected: "carol\n",
		},
		"Unknown user": {
			args:    []string{"h:admin:users", "dave"},
			errText: "no such user: 'dave'",
		},
		"Sum": {
			args:     []string{"add", "-p", "1", "1.2", "2"},
			expected: "3.3\n",
		},
		"Sum bad precision": {
			args: []string{"sum", "--precision=11", "1"},
			err:  flags.ErrValidationFailed,
		},
		"Echo": {
			args:     []string{"echo", "-L", "x", "--label=y", "--", "a", "-b"},
			expected: "--label=x --label=y -- a -b\n",
		},
		"Version": {
			args:     []string{"version"},
			expected: "console-demo dev\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			app, buf := testDemo(t)
			err := app.Exec(context.Background(), tc.args)
			switch {
			case len(tc.errText) > 0:
				assert.EqualError(t, err, tc.errText)
				assert.NotErrorIs(t, err, &cli.UsageError{})
			case tc.err != nil:
				assert.ErrorIs(t, err, tc.err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, buf.String())
			}
		})
	}
}

func TestDemo_Env(t *testing.T) {
	t.Setenv("GREET_TIMES", "3")
	app, buf := testDemo(t)
	require.NoError(t, app.Exec(context.Background(), []string{"greet", "env"}))
	assert.Equal(t, "Hello, env!\nHello, env!\nHello, env!\n", buf.String())
}

func TestDemo_Usage(t *testing.T) {
	app, buf := testDemo(t)
	require.NoError(t, app.Exec(context.Background(), nil))
	out := buf.String()
	assert.Contains(t, out, "console-demo\n\nDemonstrates nested commands")
	assert.Contains(t, out, "greet, g")
	assert.Contains(t, out, "sum, add")
	assert.Contains(t, out, "home, h")
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	logger, closer := newLogger("debug", "json", path, false)
	require.NotNil(t, closer)
	logger.Debug("Testing", "key", "value")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Testing"`)
	assert.Contains(t, string(data), `"key":"value"`)

	logger, closer = newLogger("nope", "auto", "", true)
	assert.Nil(t, closer)
	assert.False(t, logger.Enabled(context.Background(), -4), "Unknown levels fall back to info")
}

func TestSignalContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := signalContext(parent, os.Interrupt)
	defer stop()
	assert.NoError(t, ctx.Err())
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	assert.Panics(t, func() {
		signalContext(context.Background())
	})
}

func TestRun_RootFlags(t *testing.T) {
	assert.Equal(t, 2, run([]string{"console-demo", "--nope"}))
	assert.Equal(t, 2, run([]string{"console-demo", "--log-level=debug", "greet"}), "Usage errors exit with 2")
}
