package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs one command line against db and returns its stdout.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// transcript runs each command line in turn and records prompt and output.
func transcript(t *testing.T, db string, lines [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, args := range lines {
		out, err := execute(t, db, args...)
		require.NoError(t, err, strings.Join(args, " "))
		buf.WriteString("$ syren " + strings.Join(args, " ") + "\n")
		buf.WriteString(out)
	}
	return buf.Bytes()
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "syren", cmd.Use)

	for _, name := range []string{"get", "set", "push", "pop", "len", "del", "keys", "dump"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	db := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, db)
	assert.Equal(t, "", db.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "", "--format", "xml", "keys")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestSession_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")

	got := transcript(t, db, [][]string{
		{"set", "user", `{"name":"ada","age":36}`},
		{"get", "user", "name"},
		{"set", "user", "age", "37"},
		{"get", "user"},
		{"push", "todo", `"write tests"`},
		{"push", "todo", "ship"},
		{"push", "todo", `"plan"`, "0"},
		{"get", "todo"},
		{"pop", "todo"},
		{"len", "todo", "1"},
		{"get", "todo", "0"},
		{"set", "count", "5"},
		{"get", "count"},
		{"keys"},
		{"del", "todo"},
		{"keys"},
	})

	golden(t).Assert(t, "session", got)
}

func TestSession_Document(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	got := transcript(t, path, [][]string{
		{"set", "theme", "dark"},
		{"set", "prefs", `{"lang":"en"}`},
		{"set", "prefs", `{"tz":"UTC"}`},
		{"--format", "yaml", "get", "prefs"},
		{"--format", "json", "dump"},
	})

	golden(t).Assert(t, "document", got)
}

func TestSet_ReplacesOtherShape(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")

	_, err := execute(t, db, "set", "v", `{"a":1}`)
	require.NoError(t, err)
	_, err = execute(t, db, "set", "v", "[1,2]")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "get", "v")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, out)
}

func TestErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")
	_, err := execute(t, db, "set", "n", "1")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing key", []string{"get", "nope"}, `key "nope" not found`},
		{"field of scalar", []string{"get", "n", "x"}, `"n" holds a number, not an object or array`},
		{"push onto scalar", []string{"push", "n", "1"}, `"n" holds a number, not an array`},
		{"store null", []string{"set", "n", "null"}, "use del"},
		{"pop empty", []string{"pop", "nope"}, `key "nope" not found`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, db, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Format: "json", Writer: &buf}

	require.NoError(t, p.Lines(nil))
	assert.Equal(t, "[]\n", buf.String())
}
