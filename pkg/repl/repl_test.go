package repl

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPL_Exec(t *testing.T) {
	r := NewRepl()
	var got []string
	r.AddCommand("echo", func(input string, config *REPLConfig) error {
		got = append(got, input)
		_, err := fmt.Fprintln(config.Writer, "ok")
		return err
	}, "Echoes. usage: echo <text>")
	r.AddCommand("fail", func(string, *REPLConfig) error {
		return fmt.Errorf("boom")
	}, "Fails. usage: fail")

	var out bytes.Buffer
	config := &REPLConfig{Writer: &out}

	r.Exec("  echo hi there ", config)
	require.Equal(t, []string{"echo hi there"}, got)
	assert.Equal(t, "ok\n", out.String())

	out.Reset()
	r.Exec("fail", config)
	assert.Equal(t, "Error: boom\n", out.String())

	out.Reset()
	r.Exec("   ", config)
	assert.Empty(t, out.String())

	out.Reset()
	r.Exec("nope 1", config)
	assert.Contains(t, out.String(), "Invalid command: nope\n")
	assert.Contains(t, out.String(), "\techo: Echoes. usage: echo <text>\n")
}

func TestREPL_AddCommand_Rejects_Reserved(t *testing.T) {
	r := NewRepl()
	noop := func(string, *REPLConfig) error { return nil }
	r.AddCommand("", noop, "")
	r.AddCommand(".hidden", noop, "")
	r.AddCommand(ExitCommand, noop, "")
	assert.Empty(t, r.Commands)
	assert.Empty(t, r.Help)
}

func TestREPL_HelpString_Sorted(t *testing.T) {
	r := NewRepl()
	noop := func(string, *REPLConfig) error { return nil }
	r.AddCommand("b", noop, "second")
	r.AddCommand("a", noop, "first")
	assert.Equal(t, "Commands\n\ta: first\n\tb: second\n\texit: Leaves the repl\n", r.HelpString())
}
