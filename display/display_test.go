package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Bool("json", false, "")
	return cmd
}

func TestShouldOutputJSON(t *testing.T) {
	t.Setenv(CallerEnv, "")

	cmd := newCmd()
	assert.False(t, ShouldOutputJSON(cmd))
	assert.False(t, ShouldOutputJSON(nil))

	require.NoError(t, cmd.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(cmd))

	t.Setenv(CallerEnv, "llm")
	assert.True(t, ShouldOutputJSON(newCmd()))
	assert.True(t, ShouldOutputJSON(nil))

	cmd = newCmd()
	require.NoError(t, cmd.Flags().Set("json", "false"))
	assert.False(t, ShouldOutputJSON(cmd), "explicit flag wins over caller")
}

func TestOutputJSON(t *testing.T) {
	v := map[string]int{"a": 1}

	t.Setenv(CallerEnv, "")
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, v))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	t.Setenv(CallerEnv, "script")
	buf.Reset()
	require.NoError(t, OutputJSON(&buf, v))
	assert.Equal(t, "{\"a\":1}\n", buf.String())
}
