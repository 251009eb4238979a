package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/display"
	"github.com/teranos/qntx-dims/errors"
)

const ref = "2013-02-12T04:30:00Z"

// execute runs cmd with args and returns its output. Flag state is reset
// afterwards since commands are package globals.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(display.CallerEnv, "")
	am.Reset()
	pterm.DisableStyling()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(cmd)
		am.Reset()
	})

	err := cmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

type entityJSON struct {
	Body  string          `json:"body"`
	Start int             `json:"start"`
	End   int             `json:"end"`
	Dim   string          `json:"dim"`
	Value json.RawMessage `json:"value"`
}

func TestParseJSON(t *testing.T) {
	out, err := execute(t, ParseCmd, "", "--ref", ref, "--json", "-d", "time", "tomorrow at 3pm")
	require.NoError(t, err)

	var got []entityJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "tomorrow at 3pm", got[0].Body)
	assert.Equal(t, "time", got[0].Dim)
	assert.Contains(t, string(got[0].Value), "2013-02-13T15:00:00")
}

func TestParseTable(t *testing.T) {
	out, err := execute(t, ParseCmd, "", "-d", "email", "mail", "bob@example.com", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "5-20")
}

func TestParseStdin(t *testing.T) {
	out, err := execute(t, ParseCmd, "forty-two\n", "--json", "-d", "number")
	require.NoError(t, err)

	var got []entityJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "forty-two", got[0].Body)
	assert.JSONEq(t, `{"value": 42}`, string(got[0].Value))
}

func TestParseNothingFound(t *testing.T) {
	out, err := execute(t, ParseCmd, "", "-d", "email", "no address here")
	require.NoError(t, err)
	assert.Contains(t, out, "No entities found")
}

func TestParseInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"no text", "", nil},
		{"unknown dim", "", []string{"-d", "mood", "three"}},
		{"bad ref", "", []string{"--ref", "yesterday", "three"}},
		{"bad timezone", "", []string{"--tz", "Nowhere/Atlantis", "three"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, ParseCmd, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInputError(err), "got %v", err)
		})
	}

	_, err := execute(t, ParseCmd, "", "-l", "fr_FR", "demain")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedLocaleError(err))
}

func TestDimsJSON(t *testing.T) {
	out, err := execute(t, DimsCmd, "", "--json")
	require.NoError(t, err)

	var dims []struct {
		Name         string   `json:"name"`
		Dependencies []string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dims))
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	assert.Contains(t, names, "time")
	assert.Contains(t, names, "amount-of-money")
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, VersionCmd, "", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
	assert.NotEmpty(t, info["go_version"])
}

func TestCorpusCommand(t *testing.T) {
	path := filepath.Join("..", "..", "..", "corpus", "testdata", "en_us.yaml")
	out, err := execute(t, CorpusCmd, "", "--quiet", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, " 0 failed")

	_, err = execute(t, CorpusCmd, "", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAmSetAndShow(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dims.toml")

	_, err := execute(t, AmCmd, "", "set", "--file", file, "parse.max_alternatives", "5")
	require.NoError(t, err)
	_, err = execute(t, AmCmd, "", "set", "--file", file, "parse.dims", "[time, email]")
	require.NoError(t, err)

	cfg, err := am.LoadFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Parse.MaxAlternatives)
	assert.Equal(t, []string{"time", "email"}, cfg.Parse.Dims)

	out, err := execute(t, AmCmd, "", "show", "--format", "json")
	require.NoError(t, err)
	var shown am.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "en_US", shown.Parse.Locale)

	_, err = execute(t, AmCmd, "", "show", "--format", "xml")
	assert.Error(t, err)
}

func TestAmGetAndValidate(t *testing.T) {
	out, err := execute(t, AmCmd, "", "get", "parse.locale")
	require.NoError(t, err)
	assert.Equal(t, "en_US\n", out)

	_, err = execute(t, AmCmd, "", "get", "parse.nope")
	assert.Error(t, err)

	out, err = execute(t, AmCmd, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	t.Setenv("QNTX_DIMS_PARSE_LOCALE", "xx_YY")
	_, err = execute(t, AmCmd, "", "validate")
	assert.Error(t, err)
}
