package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
	"github.com/teranos/qntx-dims/version"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTestdataCorporaPass(t *testing.T) {
	corpora, err := LoadAll("testdata")
	require.NoError(t, err)
	require.Len(t, corpora, 3)

	ex := extract.New()
	for _, c := range corpora {
		t.Run(filepath.Base(c.Path), func(t *testing.T) {
			report, err := Run(context.Background(), ex, c)
			require.NoError(t, err)
			assert.Empty(t, report.Skipped)
			for _, res := range report.Results {
				assert.True(t, res.Passed(), "%s: err=%v failures=%v", res.Case.Label(), res.Err, res.Failures)
			}
			assert.True(t, report.OK())
		})
	}
}

func TestLoadYAMLAndTOMLAgree(t *testing.T) {
	y := writeFile(t, "c.yaml", `
locale: en_GB
reference_time: '2013-02-12T04:30:00Z'
cases:
  - text: "three"
    dims: [number]
    expect:
      - {value: "3", start: 0}
`)
	tm := writeFile(t, "c.toml", `
locale = "en_GB"
reference_time = "2013-02-12T04:30:00Z"

[[cases]]
text = "three"
dims = ["number"]

  [[cases.expect]]
  value = "3"
  start = 0
`)
	a, err := Load(y)
	require.NoError(t, err)
	b, err := Load(tm)
	require.NoError(t, err)

	a.Path, b.Path = "", ""
	assert.Equal(t, a, b)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml key", "c.yaml", "locale: en_US\nreference_time: '2013-02-12T04:30:00Z'\nrefrence: x\ncases: [{text: a}]\n"},
		{"unknown toml key", "c.toml", "locale = \"en_US\"\nreference_time = \"2013-02-12T04:30:00Z\"\ncolour = 1\n[[cases]]\ntext = \"a\"\n"},
		{"unsupported extension", "c.json", "{}"},
		{"missing reference time", "c.yaml", "locale: en_US\ncases: [{text: a}]\n"},
		{"bad reference time", "c.yaml", "reference_time: yesterday\ncases: [{text: a}]\n"},
		{"unsupported locale", "c.yaml", "locale: fr_FR\nreference_time: '2013-02-12T04:30:00Z'\ncases: [{text: a}]\n"},
		{"no cases", "c.yaml", "reference_time: '2013-02-12T04:30:00Z'\n"},
		{"empty text", "c.yaml", "reference_time: '2013-02-12T04:30:00Z'\ncases: [{text: ' '}]\n"},
		{"unknown dimension", "c.yaml", "reference_time: '2013-02-12T04:30:00Z'\ncases: [{text: a, dims: [mood]}]\n"},
		{"unknown expected kind", "c.yaml", "reference_time: '2013-02-12T04:30:00Z'\ncases: [{text: a, expect: [{kind: mood}]}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunSkipsUnsatisfiedRequirement(t *testing.T) {
	saved := version.Version
	version.Version = "0.0.1"
	t.Cleanup(func() { version.Version = saved })

	c, err := Load(writeFile(t, "c.yaml", "requires: \">= 1.0\"\nreference_time: '2013-02-12T04:30:00Z'\ncases: [{text: three}]\n"))
	require.NoError(t, err)

	report, err := Run(context.Background(), extract.New(), c)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Skipped)
	assert.Empty(t, report.Results)
}

func TestRunCancelled(t *testing.T) {
	c, err := Load(writeFile(t, "c.yaml", "reference_time: '2013-02-12T04:30:00Z'\ncases: [{text: three}]\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, extract.New(), c)
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	point := &dimension.TimePoint{Value: time.Date(2013, 2, 13, 15, 0, 0, 0, time.UTC), Grain: dimension.Hour}
	got := []dimension.Entity{
		{Body: "three", Start: 0, End: 5, Value: dimension.NumeralValue{Value: 3}},
		{Body: "tomorrow at 3pm", Start: 10, End: 25, Value: dimension.TimeValue{TimeSpec: dimension.TimeSpec{Point: point}}},
	}
	start := 10

	assert.Empty(t, Compare([]Expectation{
		{Kind: "number", Value: "3"},
		{Body: "tomorrow at 3pm", Kind: "time", Value: "2013-02-13T15:00:00", Grain: "hour", Start: &start},
	}, got))

	failures := Compare([]Expectation{
		{Kind: "ordinal", Value: "4"},
		{Body: "tomorrow", Grain: "day"},
		{Value: "extra"},
	}, got)
	assert.Len(t, failures, 5)
}

func TestRunReportsParseErrorsPerCase(t *testing.T) {
	c := &Corpus{
		Locale:        "en_US",
		ReferenceTime: "2013-02-12T04:30:00Z",
		Cases:         []Case{{Text: "three", Dims: []string{"mood"}}, {Text: "three", Dims: []string{"number"}}},
	}
	report, err := Run(context.Background(), extract.New(), c)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.True(t, errors.Is(report.Results[0].Err, errors.ErrUnknownDimension))
	assert.False(t, report.Results[0].Passed())
	assert.False(t, report.Results[1].Passed(), "no expectations but one entity found")

	passed, failed := report.Counts()
	assert.Equal(t, 0, passed)
	assert.Equal(t, 2, failed)
}
