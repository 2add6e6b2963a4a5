package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/disorder/internal/alignment"
	"github.com/banshee-data/disorder/internal/fsutil"
	"github.com/banshee-data/disorder/internal/monitoring"
	"github.com/banshee-data/disorder/internal/testutil"
)

const metricJSON = `{
  "metric": "combined_categorical",
  "categories": ["Carol", "Bob", "Alice", "Jeremy"],
  "matrix": [
    [0.0, 0.5, 0.3, 0.7],
    [0.5, 0.0, 0.6, 0.4],
    [0.3, 0.6, 0.0, 0.7],
    [0.7, 0.4, 0.7, 0.0]
  ]
}`

// liza[0] and pierrot[0] are paired (0.0625 positional + 0.5 categorical);
// liza[1] is alone and costs delta_empty.
const alignmentJSON = `{
  "continuum": {
    "pierrot": [{"start": 2, "end": 6, "category": "Bob"}],
    "liza": [
      {"start": 1, "end": 5, "category": "Carol"},
      {"start": 6, "end": 8, "category": "Alice"}
    ]
  },
  "groups": [
    [{"annotator": "liza", "unit": 0}, {"annotator": "pierrot", "unit": 0}],
    [{"annotator": "liza", "unit": 1}, {"annotator": "pierrot", "unit": null}]
  ]
}`

func quiet(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func decodeReport(t *testing.T, r io.Reader) Report {
	t.Helper()
	var rep Report
	require.NoError(t, json.NewDecoder(r).Decode(&rep))
	return rep
}

func TestParseFlags(t *testing.T) {
	var errOut bytes.Buffer

	cfg, err := parseFlags([]string{"-input", "a.json"}, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "config/disorder.defaults.json", cfg.ConfigPath)
	assert.Equal(t, "a.json", cfg.InputPath)
	assert.False(t, cfg.Verbose)

	cfg, err = parseFlags([]string{"-config", "m.yaml", "-input", "-", "-o", "r.json", "-v"}, &errOut)
	require.NoError(t, err)
	assert.Equal(t, Config{ConfigPath: "m.yaml", InputPath: "-", OutputPath: "r.json", Verbose: true}, cfg)

	_, err = parseFlags([]string{"-version"}, &errOut)
	assert.NoError(t, err, "-version does not need an input")

	_, err = parseFlags(nil, &errOut)
	assert.ErrorContains(t, err, "-input is required")

	_, err = parseFlags([]string{"-input", "a.json", "extra"}, &errOut)
	assert.ErrorContains(t, err, "unexpected arguments")

	_, err = parseFlags([]string{"-bogus"}, &errOut)
	assert.Error(t, err)
}

func TestRunWritesReport(t *testing.T) {
	quiet(t)
	cfg := Config{
		ConfigPath: writeFile(t, "metric.json", metricJSON),
		InputPath:  writeFile(t, "alignment.json", alignmentJSON),
	}

	var out bytes.Buffer
	require.NoError(t, run(cfg, fsutil.OSFileSystem{}, nil, &out))
	rep := decodeReport(t, &out)

	_, err := uuid.Parse(rep.RunID)
	assert.NoError(t, err, "run_id %q", rep.RunID)
	assert.Equal(t, "combined_categorical", rep.Metric)
	assert.Equal(t, 2, rep.NumAnnotators)
	assert.Equal(t, 2, rep.NumAlignments)
	assert.Equal(t, 3, rep.NumUnits)

	require.Len(t, rep.GroupDisorders, 2)
	testutil.AssertFloatNear(t, 0.5625, rep.GroupDisorders[0], 1e-9)
	testutil.AssertFloatNear(t, 1.0, rep.GroupDisorders[1], 1e-9)
	testutil.AssertFloatNear(t, 0.78125, rep.Disorder, 1e-9)

	require.NotNil(t, rep.Spread)
	assert.Equal(t, 0.5625, rep.Spread.Min)
	assert.Equal(t, 1.0, rep.Spread.Max)
	testutil.AssertFloatNear(t, 0.4375/math.Sqrt2, rep.Spread.StdDev, 1e-9)
}

func TestRunReadsStdinAndWritesFile(t *testing.T) {
	quiet(t)
	outPath := filepath.Join(t.TempDir(), "report.json")
	cfg := Config{
		ConfigPath: writeFile(t, "metric.yaml", "metric: positional\ndelta_empty: 2\n"),
		InputPath:  "-",
		OutputPath: outPath,
	}

	var stdout bytes.Buffer
	require.NoError(t, run(cfg, fsutil.OSFileSystem{}, strings.NewReader(alignmentJSON), &stdout))
	assert.Zero(t, stdout.Len(), "report goes to the file, not stdout")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	rep := decodeReport(t, f)

	assert.Equal(t, "positional", rep.Metric)
	// Positional cost scales with delta_empty: 2 * ((1+1)/(4+4))².
	testutil.AssertFloatNear(t, 0.125, rep.GroupDisorders[0], 1e-9)
	testutil.AssertFloatNear(t, 2.0, rep.GroupDisorders[1], 1e-9)
}

func TestRunInMemory(t *testing.T) {
	quiet(t)
	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("/cfg/metric.json", []byte(metricJSON))
	mfs.WriteFile("/data/alignment.json", []byte(alignmentJSON))
	cfg := Config{ConfigPath: "/cfg/metric.json", InputPath: "/data/alignment.json", OutputPath: "/out/report.json"}

	require.NoError(t, run(cfg, mfs, nil, io.Discard))

	data, err := mfs.ReadFile("/out/report.json")
	require.NoError(t, err)
	rep := decodeReport(t, bytes.NewReader(data))
	testutil.AssertFloatNear(t, 0.78125, rep.Disorder, 1e-9)
}

func TestRunRejectsBrokenPartition(t *testing.T) {
	quiet(t)
	// liza[1] is in no group.
	input := `{
  "continuum": {
    "liza": [{"start": 1, "end": 5, "category": "Carol"}, {"start": 6, "end": 8, "category": "Alice"}],
    "pierrot": [{"start": 2, "end": 6, "category": "Bob"}]
  },
  "groups": [[{"annotator": "liza", "unit": 0}, {"annotator": "pierrot", "unit": 0}]]
}`
	cfg := Config{
		ConfigPath: writeFile(t, "metric.json", metricJSON),
		InputPath:  writeFile(t, "alignment.json", input),
	}

	err := run(cfg, fsutil.OSFileSystem{}, nil, io.Discard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, alignment.ErrPartition), "got %v", err)

	var perr *alignment.PartitionError
	require.ErrorAs(t, err, &perr)
	require.Len(t, perr.Missing, 1)
	assert.Equal(t, "liza", perr.Missing[0].Annotator)
}

func TestRunRejectsUnknownCategory(t *testing.T) {
	quiet(t)
	input := strings.Replace(alignmentJSON, `"Bob"`, `"Mallory"`, 1)
	cfg := Config{
		ConfigPath: writeFile(t, "metric.json", metricJSON),
		InputPath:  writeFile(t, "alignment.json", input),
	}
	assert.ErrorContains(t, run(cfg, fsutil.OSFileSystem{}, nil, io.Discard), "Mallory")
}

func TestRunMissingFiles(t *testing.T) {
	quiet(t)
	dir := t.TempDir()

	err := run(Config{ConfigPath: filepath.Join(dir, "none.json"), InputPath: "-"}, fsutil.OSFileSystem{}, strings.NewReader(alignmentJSON), io.Discard)
	assert.Error(t, err)

	cfg := Config{ConfigPath: writeFile(t, "metric.json", metricJSON), InputPath: filepath.Join(dir, "none.json")}
	assert.ErrorContains(t, run(cfg, fsutil.OSFileSystem{}, nil, io.Discard), "failed to open input")
}

// loadInput runs every decoding step the CLI performs before alignment.New.
func loadInput(input string) error {
	in, err := readInput(strings.NewReader(input))
	if err != nil {
		return err
	}
	c, err := in.buildContinuum()
	if err != nil {
		return err
	}
	_, err = in.buildGroups(c)
	return err
}

func TestReadInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown field",
			input:   `{"continuum": {}, "groups": [], "extra": 1}`,
			wantErr: "unknown field",
		},
		{
			name:    "trailing data",
			input:   `{"continuum": {}, "groups": []} {}`,
			wantErr: "trailing data",
		},
		{
			name:    "both payloads",
			input:   `{"continuum": {"a": [{"start": 0, "end": 1, "category": "x", "symbols": ["x"]}]}, "groups": []}`,
			wantErr: "both category and symbols",
		},
		{
			name:    "no payload",
			input:   `{"continuum": {"a": [{"start": 0, "end": 1}]}, "groups": []}`,
			wantErr: "needs a category or symbols",
		},
		{
			name:    "reversed segment",
			input:   `{"continuum": {"a": [{"start": 3, "end": 1, "category": "x"}]}, "groups": []}`,
			wantErr: "a[0]",
		},
		{
			name:    "index out of range",
			input:   `{"continuum": {"a": [{"start": 0, "end": 1, "category": "x"}]}, "groups": [[{"annotator": "a", "unit": 1}]]}`,
			wantErr: "has no unit 1",
		},
		{
			name:    "unknown annotator",
			input:   `{"continuum": {"a": [{"start": 0, "end": 1, "category": "x"}]}, "groups": [[{"annotator": "b", "unit": 0}]]}`,
			wantErr: `unknown annotator "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loadInput(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildContinuumSequenceUnits(t *testing.T) {
	in, err := readInput(strings.NewReader(`{
  "continuum": {
    "b": [{"start": 0, "end": 2, "symbols": []}],
    "a": [{"start": 1, "end": 3, "symbols": ["x", "y"]}]
  },
  "groups": [[{"annotator": "a", "unit": 0}, {"annotator": "b", "unit": 0}]]
}`))
	require.NoError(t, err)

	c, err := in.buildContinuum()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Annotators(), "annotators are registered in name order")
	assert.Equal(t, []string{"x", "y"}, c.Units("a")[0].Symbols())
	assert.Equal(t, 0, c.Units("b")[0].Len())

	groups, err := in.buildGroups(c)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Len())
}

func TestNewReportWithoutGroups(t *testing.T) {
	rep := newReport("positional", 0, 0, 0, nil)

	assert.Equal(t, []float64{}, rep.GroupDisorders)
	assert.Nil(t, rep.Spread)

	var buf bytes.Buffer
	require.NoError(t, rep.write(&buf))
	assert.Contains(t, buf.String(), `"group_disorders": []`)
	assert.NotContains(t, buf.String(), "spread")
}

func TestNewReportSingleGroup(t *testing.T) {
	rep := newReport("categorical", 2, 2, 0.4, []float64{0.4})

	require.NotNil(t, rep.Spread)
	assert.Equal(t, Spread{Min: 0.4, Max: 0.4}, *rep.Spread)
}
