package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/disorder/internal/dissimilarity"
	"github.com/banshee-data/disorder/internal/fsutil"
	"github.com/banshee-data/disorder/internal/monitoring"
)

// DefaultConfigPath is the path to the canonical metric defaults file.
const DefaultConfigPath = "config/disorder.defaults.json"

// Metric names accepted in the "metric" field.
const (
	MetricPositional          = "positional"
	MetricCategorical         = "categorical"
	MetricSequence            = "sequence"
	MetricCombinedCategorical = "combined_categorical"
	MetricCombinedSequence    = "combined_sequence"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// MetricConfig selects and parameterises a dissimilarity metric. Fields
// left nil fall back to the defaults returned by the Get* methods, so
// partial configs are safe.
type MetricConfig struct {
	Metric     *string     `json:"metric,omitempty" yaml:"metric,omitempty"`
	Categories []string    `json:"categories,omitempty" yaml:"categories,omitempty"`
	Matrix     [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`

	DeltaEmpty *float64 `json:"delta_empty,omitempty" yaml:"delta_empty,omitempty"`

	// Combined metrics only.
	Alpha *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`

	// Sequence metrics only.
	GapPenalty *float64 `json:"gap_penalty,omitempty" yaml:"gap_penalty,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyMetricConfig returns a MetricConfig with every field unset.
func EmptyMetricConfig() *MetricConfig {
	return &MetricConfig{}
}

// LoadMetricConfig loads a MetricConfig from a .json, .yaml or .yml file
// of at most 1MB. Unknown fields are rejected.
func LoadMetricConfig(path string) (*MetricConfig, error) {
	return LoadMetricConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadMetricConfigFS is LoadMetricConfig reading through fsys.
func LoadMetricConfigFS(fsys fsutil.FileSystem, path string) (*MetricConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseMetricConfig(data, ext)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("config: loaded %s metric from %s", cfg.GetMetric(), cleanPath)
	return cfg, nil
}

// ParseMetricConfig decodes and validates data. ext selects the format
// the way a file extension would.
func ParseMetricConfig(data []byte, ext string) (*MetricConfig, error) {
	cfg := EmptyMetricConfig()
	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves every field at its default.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. It panics if the
// file cannot be loaded and is intended for test setup.
func MustLoadDefaultConfig() *MetricConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/disorder/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadMetricConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks field ranges and the shape of categories and matrix.
// Matrix symmetry and diagonal are checked when the alphabet is built.
func (c *MetricConfig) Validate() error {
	switch name := c.GetMetric(); name {
	case MetricPositional:
	case MetricCategorical, MetricSequence, MetricCombinedCategorical, MetricCombinedSequence:
		if len(c.Categories) == 0 {
			return fmt.Errorf("metric %s needs categories", name)
		}
	default:
		return fmt.Errorf("unknown metric %q", name)
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if seen[cat] {
			return fmt.Errorf("category %q listed twice", cat)
		}
		seen[cat] = true
	}

	if c.Matrix != nil {
		if len(c.Matrix) != len(c.Categories) {
			return fmt.Errorf("matrix has %d rows, want %d (one per category)", len(c.Matrix), len(c.Categories))
		}
		for i, row := range c.Matrix {
			if len(row) != len(c.Categories) {
				return fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), len(c.Categories))
			}
		}
	}

	if c.DeltaEmpty != nil {
		if d := *c.DeltaEmpty; !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("delta_empty must be positive and finite, got %f", d)
		}
	}
	if c.Alpha != nil && !(*c.Alpha >= 0) {
		return fmt.Errorf("alpha must be non-negative, got %f", *c.Alpha)
	}
	if c.Beta != nil && !(*c.Beta >= 0) {
		return fmt.Errorf("beta must be non-negative, got %f", *c.Beta)
	}
	if c.GapPenalty != nil {
		if g := *c.GapPenalty; !(g > 0) || math.IsInf(g, 0) {
			return fmt.Errorf("gap_penalty must be positive and finite, got %f", g)
		}
	}
	return nil
}

// GetMetric returns the metric name or the default.
func (c *MetricConfig) GetMetric() string {
	if c.Metric == nil || *c.Metric == "" {
		return MetricCombinedCategorical
	}
	return *c.Metric
}

// GetDeltaEmpty returns the delta_empty value or the default.
func (c *MetricConfig) GetDeltaEmpty() float64 {
	if c.DeltaEmpty == nil {
		return 1.0
	}
	return *c.DeltaEmpty
}

// GetAlpha returns the alpha value or the default.
func (c *MetricConfig) GetAlpha() float64 {
	if c.Alpha == nil {
		return dissimilarity.DefaultAlpha
	}
	return *c.Alpha
}

// GetBeta returns the beta value or the default.
func (c *MetricConfig) GetBeta() float64 {
	if c.Beta == nil {
		return dissimilarity.DefaultBeta
	}
	return *c.Beta
}

// GetGapPenalty returns the gap_penalty value or the default.
func (c *MetricConfig) GetGapPenalty() float64 {
	if c.GapPenalty == nil {
		return dissimilarity.DefaultGapPenalty
	}
	return *c.GapPenalty
}

// Build constructs the configured metric.
func (c *MetricConfig) Build() (dissimilarity.Metric, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	name := c.GetMetric()

	var (
		metric dissimilarity.Metric
		err    error
	)
	if name == MetricPositional {
		metric, err = dissimilarity.NewPositional(c.GetDeltaEmpty())
	} else {
		alphabet, aerr := dissimilarity.NewAlphabet(c.Categories, c.Matrix)
		if aerr != nil {
			return nil, fmt.Errorf("metric %s: %w", name, aerr)
		}
		switch name {
		case MetricCategorical:
			metric, err = dissimilarity.NewCategorical(alphabet, c.GetDeltaEmpty())
		case MetricSequence:
			metric, err = dissimilarity.NewSequence(alphabet, c.GetDeltaEmpty(), c.GetGapPenalty())
		case MetricCombinedCategorical:
			metric, err = dissimilarity.NewCombinedCategorical(alphabet, c.GetDeltaEmpty(), c.GetAlpha(), c.GetBeta())
		default:
			metric, err = dissimilarity.NewCombinedSequence(alphabet, c.GetDeltaEmpty(), c.GetGapPenalty(), c.GetAlpha(), c.GetBeta())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("metric %s: %w", name, err)
	}
	return metric, nil
}
