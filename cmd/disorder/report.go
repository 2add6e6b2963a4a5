package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report is the JSON document written for one scoring run.
type Report struct {
	RunID          string    `json:"run_id"`
	Metric         string    `json:"metric"`
	NumAnnotators  int       `json:"num_annotators"`
	NumAlignments  int       `json:"num_alignments"`
	NumUnits       int       `json:"num_units"`
	Disorder       float64   `json:"disorder"`
	GroupDisorders []float64 `json:"group_disorders"`
	Spread         *Spread   `json:"spread,omitempty"`
}

// Spread summarises the unitary alignment disorders. StdDev is the sample
// standard deviation and is zero for a single alignment.
type Spread struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

func newReport(metric string, numAnnotators, numUnits int, disorder float64, groups []float64) *Report {
	r := &Report{
		RunID:          uuid.New().String(),
		Metric:         metric,
		NumAnnotators:  numAnnotators,
		NumAlignments:  len(groups),
		NumUnits:       numUnits,
		Disorder:       disorder,
		GroupDisorders: groups,
	}
	if r.GroupDisorders == nil {
		r.GroupDisorders = []float64{}
	}
	if len(groups) > 0 {
		r.Spread = &Spread{Min: floats.Min(groups), Max: floats.Max(groups)}
		if len(groups) > 1 {
			r.Spread.StdDev = stat.StdDev(groups, nil)
		}
	}
	return r
}

func (r *Report) write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
