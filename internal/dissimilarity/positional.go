package dissimilarity

import (
	"math"

	"github.com/banshee-data/disorder/internal/continuum"
)

// Positional scores how far apart two units' boundaries are, relative to
// their combined duration:
//
//	delta_empty * ((|start1-start2| + |end1-end2|) / (d1 + d2))^2
//
// Two zero-width units score 0. Stretching both segments by the same
// factor leaves the score unchanged.
type Positional struct {
	delta float64
}

// NewPositional returns a positional metric with the given delta_empty.
func NewPositional(deltaEmpty float64) (*Positional, error) {
	if err := validateDelta(deltaEmpty); err != nil {
		return nil, err
	}
	return &Positional{delta: deltaEmpty}, nil
}

func (m *Positional) Name() string        { return "positional" }
func (m *Positional) DeltaEmpty() float64 { return m.delta }

// Segments scores two segments directly.
func (m *Positional) Segments(a, b continuum.Segment) float64 {
	return positionalCost(m.delta, a.Start, a.End, b.Start, b.End)
}

func (m *Positional) Prepare(units []continuum.Unit) (*Pool, error) {
	return newPool(units), nil
}

func (m *Positional) Score(pool *Pool, idx *IndexMatrix) ([]float64, error) {
	return scoreTuples(pool, idx, m.delta, m.pair)
}

func (m *Positional) Pair(a, b continuum.Slot) (float64, error) {
	return pairViaBatch(m, a, b)
}

func (m *Positional) pair(p *Pool, i, j int) float64 {
	total := p.durations[i] + p.durations[j]
	if total == 0 {
		return 0
	}
	r := (math.Abs(p.start(i)-p.start(j)) + math.Abs(p.end(i)-p.end(j))) / total
	return m.delta * r * r
}

func positionalCost(delta, s1, e1, s2, e2 float64) float64 {
	total := (e1 - s1) + (e2 - s2)
	if total == 0 {
		return 0
	}
	r := (math.Abs(s1-s2) + math.Abs(e1-e2)) / total
	return delta * r * r
}
