package dissimilarity

import (
	"fmt"
	"math"

	"github.com/banshee-data/disorder/internal/continuum"
)

// Metric scores correspondence tuples of units.
//
// Prepare builds the per-unit features once; Score evaluates every row of
// an index matrix against that pool in one call. Pair is the two-slot
// convenience form and goes through the same path.
type Metric interface {
	// Name identifies the metric in logs and reports.
	Name() string

	// DeltaEmpty is the cost of a real unit against an absent slot.
	DeltaEmpty() float64

	// Prepare resolves the units' positions and annotations. Lookup errors
	// (for example an unknown category) are reported here.
	Prepare(units []continuum.Unit) (*Pool, error)

	// Score returns one disorder per row of idx.
	Score(pool *Pool, idx *IndexMatrix) ([]float64, error)

	// Pair scores two slots, either of which may be absent.
	Pair(a, b continuum.Slot) (float64, error)
}

// pairFunc scores two present pool units.
type pairFunc func(p *Pool, i, j int) float64

// scoreTuples is the shared batch kernel: for each row it averages the
// pairwise cost over every slot pair, padding rows narrower than two with
// absent slots.
func scoreTuples(p *Pool, idx *IndexMatrix, delta float64, pair pairFunc) ([]float64, error) {
	if p == nil || idx == nil {
		return nil, fmt.Errorf("%w: nil pool or index matrix", ErrShape)
	}
	if err := idx.checkBounds(p.Len()); err != nil {
		return nil, err
	}

	rows, cols := idx.Dims()
	width := cols
	if width < 2 {
		width = 2
	}
	npairs := float64(width * (width - 1) / 2)

	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		row := idx.Row(r)
		var sum float64
		for i := 0; i < width; i++ {
			a := slotAt(row, i)
			for j := i + 1; j < width; j++ {
				b := slotAt(row, j)
				switch {
				case a == AbsentIndex && b == AbsentIndex:
				case a == AbsentIndex || b == AbsentIndex:
					sum += delta
				default:
					sum += pair(p, a, b)
				}
			}
		}
		out[r] = sum / npairs
	}
	return out, nil
}

func slotAt(row []int, i int) int {
	if i >= len(row) {
		return AbsentIndex
	}
	return row[i]
}

// pairViaBatch scores two slots by building a two-unit pool and running
// the metric's batch path over a single row.
func pairViaBatch(m Metric, a, b continuum.Slot) (float64, error) {
	var units []continuum.Unit
	row := []int{AbsentIndex, AbsentIndex}
	for k, s := range []continuum.Slot{a, b} {
		if u, ok := s.Unit(); ok {
			row[k] = len(units)
			units = append(units, u)
		}
	}
	pool, err := m.Prepare(units)
	if err != nil {
		return 0, err
	}
	scores, err := m.Score(pool, MustIndexMatrix([][]int{row}))
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

func validateDelta(delta float64) error {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return fmt.Errorf("delta_empty must be a positive finite number, got %g", delta)
	}
	return nil
}

func validateWeight(name string, w float64) error {
	if !(w >= 0) || math.IsInf(w, 0) {
		return fmt.Errorf("%s must be a non-negative finite number, got %g", name, w)
	}
	return nil
}
