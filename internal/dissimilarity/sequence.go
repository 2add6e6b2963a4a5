package dissimilarity

import (
	"fmt"

	"github.com/banshee-data/disorder/internal/continuum"
)

// DefaultGapPenalty is the insertion/deletion cost used when none is
// configured.
const DefaultGapPenalty = 1.0

// Sequence scores two symbol sequences by their weighted edit distance:
// substituting a for b costs matrix[a][b], inserting or deleting a symbol
// costs the gap penalty. The minimum cost is normalised by the longer
// sequence's length and scaled by delta_empty. Two empty sequences score 0.
type Sequence struct {
	alphabet *Alphabet
	delta    float64
	gap      float64
}

// NewSequence returns a sequence metric over the alphabet.
func NewSequence(alphabet *Alphabet, deltaEmpty, gapPenalty float64) (*Sequence, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("sequence metric needs an alphabet")
	}
	if err := validateDelta(deltaEmpty); err != nil {
		return nil, err
	}
	if !(gapPenalty > 0) {
		return nil, fmt.Errorf("gap_penalty must be positive, got %g", gapPenalty)
	}
	return &Sequence{alphabet: alphabet, delta: deltaEmpty, gap: gapPenalty}, nil
}

func (m *Sequence) Name() string        { return "sequence" }
func (m *Sequence) DeltaEmpty() float64 { return m.delta }
func (m *Sequence) GapPenalty() float64 { return m.gap }
func (m *Sequence) Alphabet() *Alphabet { return m.alphabet }

// Sequences scores two symbol sequences directly.
func (m *Sequence) Sequences(s1, s2 []string) (float64, error) {
	c1, err := m.codes(s1)
	if err != nil {
		return 0, err
	}
	c2, err := m.codes(s2)
	if err != nil {
		return 0, err
	}
	var ed editDistance
	return m.delta * ed.normalised(m.alphabet, m.gap, c1, c2), nil
}

func (m *Sequence) codes(symbols []string) ([]int, error) {
	out := make([]int, len(symbols))
	for i, s := range symbols {
		c, err := m.alphabet.Code(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (m *Sequence) Prepare(units []continuum.Unit) (*Pool, error) {
	p := newPool(units)
	if err := p.encode(m.alphabet, continuum.KindSequence); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Sequence) Score(pool *Pool, idx *IndexMatrix) ([]float64, error) {
	if pool != nil && !pool.encodedWith(m.alphabet, continuum.KindSequence) {
		return nil, ErrPoolMismatch
	}
	return scoreTuples(pool, idx, m.delta, m.pairScorer())
}

func (m *Sequence) Pair(a, b continuum.Slot) (float64, error) {
	return pairViaBatch(m, a, b)
}

// editDistance keeps the two dynamic-programming rows between calls so a
// batch reuses one allocation.
type editDistance struct {
	prev, cur []float64
}

// normalised returns the minimum weighted edit cost between x and y divided
// by max(len(x), len(y)).
func (ed *editDistance) normalised(a *Alphabet, gap float64, x, y []int) float64 {
	longest := max(len(x), len(y))
	if longest == 0 {
		return 0
	}
	return ed.cost(a, gap, x, y) / float64(longest)
}

func (ed *editDistance) cost(a *Alphabet, gap float64, x, y []int) float64 {
	n := len(y) + 1
	if cap(ed.prev) < n {
		ed.prev = make([]float64, n)
		ed.cur = make([]float64, n)
	}
	prev, cur := ed.prev[:n], ed.cur[:n]

	for j := range prev {
		prev[j] = float64(j) * gap
	}
	for i := 1; i <= len(x); i++ {
		cur[0] = float64(i) * gap
		for j := 1; j < n; j++ {
			best := prev[j-1] + a.at(x[i-1], y[j-1])
			if del := prev[j] + gap; del < best {
				best = del
			}
			if ins := cur[j-1] + gap; ins < best {
				best = ins
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[n-1]
}
