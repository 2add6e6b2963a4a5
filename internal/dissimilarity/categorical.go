package dissimilarity

import (
	"fmt"

	"github.com/banshee-data/disorder/internal/continuum"
)

// Categorical scores two category labels as delta_empty times their matrix
// dissimilarity. The absent slot acts as an extra category at distance 1
// from every label, so a label against it costs exactly delta_empty.
type Categorical struct {
	alphabet *Alphabet
	delta    float64
}

// NewCategorical returns a categorical metric over the alphabet.
func NewCategorical(alphabet *Alphabet, deltaEmpty float64) (*Categorical, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("categorical metric needs an alphabet")
	}
	if err := validateDelta(deltaEmpty); err != nil {
		return nil, err
	}
	return &Categorical{alphabet: alphabet, delta: deltaEmpty}, nil
}

func (m *Categorical) Name() string        { return "categorical" }
func (m *Categorical) DeltaEmpty() float64 { return m.delta }
func (m *Categorical) Alphabet() *Alphabet { return m.alphabet }

// Categories scores two labels directly.
func (m *Categorical) Categories(c1, c2 string) (float64, error) {
	d, err := m.alphabet.Dissimilarity(c1, c2)
	if err != nil {
		return 0, err
	}
	return m.delta * d, nil
}

func (m *Categorical) Prepare(units []continuum.Unit) (*Pool, error) {
	p := newPool(units)
	if err := p.encode(m.alphabet, continuum.KindCategory); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Categorical) Score(pool *Pool, idx *IndexMatrix) ([]float64, error) {
	if pool != nil && !pool.encodedWith(m.alphabet, continuum.KindCategory) {
		return nil, ErrPoolMismatch
	}
	return scoreTuples(pool, idx, m.delta, m.pair)
}

func (m *Categorical) Pair(a, b continuum.Slot) (float64, error) {
	return pairViaBatch(m, a, b)
}

func (m *Categorical) pair(p *Pool, i, j int) float64 {
	return m.delta * m.alphabet.at(p.codes[i][0], p.codes[j][0])
}
