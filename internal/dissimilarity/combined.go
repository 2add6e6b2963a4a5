package dissimilarity

import (
	"github.com/banshee-data/disorder/internal/continuum"
)

// Default weights of the combined metrics.
const (
	DefaultAlpha = 1.0
	DefaultBeta  = 1.0
)

// annotationMetric is the annotation half of a combined metric.
type annotationMetric interface {
	Metric
	Alphabet() *Alphabet
	kind() continuum.AnnotationKind
	pairScorer() pairFunc
}

func (m *Categorical) kind() continuum.AnnotationKind { return continuum.KindCategory }
func (m *Categorical) pairScorer() pairFunc           { return m.pair }

func (m *Sequence) kind() continuum.AnnotationKind { return continuum.KindSequence }

// pairScorer returns a closure with its own edit-distance buffers; take a
// fresh one per batch.
func (m *Sequence) pairScorer() pairFunc {
	var ed editDistance
	return func(p *Pool, i, j int) float64 {
		return m.delta * ed.normalised(m.alphabet, m.gap, p.codes[i], p.codes[j])
	}
}

// Combined weighs a positional and an annotation dissimilarity:
//
//	alpha * positional + beta * annotation
//
// A unit against an absent slot costs delta_empty, not a weighted sum of
// the two components' empty costs. Both components share the metric's
// delta_empty.
type Combined struct {
	name       string
	alpha      float64
	beta       float64
	delta      float64
	positional *Positional
	annotation annotationMetric
}

// NewCombinedCategorical combines positional and categorical dissimilarity.
func NewCombinedCategorical(alphabet *Alphabet, deltaEmpty, alpha, beta float64) (*Combined, error) {
	cat, err := NewCategorical(alphabet, deltaEmpty)
	if err != nil {
		return nil, err
	}
	return newCombined("combined_categorical", cat, deltaEmpty, alpha, beta)
}

// NewCombinedSequence combines positional and sequence dissimilarity.
func NewCombinedSequence(alphabet *Alphabet, deltaEmpty, gapPenalty, alpha, beta float64) (*Combined, error) {
	seq, err := NewSequence(alphabet, deltaEmpty, gapPenalty)
	if err != nil {
		return nil, err
	}
	return newCombined("combined_sequence", seq, deltaEmpty, alpha, beta)
}

func newCombined(name string, annotation annotationMetric, deltaEmpty, alpha, beta float64) (*Combined, error) {
	if err := validateWeight("alpha", alpha); err != nil {
		return nil, err
	}
	if err := validateWeight("beta", beta); err != nil {
		return nil, err
	}
	pos, err := NewPositional(deltaEmpty)
	if err != nil {
		return nil, err
	}
	return &Combined{
		name:       name,
		alpha:      alpha,
		beta:       beta,
		delta:      deltaEmpty,
		positional: pos,
		annotation: annotation,
	}, nil
}

func (m *Combined) Name() string        { return m.name }
func (m *Combined) DeltaEmpty() float64 { return m.delta }
func (m *Combined) Alpha() float64      { return m.alpha }
func (m *Combined) Beta() float64       { return m.beta }

func (m *Combined) Prepare(units []continuum.Unit) (*Pool, error) {
	return m.annotation.Prepare(units)
}

func (m *Combined) Score(pool *Pool, idx *IndexMatrix) ([]float64, error) {
	if pool != nil && !pool.encodedWith(m.annotation.Alphabet(), m.annotation.kind()) {
		return nil, ErrPoolMismatch
	}
	annotation := m.annotation.pairScorer()
	return scoreTuples(pool, idx, m.delta, func(p *Pool, i, j int) float64 {
		return m.alpha*m.positional.pair(p, i, j) + m.beta*annotation(p, i, j)
	})
}

func (m *Combined) Pair(a, b continuum.Slot) (float64, error) {
	return pairViaBatch(m, a, b)
}
