package dissimilarity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/disorder/internal/continuum"
)

// AbsentIndex marks an absent slot in an IndexMatrix row.
const AbsentIndex = -1

// Pool holds the per-unit features a metric needs, built once so that many
// tuples referencing the same units can be scored without repeating the
// work. Pools are produced by Metric.Prepare and are read-only afterwards.
type Pool struct {
	units []continuum.Unit

	// bounds is n×2: column 0 holds starts, column 1 ends. Nil for an
	// empty pool.
	bounds    *mat.Dense
	durations []float64

	// codes[i] holds unit i's annotation as alphabet indices: one code for
	// a category, one per symbol for a sequence. Nil unless the pool was
	// encoded against an alphabet.
	codes    [][]int
	alphabet *Alphabet
	kind     continuum.AnnotationKind
}

func newPool(units []continuum.Unit) *Pool {
	n := len(units)
	p := &Pool{units: make([]continuum.Unit, n), durations: make([]float64, n)}
	copy(p.units, units)
	if n == 0 {
		return p
	}

	p.bounds = mat.NewDense(n, 2, nil)
	for i, u := range units {
		seg := u.Segment()
		p.bounds.Set(i, 0, seg.Start)
		p.bounds.Set(i, 1, seg.End)
	}
	starts := mat.Col(nil, 0, p.bounds)
	ends := mat.Col(nil, 1, p.bounds)
	floats.SubTo(p.durations, ends, starts)
	return p
}

// encode resolves every unit's annotation against the alphabet. All units
// must carry the given kind.
func (p *Pool) encode(a *Alphabet, kind continuum.AnnotationKind) error {
	codes := make([][]int, len(p.units))
	for i, u := range p.units {
		if u.Kind() != kind {
			return fmt.Errorf("%w: unit %s is a %s, want %s", ErrAnnotationKind, u, u.Kind(), kind)
		}
		switch kind {
		case continuum.KindCategory:
			c, err := a.Code(u.Category())
			if err != nil {
				return err
			}
			codes[i] = []int{c}
		case continuum.KindSequence:
			row := make([]int, u.Len())
			for j := range row {
				c, err := a.Code(u.Symbol(j))
				if err != nil {
					return err
				}
				row[j] = c
			}
			codes[i] = row
		}
	}
	p.codes = codes
	p.alphabet = a
	p.kind = kind
	return nil
}

// encodedWith reports whether the pool carries codes for the alphabet and
// kind.
func (p *Pool) encodedWith(a *Alphabet, kind continuum.AnnotationKind) bool {
	return p.codes != nil && p.alphabet == a && p.kind == kind
}

// Len returns the number of units in the pool.
func (p *Pool) Len() int { return len(p.units) }

// Unit returns unit i.
func (p *Pool) Unit(i int) continuum.Unit { return p.units[i] }

func (p *Pool) start(i int) float64 { return p.bounds.At(i, 0) }
func (p *Pool) end(i int) float64   { return p.bounds.At(i, 1) }

// IndexMatrix is a rectangular rows×cols table of pool indices. Each row is
// one correspondence tuple; AbsentIndex marks an absent slot.
type IndexMatrix struct {
	rows, cols int
	data       []int
}

// NewIndexMatrix copies rows into an IndexMatrix. Every row must have the
// same length.
func NewIndexMatrix(rows [][]int) (*IndexMatrix, error) {
	m := &IndexMatrix{rows: len(rows)}
	if len(rows) == 0 {
		return m, nil
	}
	m.cols = len(rows[0])
	m.data = make([]int, 0, m.rows*m.cols)
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrShape, i, len(r), m.cols)
		}
		m.data = append(m.data, r...)
	}
	return m, nil
}

// MustIndexMatrix is NewIndexMatrix for fixtures; it panics on error.
func MustIndexMatrix(rows [][]int) *IndexMatrix {
	m, err := NewIndexMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Dims returns the number of tuples and the tuple width.
func (m *IndexMatrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns entry (i, j).
func (m *IndexMatrix) At(i, j int) int { return m.data[i*m.cols+j] }

// Row returns tuple i. The slice aliases the matrix and must not be
// modified.
func (m *IndexMatrix) Row(i int) []int { return m.data[i*m.cols : (i+1)*m.cols] }

func (m *IndexMatrix) checkBounds(n int) error {
	for k, v := range m.data {
		if v == AbsentIndex {
			continue
		}
		if v < 0 || v >= n {
			return fmt.Errorf("%w: entry (%d, %d) = %d outside pool of %d units", ErrShape, k/m.cols, k%m.cols, v, n)
		}
	}
	return nil
}
