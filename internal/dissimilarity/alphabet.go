package dissimilarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// symmetryTol is the largest |m[i][j] - m[j][i]| accepted as symmetric.
const symmetryTol = 1e-12

// Alphabet is a fixed set of symbols with a symmetric dissimilarity matrix
// between them. It is shared by the categorical and sequence metrics.
type Alphabet struct {
	symbols []string
	index   map[string]int
	matrix  *mat.SymDense
}

// NewAlphabet validates the symbols and matrix and builds an Alphabet.
// A nil matrix means 0 on the diagonal and 1 everywhere else. Values are
// not required to be within [0, 1] but must be non-negative.
func NewAlphabet(symbols []string, matrix [][]float64) (*Alphabet, error) {
	n := len(symbols)
	if n == 0 {
		return nil, fmt.Errorf("alphabet must contain at least one symbol")
	}
	index := make(map[string]int, n)
	for i, s := range symbols {
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("duplicate symbol %q in alphabet", s)
		}
		index[s] = i
	}

	data := make([]float64, n*n)
	if matrix == nil {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					data[i*n+j] = 1
				}
			}
		}
	} else {
		if len(matrix) != n {
			return nil, fmt.Errorf("matrix has %d rows, alphabet has %d symbols", len(matrix), n)
		}
		for i, row := range matrix {
			if len(row) != n {
				return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
			}
			copy(data[i*n:(i+1)*n], row)
		}
	}

	dense := mat.NewDense(n, n, data)
	if !mat.EqualApprox(dense, dense.T(), symmetryTol) {
		return nil, fmt.Errorf("dissimilarity matrix is not symmetric")
	}
	for i := 0; i < n; i++ {
		if dense.At(i, i) != 0 {
			return nil, fmt.Errorf("dissimilarity matrix diagonal must be zero, got %g for %q", dense.At(i, i), symbols[i])
		}
		for j := 0; j < n; j++ {
			v := dense.At(i, j)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("dissimilarity between %q and %q must be a finite non-negative number, got %g", symbols[i], symbols[j], v)
			}
		}
	}

	// NewSymDense reads the upper triangle, which now equals the lower one.
	sym := mat.NewSymDense(n, data)
	cp := make([]string, n)
	copy(cp, symbols)
	return &Alphabet{symbols: cp, index: index, matrix: sym}, nil
}

// MustAlphabet is NewAlphabet for fixtures; it panics on error.
func MustAlphabet(symbols []string, matrix [][]float64) *Alphabet {
	a, err := NewAlphabet(symbols, matrix)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbols returns a copy of the symbols in matrix order.
func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Code returns the matrix index of symbol.
func (a *Alphabet) Code(symbol string) (int, error) {
	i, ok := a.index[symbol]
	if !ok {
		return 0, &UnknownSymbolError{Symbol: symbol}
	}
	return i, nil
}

// Dissimilarity returns the matrix value between two symbols.
func (a *Alphabet) Dissimilarity(s1, s2 string) (float64, error) {
	i, err := a.Code(s1)
	if err != nil {
		return 0, err
	}
	j, err := a.Code(s2)
	if err != nil {
		return 0, err
	}
	return a.matrix.At(i, j), nil
}

func (a *Alphabet) at(i, j int) float64 {
	return a.matrix.At(i, j)
}
