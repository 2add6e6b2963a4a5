package dissimilarity

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSymbol is matched by every UnknownSymbolError.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrShape reports a ragged index matrix or an index outside the pool.
	ErrShape = errors.New("invalid index shape")
	// ErrAnnotationKind reports a unit whose payload the metric cannot score.
	ErrAnnotationKind = errors.New("unsupported annotation kind")
	// ErrPoolMismatch reports a pool prepared by a different metric.
	ErrPoolMismatch = errors.New("pool not prepared for this metric")
)

// UnknownSymbolError is returned when a category or sequence symbol is not
// part of the configured alphabet.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q: not in alphabet", e.Symbol)
}

// Is makes errors.Is(err, ErrUnknownSymbol) succeed.
func (e *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}
