package alignment

import (
	"errors"
	"fmt"
)

// ErrUnscored is returned when disorder is read before ComputeDisorder has
// succeeded on the current structure.
var ErrUnscored = errors.New("disorder has not been computed")

// ErrDuplicateAnnotator is returned when a unitary alignment lists the same
// annotator twice.
var ErrDuplicateAnnotator = errors.New("annotator appears more than once in tuple")

// Score is the disorder cache: either Unscored or Scored(value). The zero
// Score is Unscored.
type Score struct {
	value  float64
	scored bool
}

// Unscored is the empty cache state.
var Unscored = Score{}

// Scored returns a cache holding v.
func Scored(v float64) Score { return Score{value: v, scored: true} }

// Get returns the value and whether the score is set.
func (s Score) Get() (float64, bool) { return s.value, s.scored }

// IsScored reports whether the score is set.
func (s Score) IsScored() bool { return s.scored }

func (s Score) String() string {
	if !s.scored {
		return "unscored"
	}
	return fmt.Sprintf("scored(%g)", s.value)
}
