package alignment

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/disorder/internal/continuum"
	"github.com/banshee-data/disorder/internal/dissimilarity"
)

// Alignment is a set of unitary alignments that partitions every
// (annotator, unit) pair of a continuum. Its disorder is the mean of its
// groups' disorders.
//
// Alignments are owned by one scoring pass and are not safe for concurrent
// mutation.
type Alignment struct {
	continuum continuum.View
	groups    []*UnitaryAlignment
	disorder  Score
}

// New validates that groups partition view and returns an unscored
// Alignment. A partition violation is returned as *PartitionError.
func New(view continuum.View, groups []*UnitaryAlignment) (*Alignment, error) {
	if view == nil {
		return nil, fmt.Errorf("alignment needs a continuum")
	}
	if err := checkPartition(view, groups); err != nil {
		return nil, err
	}
	return &Alignment{continuum: view, groups: cloneGroups(groups)}, nil
}

// Validate reruns the partition check. Callers that change group tuples in
// place with UnitaryAlignment.SetTuple use it to confirm the partition
// still holds.
func (a *Alignment) Validate() error {
	return checkPartition(a.continuum, a.groups)
}

// SetGroups replaces the groups after validating them. On success the
// alignment is unscored; on failure it is left unchanged.
func (a *Alignment) SetGroups(groups []*UnitaryAlignment) error {
	if err := checkPartition(a.continuum, groups); err != nil {
		return err
	}
	a.groups = cloneGroups(groups)
	a.disorder = Unscored
	return nil
}

// Continuum returns the view the alignment partitions.
func (a *Alignment) Continuum() continuum.View { return a.continuum }

// Groups returns the unitary alignments. The slice is a copy; the
// alignments themselves are shared.
func (a *Alignment) Groups() []*UnitaryAlignment { return cloneGroups(a.groups) }

// NumAlignments returns the number of unitary alignments.
func (a *Alignment) NumAlignments() int { return len(a.groups) }

// Scored reports whether Disorder would succeed.
func (a *Alignment) Scored() bool {
	if !a.disorder.IsScored() {
		return false
	}
	for _, g := range a.groups {
		if !g.Scored() {
			return false
		}
	}
	return true
}

// Disorder returns the mean of the groups' cached disorders. It fails with
// ErrUnscored if ComputeDisorder has not run since the groups were last
// replaced, or if any group has been reset since.
func (a *Alignment) Disorder() (float64, error) {
	if !a.disorder.IsScored() {
		return 0, fmt.Errorf("alignment of %d unitary alignments: %w; call ComputeDisorder first", len(a.groups), ErrUnscored)
	}
	values, err := a.GroupDisorders()
	if err != nil {
		return 0, err
	}
	return mean(values), nil
}

// GroupDisorders returns each group's cached disorder in group order.
func (a *Alignment) GroupDisorders() ([]float64, error) {
	values := make([]float64, len(a.groups))
	for i, g := range a.groups {
		v, err := g.Disorder()
		if err != nil {
			return nil, fmt.Errorf("unitary alignment %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// ComputeDisorder scores every group that has no cached disorder with
// metric, keeps the cache of the others, and returns the mean.
func (a *Alignment) ComputeDisorder(metric dissimilarity.Metric) (float64, error) {
	values := make([]float64, len(a.groups))
	for i, g := range a.groups {
		if v, ok := g.disorder.Get(); ok {
			values[i] = v
			continue
		}
		v, err := g.ComputeDisorder(metric)
		if err != nil {
			return 0, fmt.Errorf("unitary alignment %d: %w", i, err)
		}
		values[i] = v
	}
	m := mean(values)
	a.disorder = Scored(m)
	return m, nil
}

// mean is the arithmetic mean; an alignment of an empty continuum has no
// groups and no disorder.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func cloneGroups(groups []*UnitaryAlignment) []*UnitaryAlignment {
	out := make([]*UnitaryAlignment, len(groups))
	copy(out, groups)
	return out
}
