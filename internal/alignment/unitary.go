package alignment

import (
	"fmt"
	"strings"

	"github.com/banshee-data/disorder/internal/continuum"
	"github.com/banshee-data/disorder/internal/dissimilarity"
)

// Member is one position of a unitary alignment: an annotator and the unit
// they contributed, or Absent.
type Member struct {
	Annotator string
	Slot      continuum.Slot
}

// PresentMember is shorthand for Member{annotator, continuum.Present(u)}.
func PresentMember(annotator string, u continuum.Unit) Member {
	return Member{Annotator: annotator, Slot: continuum.Present(u)}
}

// AbsentMember is shorthand for Member{annotator, continuum.Absent()}.
func AbsentMember(annotator string) Member {
	return Member{Annotator: annotator, Slot: continuum.Absent()}
}

func (m Member) String() string {
	return fmt.Sprintf("%s->%s", m.Annotator, m.Slot)
}

// UnitaryAlignment is one hypothesised correspondence: a tuple holding one
// slot per annotator. It is not checked against any continuum; Alignment
// does that.
type UnitaryAlignment struct {
	tuple    []Member
	disorder Score
}

// NewUnitaryAlignment returns an unscored unitary alignment over members.
func NewUnitaryAlignment(members ...Member) *UnitaryAlignment {
	return &UnitaryAlignment{tuple: cloneMembers(members)}
}

// Tuple returns a copy of the members.
func (u *UnitaryAlignment) Tuple() []Member {
	return cloneMembers(u.tuple)
}

// SetTuple replaces the members and drops any cached disorder.
func (u *UnitaryAlignment) SetTuple(members ...Member) {
	u.tuple = cloneMembers(members)
	u.disorder = Unscored
}

// Len returns the tuple width.
func (u *UnitaryAlignment) Len() int { return len(u.tuple) }

// Scored reports whether the cached disorder is set.
func (u *UnitaryAlignment) Scored() bool { return u.disorder.IsScored() }

// Disorder returns the cached disorder, or ErrUnscored.
func (u *UnitaryAlignment) Disorder() (float64, error) {
	v, ok := u.disorder.Get()
	if !ok {
		return 0, fmt.Errorf("unitary alignment %s: %w; call ComputeDisorder first", u, ErrUnscored)
	}
	return v, nil
}

// ComputeDisorder scores the tuple with metric and caches the result.
//
// The tuple's present units are loaded into a synthetic continuum, the
// metric prepares a pool from it, and the tuple is scored as a single row
// of the metric's batch path, so two-annotator and n-annotator tuples go
// through the same code.
func (u *UnitaryAlignment) ComputeDisorder(metric dissimilarity.Metric) (float64, error) {
	synthetic := continuum.New()
	row := make([]int, len(u.tuple))
	next := 0
	for i, m := range u.tuple {
		if synthetic.HasAnnotator(m.Annotator) {
			return 0, fmt.Errorf("unitary alignment %s: %w: %q", u, ErrDuplicateAnnotator, m.Annotator)
		}
		synthetic.AddAnnotator(m.Annotator)
		unit, ok := m.Slot.Unit()
		if !ok {
			row[i] = dissimilarity.AbsentIndex
			continue
		}
		synthetic.Add(m.Annotator, unit)
		row[i] = next
		next++
	}

	// One unit per annotator, annotators in tuple order: the synthetic
	// pairs line up with the row indices.
	pairs := continuum.Pairs(synthetic)
	units := make([]continuum.Unit, len(pairs))
	for i, p := range pairs {
		units[i] = p.Unit
	}

	pool, err := metric.Prepare(units)
	if err != nil {
		return 0, fmt.Errorf("prepare %s: %w", metric.Name(), err)
	}
	idx, err := dissimilarity.NewIndexMatrix([][]int{row})
	if err != nil {
		return 0, err
	}
	scores, err := metric.Score(pool, idx)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", metric.Name(), err)
	}
	u.disorder = Scored(scores[0])
	return scores[0], nil
}

func (u *UnitaryAlignment) String() string {
	parts := make([]string, len(u.tuple))
	for i, m := range u.tuple {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func cloneMembers(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)
	return out
}
