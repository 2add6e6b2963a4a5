package alignment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/disorder/internal/continuum"
)

// ErrPartition is matched by every PartitionError.
var ErrPartition = errors.New("unitary alignments do not partition the continuum")

// MalformedGroup describes a unitary alignment whose annotators do not match
// the continuum's annotators one to one.
type MalformedGroup struct {
	Group  int
	Reason string
}

// PartitionError lists every (annotator, unit) pair that breaks the
// partition, grouped by cause.
type PartitionError struct {
	// Extraneous pairs are referenced by a group but not held by the
	// continuum.
	Extraneous []continuum.Pair
	// Missing pairs are held by the continuum but referenced by no group.
	Missing []continuum.Pair
	// Repeated pairs are referenced by more than one group.
	Repeated []continuum.Pair
	// Malformed groups do not list each continuum annotator exactly once.
	Malformed []MalformedGroup
}

func (e *PartitionError) Error() string {
	var parts []string
	if len(e.Extraneous) > 0 {
		parts = append(parts, fmt.Sprintf("%s not in the continuum", joinPairs(e.Extraneous)))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%s not in any unitary alignment", joinPairs(e.Missing)))
	}
	if len(e.Repeated) > 0 {
		parts = append(parts, fmt.Sprintf("%s found more than once in the unitary alignments", joinPairs(e.Repeated)))
	}
	for _, m := range e.Malformed {
		parts = append(parts, fmt.Sprintf("unitary alignment %d: %s", m.Group, m.Reason))
	}
	return ErrPartition.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrPartition) succeed.
func (e *PartitionError) Is(target error) bool { return target == ErrPartition }

func (e *PartitionError) empty() bool {
	return len(e.Extraneous) == 0 && len(e.Missing) == 0 && len(e.Repeated) == 0 && len(e.Malformed) == 0
}

func joinPairs(pairs []continuum.Pair) string {
	s := make([]string, len(pairs))
	for i, p := range pairs {
		s[i] = p.String()
	}
	return strings.Join(s, ", ")
}

type pairKey struct {
	annotator string
	unit      string
}

func keyOf(p continuum.Pair) pairKey {
	return pairKey{annotator: p.Annotator, unit: p.Unit.Key()}
}

// checkPartition verifies that the present members of groups are exactly
// the pairs of view, as multisets. It reports every offender: first the
// set differences (extraneous, missing), then the repeated pairs.
func checkPartition(view continuum.View, groups []*UnitaryAlignment) error {
	perr := &PartitionError{}

	annotators := view.Annotators()
	known := make(map[string]bool, len(annotators))
	for _, a := range annotators {
		known[a] = true
	}

	var referenced []continuum.Pair
	for gi, g := range groups {
		if g == nil {
			perr.Malformed = append(perr.Malformed, MalformedGroup{Group: gi, Reason: "nil unitary alignment"})
			continue
		}
		if reason := tupleDefect(g.tuple, annotators, known); reason != "" {
			perr.Malformed = append(perr.Malformed, MalformedGroup{Group: gi, Reason: reason})
		}
		for _, m := range g.tuple {
			if u, ok := m.Slot.Unit(); ok {
				referenced = append(referenced, continuum.Pair{Annotator: m.Annotator, Unit: u})
			}
		}
	}

	held := continuum.Pairs(view)
	heldCount := make(map[pairKey]int, len(held))
	for _, p := range held {
		heldCount[keyOf(p)]++
	}
	refCount := make(map[pairKey]int, len(referenced))
	for _, p := range referenced {
		refCount[keyOf(p)]++
	}

	// Pass 1: set differences.
	reported := make(map[pairKey]bool)
	for _, p := range referenced {
		k := keyOf(p)
		if heldCount[k] == 0 && !reported[k] {
			perr.Extraneous = append(perr.Extraneous, p)
			reported[k] = true
		}
	}
	for _, p := range held {
		k := keyOf(p)
		if refCount[k] < heldCount[k] && !reported[k] {
			perr.Missing = append(perr.Missing, p)
			reported[k] = true
		}
	}

	// Pass 2: repeated references.
	clear(reported)
	for _, p := range held {
		k := keyOf(p)
		if refCount[k] > heldCount[k] && !reported[k] {
			perr.Repeated = append(perr.Repeated, p)
			reported[k] = true
		}
	}

	if perr.empty() {
		return nil
	}
	return perr
}

// tupleDefect explains why a tuple does not hold exactly one member per
// continuum annotator, or returns "".
func tupleDefect(tuple []Member, annotators []string, known map[string]bool) string {
	seen := make(map[string]int, len(tuple))
	var unknown, dup []string
	for _, m := range tuple {
		seen[m.Annotator]++
		switch {
		case !known[m.Annotator] && seen[m.Annotator] == 1:
			unknown = append(unknown, m.Annotator)
		case known[m.Annotator] && seen[m.Annotator] == 2:
			dup = append(dup, m.Annotator)
		}
	}
	var absent []string
	for _, a := range annotators {
		if seen[a] == 0 {
			absent = append(absent, a)
		}
	}

	var reasons []string
	if len(unknown) > 0 {
		reasons = append(reasons, "unknown annotators "+strings.Join(unknown, ", "))
	}
	if len(dup) > 0 {
		reasons = append(reasons, "annotators listed twice "+strings.Join(dup, ", "))
	}
	if len(absent) > 0 {
		reasons = append(reasons, "no slot for annotators "+strings.Join(absent, ", "))
	}
	return strings.Join(reasons, "; ")
}
