package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/banshee-data/disorder/internal/alignment"
	"github.com/banshee-data/disorder/internal/continuum"
)

// maxInputSize bounds the alignment file the CLI will read.
const maxInputSize = 64 * 1024 * 1024 // 64MB

// Input is the alignment file: every annotator's units, and the unitary
// alignments that partition them.
type Input struct {
	Continuum map[string][]UnitRecord `json:"continuum"`
	Groups    [][]MemberRecord        `json:"groups"`
}

// UnitRecord is one annotated segment. Exactly one of Category and Symbols
// is set; an empty symbols list is a valid empty sequence.
type UnitRecord struct {
	Start    float64   `json:"start"`
	End      float64   `json:"end"`
	Category *string   `json:"category,omitempty"`
	Symbols  *[]string `json:"symbols,omitempty"`
}

// MemberRecord places an annotator's unit, by index into that annotator's
// list, in a unitary alignment. A null or missing index is an absent slot.
type MemberRecord struct {
	Annotator string `json:"annotator"`
	Unit      *int   `json:"unit"`
}

// readInput decodes an Input, rejecting unknown fields and trailing data.
func readInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("input too large (max %d bytes)", maxInputSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var in Input
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to parse input JSON: trailing data after document")
	}
	return &in, nil
}

// buildContinuum loads the units. Annotators are registered in name order
// so reports are stable across runs.
func (in *Input) buildContinuum() (*continuum.Continuum, error) {
	names := make([]string, 0, len(in.Continuum))
	for name := range in.Continuum {
		names = append(names, name)
	}
	sort.Strings(names)

	c := continuum.New()
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("continuum: empty annotator name")
		}
		c.AddAnnotator(name)
		for i, rec := range in.Continuum[name] {
			u, err := rec.unit()
			if err != nil {
				return nil, fmt.Errorf("continuum: %s[%d]: %w", name, i, err)
			}
			c.Add(name, u)
		}
	}
	return c, nil
}

func (r UnitRecord) unit() (continuum.Unit, error) {
	switch {
	case r.Category != nil && r.Symbols != nil:
		return continuum.Unit{}, fmt.Errorf("unit has both category and symbols")
	case r.Category != nil:
		return continuum.NewCategoryUnit(r.Start, r.End, *r.Category)
	case r.Symbols != nil:
		return continuum.NewSequenceUnit(r.Start, r.End, *r.Symbols...)
	default:
		return continuum.Unit{}, fmt.Errorf("unit needs a category or symbols")
	}
}

// buildGroups resolves unit indices against c. Indices are resolved here;
// whether the groups partition c is alignment.New's check.
func (in *Input) buildGroups(c *continuum.Continuum) ([]*alignment.UnitaryAlignment, error) {
	groups := make([]*alignment.UnitaryAlignment, len(in.Groups))
	for gi, recs := range in.Groups {
		members := make([]alignment.Member, len(recs))
		for mi, rec := range recs {
			if rec.Unit == nil {
				members[mi] = alignment.AbsentMember(rec.Annotator)
				continue
			}
			units := c.Units(rec.Annotator)
			if units == nil && !c.HasAnnotator(rec.Annotator) {
				return nil, fmt.Errorf("group %d: unknown annotator %q", gi, rec.Annotator)
			}
			idx := *rec.Unit
			if idx < 0 || idx >= len(units) {
				return nil, fmt.Errorf("group %d: %s has no unit %d (%d units)", gi, rec.Annotator, idx, len(units))
			}
			members[mi] = alignment.PresentMember(rec.Annotator, units[idx])
		}
		groups[gi] = alignment.NewUnitaryAlignment(members...)
	}
	return groups, nil
}
