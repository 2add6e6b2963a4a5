package continuum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment is a closed time interval [Start, End]. Zero-width segments are
// allowed and represent instantaneous units.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewSegment returns the segment [start, end]. It fails when end < start
// or either bound is not finite.
func NewSegment(start, end float64) (Segment, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return Segment{}, fmt.Errorf("segment bounds must be finite, got [%g, %g]", start, end)
	}
	if end < start {
		return Segment{}, fmt.Errorf("segment end %g before start %g", end, start)
	}
	return Segment{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("[%g, %g]", s.Start, s.End)
}

// AnnotationKind tells which payload a Unit carries.
type AnnotationKind int

const (
	KindCategory AnnotationKind = iota
	KindSequence
)

func (k AnnotationKind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Unit is one annotated interval. Units are values: the symbol slice of a
// sequence unit is copied on construction and on read, so a Unit cannot be
// changed after it is built.
type Unit struct {
	segment  Segment
	kind     AnnotationKind
	category string
	symbols  []string
}

// NewCategoryUnit builds a unit labelled with a single category.
func NewCategoryUnit(start, end float64, category string) (Unit, error) {
	seg, err := NewSegment(start, end)
	if err != nil {
		return Unit{}, err
	}
	return Unit{segment: seg, kind: KindCategory, category: category}, nil
}

// NewSequenceUnit builds a unit carrying an ordered, possibly empty, symbol
// sequence.
func NewSequenceUnit(start, end float64, symbols ...string) (Unit, error) {
	seg, err := NewSegment(start, end)
	if err != nil {
		return Unit{}, err
	}
	cp := make([]string, len(symbols))
	copy(cp, symbols)
	return Unit{segment: seg, kind: KindSequence, symbols: cp}, nil
}

// MustCategoryUnit is NewCategoryUnit for fixtures; it panics on error.
func MustCategoryUnit(start, end float64, category string) Unit {
	u, err := NewCategoryUnit(start, end, category)
	if err != nil {
		panic(err)
	}
	return u
}

// MustSequenceUnit is NewSequenceUnit for fixtures; it panics on error.
func MustSequenceUnit(start, end float64, symbols ...string) Unit {
	u, err := NewSequenceUnit(start, end, symbols...)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Unit) Segment() Segment     { return u.segment }
func (u Unit) Kind() AnnotationKind { return u.kind }
func (u Unit) Category() string     { return u.category }
func (u Unit) Len() int             { return len(u.symbols) }
func (u Unit) Symbol(i int) string  { return u.symbols[i] }

// Symbols returns a copy of the unit's symbol sequence.
func (u Unit) Symbols() []string {
	cp := make([]string, len(u.symbols))
	copy(cp, u.symbols)
	return cp
}

// Equal reports whether both units have the same segment and annotation.
func (u Unit) Equal(o Unit) bool {
	if u.segment != o.segment || u.kind != o.kind {
		return false
	}
	if u.kind == KindCategory {
		return u.category == o.category
	}
	if len(u.symbols) != len(o.symbols) {
		return false
	}
	for i := range u.symbols {
		if u.symbols[i] != o.symbols[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string for the unit. Two units have the same key
// iff they are Equal.
func (u Unit) Key() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(u.segment.Start, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(u.segment.End, 'g', -1, 64))
	if u.kind == KindCategory {
		b.WriteString("|c|")
		b.WriteString(strconv.Quote(u.category))
		return b.String()
	}
	b.WriteString("|s|")
	for i, s := range u.symbols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}

func (u Unit) String() string {
	if u.kind == KindCategory {
		return fmt.Sprintf("%s %s", u.segment, u.category)
	}
	return fmt.Sprintf("%s (%s)", u.segment, strings.Join(u.symbols, " "))
}

// Slot is one position of a correspondence tuple: either a real unit or an
// explicit absence. The zero Slot is Absent.
type Slot struct {
	unit    Unit
	present bool
}

// Present wraps a real unit.
func Present(u Unit) Slot { return Slot{unit: u, present: true} }

// Absent is the placeholder for an annotator that contributed nothing.
func Absent() Slot { return Slot{} }

// Unit returns the wrapped unit and whether the slot is present.
func (s Slot) Unit() (Unit, bool) { return s.unit, s.present }

// IsAbsent reports whether the slot holds no unit.
func (s Slot) IsAbsent() bool { return !s.present }

// Equal compares slots. Absent only equals Absent.
func (s Slot) Equal(o Slot) bool {
	if s.present != o.present {
		return false
	}
	return !s.present || s.unit.Equal(o.unit)
}

func (s Slot) String() string {
	if !s.present {
		return "<absent>"
	}
	return s.unit.String()
}
