package continuum

import "fmt"

// View is the read-only surface the disorder engine needs from a
// continuum: the annotators and each annotator's units. Iteration order
// must be stable between calls.
type View interface {
	Annotators() []string
	Units(annotator string) []Unit
}

// Pair is one (annotator, unit) membership.
type Pair struct {
	Annotator string
	Unit      Unit
}

func (p Pair) String() string {
	return fmt.Sprintf("%s->%s", p.Annotator, p.Unit)
}

// Continuum maps each annotator to the ordered units they produced.
// Annotators keep their insertion order.
type Continuum struct {
	annotators []string
	units      map[string][]Unit
}

// New returns an empty continuum.
func New() *Continuum {
	return &Continuum{units: make(map[string][]Unit)}
}

// AddAnnotator registers an annotator with no units. Adding an existing
// annotator is a no-op.
func (c *Continuum) AddAnnotator(annotator string) {
	if _, ok := c.units[annotator]; ok {
		return
	}
	c.annotators = append(c.annotators, annotator)
	c.units[annotator] = nil
}

// Add appends a unit to the annotator's list, registering the annotator if
// needed.
func (c *Continuum) Add(annotator string, u Unit) {
	c.AddAnnotator(annotator)
	c.units[annotator] = append(c.units[annotator], u)
}

// Annotators returns the annotators in insertion order.
func (c *Continuum) Annotators() []string {
	out := make([]string, len(c.annotators))
	copy(out, c.annotators)
	return out
}

// Units returns a copy of the annotator's units, or nil for an unknown
// annotator.
func (c *Continuum) Units(annotator string) []Unit {
	us := c.units[annotator]
	if us == nil {
		return nil
	}
	out := make([]Unit, len(us))
	copy(out, us)
	return out
}

// HasAnnotator reports whether the annotator is registered.
func (c *Continuum) HasAnnotator(annotator string) bool {
	_, ok := c.units[annotator]
	return ok
}

// NumAnnotators returns the number of registered annotators.
func (c *Continuum) NumAnnotators() int { return len(c.annotators) }

// NumUnits returns the total number of units across annotators.
func (c *Continuum) NumUnits() int {
	n := 0
	for _, us := range c.units {
		n += len(us)
	}
	return n
}

// Pairs enumerates every (annotator, unit) membership of a view, annotators
// in view order and units in per-annotator order.
func Pairs(v View) []Pair {
	var out []Pair
	for _, a := range v.Annotators() {
		for _, u := range v.Units(a) {
			out = append(out, Pair{Annotator: a, Unit: u})
		}
	}
	return out
}
