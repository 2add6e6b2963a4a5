package testutil

import "github.com/banshee-data/disorder/internal/continuum"

// ReferenceMatrix is the 4×4 symmetric dissimilarity matrix shared by the
// category and symbol fixtures.
func ReferenceMatrix() [][]float64 {
	return [][]float64{
		{0, 0.5, 0.3, 0.7},
		{0.5, 0, 0.6, 0.4},
		{0.3, 0.6, 0, 0.7},
		{0.7, 0.4, 0.7, 0},
	}
}

// ReferenceCategories labels the rows of ReferenceMatrix for category
// fixtures.
func ReferenceCategories() []string {
	return []string{"Carol", "Bob", "Alice", "Jeremy"}
}

// ReferenceSymbols labels the rows of ReferenceMatrix for sequence
// fixtures.
func ReferenceSymbols() []string {
	return []string{"a", "b", "c", "d"}
}

// CategoryContinuum is the two-annotator diarization fixture. Units are
// added in (start, end) order per annotator.
func CategoryContinuum() *continuum.Continuum {
	c := continuum.New()
	c.Add("liza", continuum.MustCategoryUnit(1, 5, "Carol"))
	c.Add("liza", continuum.MustCategoryUnit(6, 8, "Bob"))
	c.Add("liza", continuum.MustCategoryUnit(7, 20, "Alice"))
	c.Add("liza", continuum.MustCategoryUnit(12, 18, "Carol"))
	c.Add("pierrot", continuum.MustCategoryUnit(2, 6, "Carol"))
	c.Add("pierrot", continuum.MustCategoryUnit(7, 8, "Bob"))
	c.Add("pierrot", continuum.MustCategoryUnit(7, 19, "Jeremy"))
	c.Add("pierrot", continuum.MustCategoryUnit(8, 10, "Alice"))
	c.Add("pierrot", continuum.MustCategoryUnit(12, 18, "Alice"))
	return c
}

// SequenceContinuum is the three-annotator symbol-sequence fixture. Units
// are added in (start, end) order per annotator.
func SequenceContinuum() *continuum.Continuum {
	c := continuum.New()
	c.Add("liza", continuum.MustSequenceUnit(1, 5, "a", "b", "b"))
	c.Add("liza", continuum.MustSequenceUnit(6, 8, "a", "b"))
	c.Add("liza", continuum.MustSequenceUnit(7, 20, "b", "b", "c", "c", "a"))
	c.Add("liza", continuum.MustSequenceUnit(12, 18, "a", "c", "c", "c"))
	c.Add("pierrot", continuum.MustSequenceUnit(2, 6, "a", "b", "b"))
	c.Add("pierrot", continuum.MustSequenceUnit(7, 8, "a"))
	c.Add("pierrot", continuum.MustSequenceUnit(7, 19, "b", "b", "a", "c", "a"))
	c.Add("pierrot", continuum.MustSequenceUnit(8, 10, "a", "a"))
	c.Add("pierrot", continuum.MustSequenceUnit(12, 18, "b", "c", "b", "c"))
	c.Add("hadrien", continuum.MustSequenceUnit(1, 6, "a", "b", "b"))
	c.Add("hadrien", continuum.MustSequenceUnit(7, 19, "a", "c", "b", "c"))
	c.Add("hadrien", continuum.MustSequenceUnit(8, 10, "a", "b"))
	c.Add("hadrien", continuum.MustSequenceUnit(19, 20, "a", "c"))
	return c
}

// PositionalReference is liza×pierrot positional dissimilarity with
// delta_empty 0.5, liza-major.
var PositionalReference = []float64{
	0.03125, 1.62, 0.78125, 2.0, 2.88, 0.5, 0.05555555555555555,
	0.36734693877551017, 0.5, 2.0, 0.6245674740484429, 0.36734693877551017,
	0.0008, 0.26888888888888884, 0.06786703601108032, 2.4200000000000004,
	2.2959183673469385, 0.05555555555555555, 1.125, 0.0,
}

// CombinedCategoricalReference is liza×pierrot combined categorical
// dissimilarity with delta_empty 0.5, liza-major.
var CombinedCategoricalReference = []float64{
	0.03125, 1.87, 1.13125, 2.15, 3.03, 0.75, 0.05555555555555555,
	0.5673469387755101, 0.8, 2.3, 0.774567474048443, 0.6673469387755102,
	0.3508, 0.26888888888888884, 0.06786703601108032, 2.4200000000000004,
	2.5459183673469385, 0.40555555555555556, 1.275, 0.15,
}

// CombinedSequenceReference is liza×pierrot combined sequence
// dissimilarity with delta_empty 0.5, liza-major.
var CombinedSequenceReference = []float64{
	0.03125, 1.9533333333333334, 1.08125, 2.25, 3.1174999999999997,
	0.6666666666666666, 0.3055555555555556, 0.7173469387755101, 0.625,
	2.2875, 0.9245674740484429, 0.7673469387755102, 0.030799999999999998,
	0.5988888888888888, 0.2578670360110803, 2.6950000000000003,
	2.6709183673469385, 0.26555555555555554, 1.4125, 0.1375,
}
