package testutil

import (
	"testing"
)

func TestAssertHelpersPassingPaths(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertFloatNear(t, 0.35, 0.35, DefaultTolerance)
	AssertFloatNear(t, 22.2224, 22.2222, DefaultTolerance)
}

func TestFloatNear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b float64
		tol  float64
		want bool
	}{
		{"exact", 1.5, 1.5, 0, true},
		{"absolute near zero", 0.0004, 0, 1e-3, true},
		{"absolute miss near zero", 0.01, 0, 1e-3, false},
		{"relative hit", 1000.5, 1000, 1e-3, true},
		{"relative miss", 1002, 1000, 1e-3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloatNear(tt.a, tt.b, tt.tol); got != tt.want {
				t.Errorf("FloatNear(%g, %g, %g) = %v, want %v", tt.a, tt.b, tt.tol, got, tt.want)
			}
		})
	}
}

func TestFixturesAreConsistent(t *testing.T) {
	t.Parallel()

	m := ReferenceMatrix()
	if len(m) != len(ReferenceCategories()) || len(m) != len(ReferenceSymbols()) {
		t.Fatalf("matrix size %d does not match labels", len(m))
	}
	for i := range m {
		for j := range m {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at (%d, %d)", i, j)
			}
		}
	}

	cat := CategoryContinuum()
	if cat.NumUnits() != 9 || cat.NumAnnotators() != 2 {
		t.Errorf("category fixture: %d units, %d annotators", cat.NumUnits(), cat.NumAnnotators())
	}
	seq := SequenceContinuum()
	if seq.NumUnits() != 13 || seq.NumAnnotators() != 3 {
		t.Errorf("sequence fixture: %d units, %d annotators", seq.NumUnits(), seq.NumAnnotators())
	}

	for _, ref := range [][]float64{PositionalReference, CombinedCategoricalReference, CombinedSequenceReference} {
		if len(ref) != 20 {
			t.Errorf("reference table has %d entries, want 20", len(ref))
		}
	}
}
