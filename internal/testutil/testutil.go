// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the reference continuums and symbol matrices
// used across the continuum, dissimilarity and alignment tests.
package testutil

import (
	"math"
	"testing"
)

// DefaultTolerance is the relative tolerance used by AssertFloatNear when
// comparing disorder values against published reference numbers.
const DefaultTolerance = 1e-3

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertFloatNear checks got against want within a relative tolerance,
// falling back to an absolute one near zero.
func AssertFloatNear(t testing.TB, got, want, tol float64) {
	t.Helper()
	if !FloatNear(got, want, tol) {
		t.Errorf("got %.12g, want %.12g (tol %g)", got, want, tol)
	}
}

// FloatNear reports whether a and b agree within tol, relative to the
// larger magnitude, or absolutely when both are below 1.
func FloatNear(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}
