package continuum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSegment(t *testing.T) {
	t.Parallel()

	seg, err := NewSegment(4, 14)
	require.NoError(t, err)
	assert.Equal(t, 10.0, seg.Duration())

	zero, err := NewSegment(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Duration())

	_, err = NewSegment(5, 1)
	assert.Error(t, err)

	_, err = NewSegment(math.NaN(), 1)
	assert.Error(t, err)
	_, err = NewSegment(0, math.Inf(1))
	assert.Error(t, err)
}

func TestUnitEquality(t *testing.T) {
	t.Parallel()

	a := MustCategoryUnit(1, 5, "Carol")
	b := MustCategoryUnit(1, 5, "Carol")
	c := MustCategoryUnit(1, 5, "Bob")
	d := MustCategoryUnit(1, 6, "Carol")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Key(), c.Key())
	assert.False(t, a.Equal(d))

	s1 := MustSequenceUnit(1, 5, "a", "b")
	s2 := MustSequenceUnit(1, 5, "a", "b")
	s3 := MustSequenceUnit(1, 5, "ab")
	assert.True(t, s1.Equal(s2))
	assert.False(t, s1.Equal(s3))
	assert.NotEqual(t, s1.Key(), s3.Key())
	assert.False(t, s1.Equal(a))
}

func TestSequenceUnitIsImmutable(t *testing.T) {
	t.Parallel()

	symbols := []string{"a", "b", "c"}
	u := MustSequenceUnit(0, 1, symbols...)
	symbols[0] = "z"
	assert.Equal(t, "a", u.Symbol(0))

	got := u.Symbols()
	got[1] = "z"
	assert.Equal(t, "b", u.Symbol(1))
	assert.Equal(t, 3, u.Len())
}

func TestSlotVariant(t *testing.T) {
	t.Parallel()

	zeroWidth := MustCategoryUnit(0, 0, "")
	present := Present(zeroWidth)
	absent := Absent()

	assert.False(t, present.IsAbsent())
	assert.True(t, absent.IsAbsent())
	assert.False(t, present.Equal(absent), "degenerate unit must not collide with absence")
	assert.True(t, absent.Equal(Slot{}))

	u, ok := present.Unit()
	require.True(t, ok)
	assert.True(t, u.Equal(zeroWidth))

	_, ok = absent.Unit()
	assert.False(t, ok)
}

func TestContinuum(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add("liza", MustCategoryUnit(1, 5, "Carol"))
	c.Add("pierrot", MustCategoryUnit(2, 6, "Carol"))
	c.Add("liza", MustCategoryUnit(6, 8, "Bob"))
	c.AddAnnotator("hadrien")
	c.AddAnnotator("liza")

	assert.Equal(t, []string{"liza", "pierrot", "hadrien"}, c.Annotators())
	assert.Equal(t, 3, c.NumAnnotators())
	assert.Equal(t, 3, c.NumUnits())
	assert.Len(t, c.Units("liza"), 2)
	assert.Empty(t, c.Units("hadrien"))
	assert.Nil(t, c.Units("nobody"))

	pairs := Pairs(c)
	require.Len(t, pairs, 3)
	assert.Equal(t, "liza", pairs[0].Annotator)
	assert.Equal(t, "liza", pairs[1].Annotator)
	assert.Equal(t, "pierrot", pairs[2].Annotator)
	assert.Equal(t, "liza->[1, 5] Carol", pairs[0].String())
}
