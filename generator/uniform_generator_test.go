package generator

import (
	"strconv"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestUniformGenerator(t *testing.T) {
	itemCount := int64(1000)
	g, err := NewUniformGenerator(itemCount, 42)
	require.Nil(t, err)
	total := 100
	for i := 0; i < total; i++ {
		last := g.NextInt()
		require.True(t, last >= 0 && last < itemCount)
		require.Equal(t, last, g.LastInt())
		str := g.NextString()
		v, err := strconv.ParseInt(str, 0, 64)
		require.Nil(t, err)
		require.True(t, v >= 0 && v < itemCount)
		require.Equal(t, float64(itemCount-1)/2.0, g.Mean())
	}
}

func TestUniformGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewUniformGenerator(1000, seed)
		require.Nil(t, err)
		return g
	})
}

func TestUniformGeneratorInvalidItemCount(t *testing.T) {
	_, err := NewUniformGenerator(0, 0)
	require.NotNil(t, err)
}

// requireSameSequence checks that two generators built with the same seed
// reproduce the same key sequence, and that a different seed diverges.
func requireSameSequence(t *testing.T, f func(seed int64) IntegerGenerator) {
	a := f(42)
	b := f(42)
	c := f(43)
	total := 100
	diverged := false
	for i := 0; i < total; i++ {
		va := a.NextInt()
		require.Equal(t, va, b.NextInt())
		if va != c.NextInt() {
			diverged = true
		}
	}
	require.True(t, diverged)
}
