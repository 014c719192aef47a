package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestPoissonGenerator(t *testing.T) {
	itemCount := int64(100)
	g, err := NewPoissonGenerator(itemCount, 10, 42)
	require.Nil(t, err)
	require.Equal(t, float64(10), g.Mean())
	for i := 0; i < 1000; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
		require.Equal(t, v, g.LastInt())
	}
}

func TestPoissonGeneratorLargeMean(t *testing.T) {
	// Above the approximation threshold the draw switches to the
	// normal approximation; bounds must still hold.
	itemCount := int64(1000)
	g, err := NewPoissonGenerator(itemCount, 500, 42)
	require.Nil(t, err)
	for i := 0; i < 1000; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
	}
}

func TestPoissonGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewPoissonGenerator(1000, 500, seed)
		require.Nil(t, err)
		return g
	})
}

func TestPoissonGeneratorInvalidParameters(t *testing.T) {
	_, err := NewPoissonGenerator(0, 10, 0)
	require.NotNil(t, err)
	_, err = NewPoissonGenerator(100, 0, 0)
	require.NotNil(t, err)
	_, err = NewPoissonGenerator(100, -5, 0)
	require.NotNil(t, err)
}
