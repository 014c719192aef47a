package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestNormalGenerator(t *testing.T) {
	itemCount := int64(1000)
	g, err := NewNormalGenerator(itemCount, float64(itemCount)/6.0, 42)
	require.Nil(t, err)
	require.Equal(t, float64(itemCount)/2.0, g.Mean())
	total := 1000
	centered := 0
	for i := 0; i < total; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
		require.Equal(t, v, g.LastInt())
		if v >= itemCount/4 && v < 3*itemCount/4 {
			centered++
		}
	}
	// Roughly 87% of the mass lies within 1.5 standard deviations.
	require.True(t, centered > total/2)
}

func TestNormalGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewNormalGenerator(1000, 100, seed)
		require.Nil(t, err)
		return g
	})
}

func TestNormalGeneratorInvalidParameters(t *testing.T) {
	_, err := NewNormalGenerator(0, 10, 0)
	require.NotNil(t, err)
	_, err = NewNormalGenerator(1000, 0, 0)
	require.NotNil(t, err)
	_, err = NewNormalGenerator(1000, -1, 0)
	require.NotNil(t, err)
}
