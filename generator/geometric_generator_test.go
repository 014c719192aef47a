package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestGeometricGenerator(t *testing.T) {
	itemCount := int64(100)
	probability := 0.3
	g, err := NewGeometricGenerator(itemCount, probability, 42)
	require.Nil(t, err)
	require.Equal(t, (1.0-probability)/probability, g.Mean())
	low := 0
	total := 1000
	for i := 0; i < total; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
		require.Equal(t, v, g.LastInt())
		if v < 10 {
			low++
		}
	}
	// With p=0.3 nearly all draws land well below 10.
	require.True(t, low > total*8/10)
}

func TestGeometricGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewGeometricGenerator(100, 0.05, seed)
		require.Nil(t, err)
		return g
	})
}

func TestGeometricGeneratorInvalidParameters(t *testing.T) {
	_, err := NewGeometricGenerator(0, 0.3, 0)
	require.NotNil(t, err)
	_, err = NewGeometricGenerator(100, 0, 0)
	require.NotNil(t, err)
	_, err = NewGeometricGenerator(100, 1, 0)
	require.NotNil(t, err)
	_, err = NewGeometricGenerator(100, 1.5, 0)
	require.NotNil(t, err)
}
