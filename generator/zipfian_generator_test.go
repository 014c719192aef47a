package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestZipfianGenerator(t *testing.T) {
	itemCount := int64(1000)
	g, err := NewZipfianGenerator(itemCount, ZipfianConstantDefault, 42)
	require.Nil(t, err)
	total := 1000
	hot := 0
	for i := 0; i < total; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
		require.Equal(t, v, g.LastInt())
		if v < itemCount/10 {
			hot++
		}
	}
	// The head of the ranking should absorb most of the draws.
	require.True(t, hot > total/2)
	require.Panics(t, func() { g.Mean() })
}

func TestZipfianGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewZipfianGenerator(1000, ZipfianConstantDefault, seed)
		require.Nil(t, err)
		return g
	})
}

func TestZipfianGeneratorInvalidParameters(t *testing.T) {
	_, err := NewZipfianGenerator(0, ZipfianConstantDefault, 0)
	require.NotNil(t, err)
	_, err = NewZipfianGenerator(1000, 0, 0)
	require.NotNil(t, err)
	_, err = NewZipfianGenerator(1000, 1, 0)
	require.NotNil(t, err)
	_, err = NewZipfianGenerator(1000, 1.5, 0)
	require.NotNil(t, err)
}

func TestZetaStatic(t *testing.T) {
	// zeta(2) with theta=1 would be the harmonic sum; with theta close
	// to 0 every term is close to 1.
	sum := zetaStatic(0, 4, 0.001, 0)
	require.True(t, sum > 3.9 && sum <= 4.0)
}
