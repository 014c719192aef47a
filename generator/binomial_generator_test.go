package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestBinomialGenerator(t *testing.T) {
	itemCount := int64(100)
	trials := int64(20)
	probability := 0.3
	g, err := NewBinomialGenerator(itemCount, trials, probability, 42)
	require.Nil(t, err)
	require.Equal(t, float64(trials)*probability, g.Mean())
	for i := 0; i < 1000; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
		require.True(t, v <= trials)
		require.Equal(t, v, g.LastInt())
	}
}

func TestBinomialGeneratorDeterminism(t *testing.T) {
	requireSameSequence(t, func(seed int64) IntegerGenerator {
		g, err := NewBinomialGenerator(100, 20, 0.3, seed)
		require.Nil(t, err)
		return g
	})
}

func TestBinomialGeneratorInvalidParameters(t *testing.T) {
	_, err := NewBinomialGenerator(0, 20, 0.3, 0)
	require.NotNil(t, err)
	_, err = NewBinomialGenerator(100, 0, 0.3, 0)
	require.NotNil(t, err)
	_, err = NewBinomialGenerator(100, 20, 0, 0)
	require.NotNil(t, err)
	_, err = NewBinomialGenerator(100, 20, 1, 0)
	require.NotNil(t, err)
}
