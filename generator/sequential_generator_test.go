package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestSequentialGenerator(t *testing.T) {
	itemCount := int64(5)
	g, err := NewSequentialGenerator(itemCount, 42)
	require.Nil(t, err)
	expected := []int64{0, 1, 2, 3, 4, 0, 1, 2}
	for _, e := range expected {
		v := g.NextInt()
		require.Equal(t, e, v)
		require.Equal(t, v, g.LastInt())
	}
	require.Panics(t, func() { g.Mean() })
}

func TestSequentialGeneratorBounds(t *testing.T) {
	itemCount := int64(3)
	g, err := NewSequentialGenerator(itemCount, 0)
	require.Nil(t, err)
	for i := 0; i < 100; i++ {
		v := g.NextInt()
		require.True(t, v >= 0 && v < itemCount)
	}
}

func TestSequentialGeneratorInvalidItemCount(t *testing.T) {
	_, err := NewSequentialGenerator(0, 0)
	require.NotNil(t, err)
	_, err = NewSequentialGenerator(-1, 0)
	require.NotNil(t, err)
}
