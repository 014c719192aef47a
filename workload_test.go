package skylar

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func distributionConfig(t *testing.T, distribution string) *TestConfig {
	c, err := NewTestConfig(Properties{
		PropertyDistribution: distribution,
		PropertyRecordCount:  "1000",
		PropertySeed:         "42",
	})
	require.Nil(t, err)
	return c
}

func TestNewKeyGeneratorAllFamilies(t *testing.T) {
	families := []string{
		DistributionSequential,
		DistributionUniform,
		DistributionNormal,
		DistributionPoisson,
		DistributionGeometric,
		DistributionBinomial,
		DistributionZipfian,
	}
	for _, family := range families {
		c := distributionConfig(t, family)
		gen, err := NewKeyGenerator(c, 0)
		require.Nil(t, err, "family %s", family)
		for i := 0; i < 100; i++ {
			v := gen.NextInt()
			require.True(t, v >= 0 && v < c.RecordCount,
				"family %s produced %d", family, v)
		}
	}
}

func TestNewKeyGeneratorUnknownFamily(t *testing.T) {
	c := distributionConfig(t, DistributionUniform)
	c.Distribution = "exponential"
	_, err := NewKeyGenerator(c, 0)
	require.NotNil(t, err)
	_, ok := err.(*ConfigError)
	require.True(t, ok)
}

func TestNewKeyGeneratorPerWorkerSeeding(t *testing.T) {
	c := distributionConfig(t, DistributionUniform)

	// Same worker id reproduces the same stream.
	first, err := NewKeyGenerator(c, 3)
	require.Nil(t, err)
	second, err := NewKeyGenerator(c, 3)
	require.Nil(t, err)
	for i := 0; i < 100; i++ {
		require.Equal(t, first.NextInt(), second.NextInt())
	}

	// Different worker ids draw different streams.
	other, err := NewKeyGenerator(c, 4)
	require.Nil(t, err)
	base, err := NewKeyGenerator(c, 3)
	require.Nil(t, err)
	diverged := false
	for i := 0; i < 100; i++ {
		if base.NextInt() != other.NextInt() {
			diverged = true
			break
		}
	}
	require.True(t, diverged)
}

func TestValidateDistribution(t *testing.T) {
	c := distributionConfig(t, DistributionZipfian)
	require.Nil(t, ValidateDistribution(c))

	c.Skew = 1.5
	err := ValidateDistribution(c)
	require.NotNil(t, err)
	_, ok := err.(*ConfigError)
	require.True(t, ok)

	c = distributionConfig(t, "exponential")
	require.NotNil(t, ValidateDistribution(c))
}
