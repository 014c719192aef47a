package skylar

import (
	g "github.com/timkoopmans/skylar/generator"
)

const (
	DistributionSequential = "sequential"
	DistributionUniform    = "uniform"
	DistributionNormal     = "normal"
	DistributionPoisson    = "poisson"
	DistributionGeometric  = "geometric"
	DistributionBinomial   = "binomial"
	DistributionZipfian    = "zipfian"
)

// NewKeyGenerator constructs the key sampler for one worker. The switch
// over the distribution families is closed: adding a family means adding
// a case here and a generator under generator/. Each worker passes its own
// id so its instance is seeded run seed + worker id, which keeps sampling
// free of cross-worker synchronization while preserving the aggregate
// shape of the distribution.
func NewKeyGenerator(c *TestConfig, workerID int64) (g.IntegerGenerator, error) {
	seed := c.Seed + workerID
	switch c.Distribution {
	case DistributionSequential:
		return g.NewSequentialGenerator(c.RecordCount, seed)
	case DistributionUniform:
		return g.NewUniformGenerator(c.RecordCount, seed)
	case DistributionNormal:
		return g.NewNormalGenerator(c.RecordCount, c.Spread, seed)
	case DistributionPoisson:
		return g.NewPoissonGenerator(c.RecordCount, c.Mean, seed)
	case DistributionGeometric:
		return g.NewGeometricGenerator(c.RecordCount, c.Probability, seed)
	case DistributionBinomial:
		return g.NewBinomialGenerator(c.RecordCount, c.Trials, c.Probability, seed)
	case DistributionZipfian:
		return g.NewZipfianGenerator(c.RecordCount, c.Skew, seed)
	default:
		return nil, NewConfigError("unknown distribution: %s", c.Distribution)
	}
}

// ValidateDistribution constructs and discards a sampler so invalid
// distribution parameters surface as a ConfigError before any worker or
// connection exists.
func ValidateDistribution(c *TestConfig) error {
	_, err := NewKeyGenerator(c, 0)
	if err != nil {
		if _, ok := err.(*ConfigError); ok {
			return err
		}
		return NewConfigError("%s", err.Error())
	}
	return nil
}
