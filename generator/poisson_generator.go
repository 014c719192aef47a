package generator

import (
	"math"
)

// Above this mean the inverse-transform walk becomes too slow and the
// normal approximation is statistically indistinguishable.
const poissonApproximationThreshold = 30.0

// PoissonGenerator draws keys from a poisson law with a configurable
// mean, wrapped into [0, N) by modulo so the tail mass stays spread over
// the domain instead of piling up on the last key.
type PoissonGenerator struct {
	*IntegerGeneratorBase
	itemCount int64
	mean      float64
}

func NewPoissonGenerator(itemCount int64, mean float64, seed int64) (*PoissonGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("poisson: item count must be positive, got %d", itemCount)
	}
	if mean <= 0 {
		return nil, NewErrorf("poisson: mean must be positive, got %g", mean)
	}
	return &PoissonGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		itemCount:            itemCount,
		mean:                 mean,
	}, nil
}

func (self *PoissonGenerator) NextInt() int64 {
	var sample int64
	if self.mean < poissonApproximationThreshold {
		// Knuth's inverse-transform walk.
		limit := math.Exp(-self.mean)
		product := self.NextFloat64()
		for product > limit {
			sample++
			product *= self.NextFloat64()
		}
	} else {
		approx := math.Round(self.mean + math.Sqrt(self.mean)*self.NextNormFloat64())
		if approx < 0 {
			approx = 0
		}
		sample = int64(approx)
	}
	ret := sample % self.itemCount
	self.SetLastInt(ret)
	return ret
}

func (self *PoissonGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *PoissonGenerator) Mean() float64 {
	return self.mean
}
