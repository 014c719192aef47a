package generator

import (
	"math"
)

// GeometricGenerator draws the number of failures before the first
// success of a Bernoulli trial with probability p, clamped into [0, N).
// Smaller p spreads the mass further into the domain.
type GeometricGenerator struct {
	*IntegerGeneratorBase
	itemCount   int64
	probability float64
}

func NewGeometricGenerator(itemCount int64, probability float64, seed int64) (*GeometricGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("geometric: item count must be positive, got %d", itemCount)
	}
	if probability <= 0 || probability >= 1 {
		return nil, NewErrorf(
			"geometric: probability must be in (0, 1), got %g", probability)
	}
	return &GeometricGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		itemCount:            itemCount,
		probability:          probability,
	}, nil
}

func (self *GeometricGenerator) NextInt() int64 {
	// Inverse transform: floor(ln(U) / ln(1-p)).
	u := self.NextFloat64()
	for u == 0 {
		u = self.NextFloat64()
	}
	ret := int64(math.Floor(math.Log(u) / math.Log(1.0-self.probability)))
	if ret >= self.itemCount {
		ret = self.itemCount - 1
	}
	self.SetLastInt(ret)
	return ret
}

func (self *GeometricGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *GeometricGenerator) Mean() float64 {
	return (1.0 - self.probability) / self.probability
}
