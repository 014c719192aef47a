package generator

import (
	"math"
)

// NormalGenerator draws keys from a normal law centered at N/2 with a
// configurable standard deviation, clamped into [0, N).
type NormalGenerator struct {
	*IntegerGeneratorBase
	itemCount int64
	mean      float64
	stddev    float64
}

func NewNormalGenerator(itemCount int64, stddev float64, seed int64) (*NormalGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("normal: item count must be positive, got %d", itemCount)
	}
	if stddev <= 0 {
		return nil, NewErrorf("normal: standard deviation must be positive, got %g", stddev)
	}
	return &NormalGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		itemCount:            itemCount,
		mean:                 float64(itemCount) / 2.0,
		stddev:               stddev,
	}, nil
}

func (self *NormalGenerator) NextInt() int64 {
	sample := self.NextNormFloat64()*self.stddev + self.mean
	ret := int64(math.Round(sample))
	if ret < 0 {
		ret = 0
	} else if ret >= self.itemCount {
		ret = self.itemCount - 1
	}
	self.SetLastInt(ret)
	return ret
}

func (self *NormalGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *NormalGenerator) Mean() float64 {
	return self.mean
}
