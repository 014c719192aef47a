package generator

import (
	"math"
)

const (
	ZipfianConstantDefault = float64(0.99)
)

// Compute the zeta constant needed for the distribution: the sum sequence
// 1/i^theta for i in (st, n].
func zetaStatic(st, n int64, theta, initialSum float64) float64 {
	sum := initialSum
	for i := st; i < n; i++ {
		sum += 1 / math.Pow(float64(i+1), theta)
	}
	return sum
}

// ZipfianGenerator produces a sequence of keys in [0, N) such that some
// keys are far more popular than others, modeling hot-key access: key 0 is
// the most popular, key 1 the next, and so on. The skew constant theta in
// (0, 1) controls how steep the popularity curve is.
//
// Be aware: construction computes zeta(N), a sum sequence from 1 to N, so
// initialization cost grows linearly with the key domain.
//
// The algorithm used here is from
// "Quickly Generating Billion-Record Synthetic Databases",
// Jim Gray et al, SIGMOD 1994.
type ZipfianGenerator struct {
	*IntegerGeneratorBase
	// Number of items.
	items int64
	// The zipfian constant to use.
	zipfianConstant float64
	// Computed parameters for generating the distribution.
	alpha, zetan, eta, theta, zeta2theta float64
}

func NewZipfianGenerator(itemCount int64, zipfianConstant float64, seed int64) (*ZipfianGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("zipfian: item count must be positive, got %d", itemCount)
	}
	if zipfianConstant <= 0 || zipfianConstant >= 1 {
		return nil, NewErrorf(
			"zipfian: skew constant must be in (0, 1), got %g", zipfianConstant)
	}
	theta := zipfianConstant
	zeta2theta := zetaStatic(0, 2, theta, 0)
	zetan := zetaStatic(0, itemCount, theta, 0)
	alpha := 1.0 / (1.0 - theta)
	eta := (1 - math.Pow(2.0/float64(itemCount), 1-theta)) / (1 - zeta2theta/zetan)

	return &ZipfianGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		items:                itemCount,
		zipfianConstant:      zipfianConstant,
		alpha:                alpha,
		zetan:                zetan,
		eta:                  eta,
		theta:                theta,
		zeta2theta:           zeta2theta,
	}, nil
}

// NextInt generates the next key. The distribution is skewed toward lower
// keys: 0 is the most popular, 1 the next most popular, etc.
func (self *ZipfianGenerator) NextInt() int64 {
	u := self.NextFloat64()
	uz := u * self.zetan
	var ret int64
	if uz < 1.0 {
		ret = 0
	} else if uz < 1.0+math.Pow(0.5, self.theta) {
		ret = 1
	} else {
		ret = int64(float64(self.items) * math.Pow(self.eta*u-self.eta+1.0, self.alpha))
		if ret >= self.items {
			ret = self.items - 1
		}
	}
	self.SetLastInt(ret)
	return ret
}

func (self *ZipfianGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ZipfianGenerator) Mean() float64 {
	panic("unsupported operation")
}
