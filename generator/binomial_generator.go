package generator

// BinomialGenerator draws the number of successes in a fixed number of
// Bernoulli trials with probability p, clamped into [0, N). Values never
// exceed the trial count, so with trials < N the clamp never fires.
type BinomialGenerator struct {
	*IntegerGeneratorBase
	itemCount   int64
	trials      int64
	probability float64
}

func NewBinomialGenerator(itemCount, trials int64, probability float64, seed int64) (*BinomialGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("binomial: item count must be positive, got %d", itemCount)
	}
	if trials < 1 {
		return nil, NewErrorf("binomial: trials must be at least 1, got %d", trials)
	}
	if probability <= 0 || probability >= 1 {
		return nil, NewErrorf(
			"binomial: probability must be in (0, 1), got %g", probability)
	}
	return &BinomialGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		itemCount:            itemCount,
		trials:               trials,
		probability:          probability,
	}, nil
}

func (self *BinomialGenerator) NextInt() int64 {
	var ret int64
	for i := int64(0); i < self.trials; i++ {
		if self.NextFloat64() < self.probability {
			ret++
		}
	}
	if ret >= self.itemCount {
		ret = self.itemCount - 1
	}
	self.SetLastInt(ret)
	return ret
}

func (self *BinomialGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *BinomialGenerator) Mean() float64 {
	return float64(self.trials) * self.probability
}
