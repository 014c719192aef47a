package generator

// UniformGenerator draws keys independently and uniformly over [0, N).
type UniformGenerator struct {
	*IntegerGeneratorBase
	itemCount int64
}

func NewUniformGenerator(itemCount, seed int64) (*UniformGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("uniform: item count must be positive, got %d", itemCount)
	}
	return &UniformGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, 0),
		itemCount:            itemCount,
	}, nil
}

func (self *UniformGenerator) NextInt() int64 {
	ret := self.NextInt63n(self.itemCount)
	self.SetLastInt(ret)
	return ret
}

func (self *UniformGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *UniformGenerator) Mean() float64 {
	return float64(self.itemCount-1) / 2.0
}
