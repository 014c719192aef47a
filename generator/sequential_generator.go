package generator

import (
	"sync/atomic"
)

// SequentialGenerator walks the key domain in order: 0, 1, ..., N-1, then
// wraps back to 0. It is deterministic and, unlike the other generators,
// safe for concurrent use.
type SequentialGenerator struct {
	*IntegerGeneratorBase
	counter   int64
	itemCount int64
}

func NewSequentialGenerator(itemCount, seed int64) (*SequentialGenerator, error) {
	if itemCount <= 0 {
		return nil, NewErrorf("sequential: item count must be positive, got %d", itemCount)
	}
	return &SequentialGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(seed, -1),
		counter:              -1,
		itemCount:            itemCount,
	}, nil
}

func (self *SequentialGenerator) NextInt() int64 {
	ret := atomic.AddInt64(&self.counter, 1) % self.itemCount
	self.SetLastInt(ret)
	return ret
}

func (self *SequentialGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *SequentialGenerator) Mean() float64 {
	panic("unsupported operation")
}
