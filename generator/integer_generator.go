package generator

import (
	"errors"
	"fmt"
	"math/rand"
)

func NewErrorf(format string, args ...interface{}) error {
	return errors.New(fmt.Sprintf(format, args...))
}

// IntegerGenerator is a generator capable of generating integers and
// strings. Each worker owns exactly one instance, seeded deterministically,
// so a run reproduces the same key sequence given the same seed. Instances
// are not safe for concurrent use unless noted otherwise.
type IntegerGenerator interface {
	// NextInt returns the next value as an int. When overriding this
	// method, be sure to call SetLastInt() properly, or the LastInt()
	// call won't work.
	NextInt() int64
	LastInt() int64
	NextString() string
	LastString() string

	Mean() float64
}

// IntegerGeneratorBase is a parent class for all IntegerGenerator
// subclasses. It owns the seeded random source the subclass draws from.
type IntegerGeneratorBase struct {
	lastInt int64
	random  *rand.Rand
}

func NewIntegerGeneratorBase(seed int64, last int64) *IntegerGeneratorBase {
	return &IntegerGeneratorBase{
		lastInt: last,
		random:  rand.New(rand.NewSource(seed)),
	}
}

// SetLastInt sets the last value to be generated.
// IntegerGenerator subclasses must use this call to properly set the last
// int value, or the LastString() and LastInt() calls won't work.
func (self *IntegerGeneratorBase) SetLastInt(value int64) {
	self.lastInt = value
}

// NextString generates the next string in the distribution.
func (self *IntegerGeneratorBase) NextString(g IntegerGenerator) string {
	return fmt.Sprintf("%d", g.NextInt())
}

func (self *IntegerGeneratorBase) LastInt() int64 {
	return self.lastInt
}

func (self *IntegerGeneratorBase) LastString() string {
	return fmt.Sprintf("%d", self.LastInt())
}

func (self *IntegerGeneratorBase) NextFloat64() float64 {
	return self.random.Float64()
}

func (self *IntegerGeneratorBase) NextInt63n(n int64) int64 {
	return self.random.Int63n(n)
}

func (self *IntegerGeneratorBase) NextNormFloat64() float64 {
	return self.random.NormFloat64()
}
