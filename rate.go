package skylar

import (
	"math"
	"sync/atomic"
	"time"
)

// RateSchedule is the piecewise target-throughput function of a run:
// linear from RateMin at t=0 to RateMax at t=RatePeriod, constant at
// RateMax afterwards. RateMin = RateMax = 0 means unthrottled.
// It is a pure function of elapsed time and holds no mutable state.
type RateSchedule struct {
	RateMin    float64
	RateMax    float64
	RatePeriod time.Duration
}

func NewRateSchedule(rateMin, rateMax float64, ratePeriod time.Duration) *RateSchedule {
	return &RateSchedule{
		RateMin:    rateMin,
		RateMax:    rateMax,
		RatePeriod: ratePeriod,
	}
}

func (self *RateSchedule) Unthrottled() bool {
	return self.RateMin == 0 && self.RateMax == 0
}

// TargetRate returns the instantaneous target in ops/sec at the given
// elapsed time. Returns 0 for an unthrottled schedule.
func (self *RateSchedule) TargetRate(elapsed time.Duration) float64 {
	if self.Unthrottled() {
		return 0
	}
	period := self.RatePeriod.Seconds()
	t := elapsed.Seconds()
	if period <= 0 || t >= period {
		return self.RateMax
	}
	return self.RateMin + (self.RateMax-self.RateMin)*(t/period)
}

// ExpectedOps returns the integral of the schedule over [0, elapsed]:
// the number of operations that should have been issued by that time.
func (self *RateSchedule) ExpectedOps(elapsed time.Duration) float64 {
	period := self.RatePeriod.Seconds()
	t := elapsed.Seconds()
	if period <= 0 {
		return self.RateMax * t
	}
	if t <= period {
		return self.RateMin*t + (self.RateMax-self.RateMin)*t*t/(2*period)
	}
	rampOps := self.RateMin*period + (self.RateMax-self.RateMin)*period/2
	return rampOps + self.RateMax*(t-period)
}

// TimeForOps returns the smallest elapsed time at which ExpectedOps
// reaches n, computed in closed form by inverting the two schedule
// segments.
func (self *RateSchedule) TimeForOps(n float64) time.Duration {
	if n <= 0 {
		return 0
	}
	period := self.RatePeriod.Seconds()
	if period <= 0 {
		return secondsToDuration(n / self.RateMax)
	}
	rampOps := self.RateMin*period + (self.RateMax-self.RateMin)*period/2
	if n >= rampOps {
		return secondsToDuration(period + (n-rampOps)/self.RateMax)
	}
	// Invert n = b*t + a*t^2 within the ramp segment.
	a := (self.RateMax - self.RateMin) / (2 * period)
	b := self.RateMin
	if a == 0 {
		return secondsToDuration(n / b)
	}
	t := (-b + math.Sqrt(b*b+4*a*n)) / (2 * a)
	return secondsToDuration(t)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// RateController gates operation issuance against a RateSchedule. One
// instance is shared by every worker of both roles, so the schedule
// governs combined throughput and no worker can starve another of budget.
// The issued counter is the only state mutated across workers; it is
// accessed atomically.
//
// An optional outstanding-operation ceiling caps operations in flight:
// when the ceiling is reached, Acquire blocks until a slot is released,
// regardless of the schedule.
type RateController struct {
	schedule    *RateSchedule
	start       time.Time
	issued      int64
	outstanding chan struct{}
}

func NewRateController(schedule *RateSchedule, maxOutstanding int64) *RateController {
	object := &RateController{
		schedule: schedule,
		start:    time.Now(),
	}
	if maxOutstanding > 0 {
		object.outstanding = make(chan struct{}, maxOutstanding)
	}
	return object
}

// Acquire blocks until the caller may issue one operation, or until stop
// fires. It returns false only on cancellation. The nth permit becomes
// due once the integral of the schedule reaches n, so across any interval
// the granted count tracks the schedule within one scheduling quantum,
// independent of the worker count.
func (self *RateController) Acquire(stop <-chan struct{}) bool {
	if self.outstanding != nil {
		select {
		case self.outstanding <- struct{}{}:
		case <-stop:
			return false
		}
	}
	n := atomic.AddInt64(&self.issued, 1)
	if self.schedule.Unthrottled() {
		return true
	}
	due := self.start.Add(self.schedule.TimeForOps(float64(n)))
	wait := time.Until(due)
	if wait <= 0 {
		return true
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		if self.outstanding != nil {
			<-self.outstanding
		}
		return false
	}
}

// Release frees the in-flight slot taken by Acquire. Callers must invoke
// it exactly once after the operation completes.
func (self *RateController) Release() {
	if self.outstanding != nil {
		<-self.outstanding
	}
}

func (self *RateController) Issued() int64 {
	return atomic.LoadInt64(&self.issued)
}

func (self *RateController) Outstanding() int {
	if self.outstanding == nil {
		return 0
	}
	return len(self.outstanding)
}

func (self *RateController) Elapsed() time.Duration {
	return time.Since(self.start)
}

// TargetRate returns the current instantaneous schedule target.
func (self *RateController) TargetRate() float64 {
	return self.schedule.TargetRate(self.Elapsed())
}
