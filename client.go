package skylar

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/hhkbp2/go-strftime"
	g "github.com/timkoopmans/skylar/generator"
)

// Worker runs one read or write loop: acquire a permit, sample a key,
// execute, record, repeat until the stop signal fires. Each worker owns
// its key generator exclusively; everything else it touches is either
// read-only or internally synchronized.
type Worker struct {
	id           int64
	role         RoleType
	config       *TestConfig
	db           DB
	controller   *RateController
	keyGenerator g.IntegerGenerator
	measurements *Measurements
}

func NewWorker(id int64, role RoleType, config *TestConfig, db DB,
	controller *RateController, measurements *Measurements) (*Worker, error) {

	keyGenerator, err := NewKeyGenerator(config, id)
	if err != nil {
		return nil, err
	}
	return &Worker{
		id:           id,
		role:         role,
		config:       config,
		db:           db,
		controller:   controller,
		keyGenerator: keyGenerator,
		measurements: measurements,
	}, nil
}

// Run executes the worker loop until stop fires. Cancellation is checked
// at the top of each iteration and inside the permit wait, so the worker
// stops within one wait interval plus one in-flight operation. Operation
// failures are recorded and never terminate the loop.
func (self *Worker) Run(stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	metric := self.role.String()
	for {
		select {
		case <-stop:
			return
		default:
		}
		if !self.controller.Acquire(stop) {
			return
		}
		op := &Operation{
			Role:        self.role,
			Key:         self.keyGenerator.NextInt(),
			Consistency: self.config.Consistency,
		}
		result := self.db.Execute(op)
		self.controller.Release()
		self.measurements.Record(metric, result)
		if result.Status.IsError() {
			Debugf("worker %d: %s key=%d failed: %s",
				self.id, metric, op.Key, result.Status)
		}
	}
}

// Client owns one run: it bootstraps the target, spawns the worker pool
// sharing a single rate controller, reports status periodically and
// exports the collected measurements when every worker has stopped.
type Client struct {
	config       *TestConfig
	db           DB
	measurements *Measurements
	controller   *RateController
}

func NewClient(config *TestConfig, db DB) *Client {
	return &Client{
		config:       config,
		db:           db,
		measurements: NewMeasurements(),
	}
}

func (self *Client) Measurements() *Measurements {
	return self.measurements
}

// Run drives the whole test. The stop channel is the external interrupt;
// the run also ends on its own when the configured duration elapses.
// Returns a BootstrapError if the target cannot be reached or set up.
func (self *Client) Run(stop <-chan struct{}) error {
	if err := ValidateDistribution(self.config); err != nil {
		return err
	}
	if err := self.db.Init(self.config); err != nil {
		return NewBootstrapError(err, "fail to connect to target")
	}
	defer self.db.Cleanup()
	if err := self.db.CreateKeyspace(self.config); err != nil {
		return NewBootstrapError(err, "fail to create keyspace")
	}
	if err := self.db.CreateTable(self.config); err != nil {
		return NewBootstrapError(err, "fail to create table")
	}

	Infof("run seed: %d", self.config.Seed)
	Infof("spawning %d readers and %d writers, distribution=%s, N=%d",
		self.config.Readers, self.config.Writers,
		self.config.Distribution, self.config.RecordCount)

	schedule := NewRateSchedule(
		self.config.RateMin, self.config.RateMax, self.config.RatePeriod)
	self.controller = NewRateController(schedule, self.config.MaxOutstanding)

	total := self.config.Readers + self.config.Writers
	workers := make([]*Worker, 0, total)
	for id := int64(0); id < total; id++ {
		role := RoleRead
		if id >= self.config.Readers {
			role = RoleWrite
		}
		worker, err := NewWorker(
			id, role, self.config, self.db, self.controller, self.measurements)
		if err != nil {
			return err
		}
		workers = append(workers, worker)
	}

	// Broadcast stop signal shared by every worker: closed exactly once,
	// on external interrupt or when the configured duration elapses.
	runStop := make(chan struct{})
	var stopOnce sync.Once
	signalStop := func() {
		stopOnce.Do(func() {
			close(runStop)
		})
	}
	go func() {
		select {
		case <-stop:
			Infof("interrupt received, stopping workers")
			signalStop()
		case <-runStop:
		}
	}()
	if self.config.Duration > 0 {
		timer := time.AfterFunc(self.config.Duration, func() {
			Infof("run duration elapsed, stopping workers")
			signalStop()
		})
		defer timer.Stop()
	}

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, worker := range workers {
		go worker.Run(runStop, &wg)
	}

	var reporter *PrometheusReporter
	if self.config.PrometheusPort > 0 {
		reporter = NewPrometheusReporter(self.config.PrometheusPort)
		defer reporter.Close()
	}
	statusDone := make(chan struct{})
	go self.statusLoop(runStop, statusDone, reporter)

	wg.Wait()
	signalStop()
	<-statusDone

	exporter := NewTextMeasurementExporter(nopWriteCloser{os.Stdout})
	defer exporter.Close()
	return self.measurements.Export(exporter)
}

// statusLoop prints one status line per interval and refreshes the
// prometheus gauges if the endpoint is enabled.
func (self *Client) statusLoop(stop <-chan struct{}, done chan<- struct{},
	reporter *PrometheusReporter) {

	defer close(done)
	if self.config.StatusInterval <= 0 {
		return
	}
	ticker := time.NewTicker(self.config.StatusInterval)
	defer ticker.Stop()
	var prevOps int64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ops := self.measurements.TotalOperations()
			errors := self.measurements.TotalErrors()
			interval := float64(ops-prevOps) / self.config.StatusInterval.Seconds()
			prevOps = ops
			Printf("%s %d sec: %d operations; %d errors; %.1f current ops/sec; target %.1f ops/sec; %s",
				strftime.Format("%Y-%m-%d %H:%M:%S", time.Now()),
				int64(self.controller.Elapsed().Seconds()),
				ops, errors, interval,
				self.controller.TargetRate(),
				self.measurements.GetSummary())
			if reporter != nil {
				reporter.Update(self.measurements, self.controller)
			}
		}
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
