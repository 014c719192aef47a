package skylar

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
)

const (
	// Histogram range in microseconds. One minute covers any operation
	// the target could plausibly acknowledge.
	histogramMinLatency = 1
	histogramMaxLatency = 60 * 1000 * 1000
	histogramSigFigures = 3
)

// MeasurementExporter writes the collected measurements into a useful
// format, for example human readable text or machine readable JSON.
type MeasurementExporter interface {
	// Write a measurement to the exported format. v should be int64 or float64.
	Write(metric string, measurement string, v interface{}) error
	io.Closer
}

// OneMeasurement tracks a single measured metric, such as READ latency,
// in an HDR histogram plus a count per outcome status.
type OneMeasurement struct {
	name         string
	measureLock  sync.Mutex
	histogram    *hdrhistogram.Histogram
	statusCounts map[StatusType]int64
}

func NewOneMeasurement(name string) *OneMeasurement {
	return &OneMeasurement{
		name:         name,
		histogram:    hdrhistogram.New(histogramMinLatency, histogramMaxLatency, histogramSigFigures),
		statusCounts: make(map[StatusType]int64),
	}
}

func (self *OneMeasurement) GetName() string {
	return self.name
}

// Measure records one latency observation in microseconds.
func (self *OneMeasurement) Measure(latency time.Duration) {
	self.measureLock.Lock()
	defer self.measureLock.Unlock()
	self.histogram.RecordValue(latency.Microseconds())
}

// ReportStatus counts a classified outcome.
func (self *OneMeasurement) ReportStatus(status StatusType) {
	self.measureLock.Lock()
	defer self.measureLock.Unlock()
	self.statusCounts[status]++
}

// GetSummary is called periodically from the status goroutine. There is a
// single status goroutine per client process.
func (self *OneMeasurement) GetSummary() string {
	self.measureLock.Lock()
	defer self.measureLock.Unlock()
	format := "[%s: Count=%d, Max=%d, Min=%d, Avg=%.2f, 90=%d, 99=%d, 99.9=%d]"
	return fmt.Sprintf(format,
		self.name,
		self.histogram.TotalCount(),
		self.histogram.Max(),
		self.histogram.Min(),
		self.histogram.Mean(),
		self.histogram.ValueAtQuantile(90),
		self.histogram.ValueAtQuantile(99),
		self.histogram.ValueAtQuantile(99.9))
}

// Snapshot returns the counts and quantiles the live reporters need.
func (self *OneMeasurement) Snapshot() MeasurementSnapshot {
	self.measureLock.Lock()
	defer self.measureLock.Unlock()
	var errors int64
	for status, count := range self.statusCounts {
		if status.IsError() {
			errors += count
		}
	}
	return MeasurementSnapshot{
		Operations:   self.histogram.TotalCount(),
		Errors:       errors,
		MeanLatency:  self.histogram.Mean(),
		P99Latency:   self.histogram.ValueAtQuantile(99),
		NotFound:     self.statusCounts[StatusNotFound],
		StatusCounts: self.copyStatusCounts(),
	}
}

func (self *OneMeasurement) copyStatusCounts() map[StatusType]int64 {
	counts := make(map[StatusType]int64, len(self.statusCounts))
	for k, v := range self.statusCounts {
		counts[k] = v
	}
	return counts
}

// ExportMeasurements is called from the main goroutine on orderly
// termination.
func (self *OneMeasurement) ExportMeasurements(exporter MeasurementExporter) error {
	self.measureLock.Lock()
	defer self.measureLock.Unlock()
	name := self.name
	if err := exporter.Write(name, "Operations", self.histogram.TotalCount()); err != nil {
		return err
	}
	if err := exporter.Write(name, "AverageLatency(us)", self.histogram.Mean()); err != nil {
		return err
	}
	if err := exporter.Write(name, "MinLatency(us)", self.histogram.Min()); err != nil {
		return err
	}
	if err := exporter.Write(name, "MaxLatency(us)", self.histogram.Max()); err != nil {
		return err
	}
	for _, p := range []float64{90, 95, 99, 99.9} {
		label := fmt.Sprintf("%gPercentileLatency(us)", p)
		if err := exporter.Write(name, label, self.histogram.ValueAtQuantile(p)); err != nil {
			return err
		}
	}
	for status, count := range self.statusCounts {
		label := fmt.Sprintf("Return=%s", status)
		if err := exporter.Write(name, label, count); err != nil {
			return err
		}
	}
	return nil
}

type MeasurementSnapshot struct {
	Operations   int64
	Errors       int64
	MeanLatency  float64
	P99Latency   int64
	NotFound     int64
	StatusCounts map[StatusType]int64
}

// Measurements is the sink consuming per-operation outcomes, one metric
// per worker role. Safe for concurrent use.
type Measurements struct {
	mutex sync.Mutex
	data  map[string]*OneMeasurement
}

func NewMeasurements() *Measurements {
	return &Measurements{
		data: make(map[string]*OneMeasurement),
	}
}

func (self *Measurements) getMeasurement(metric string) *OneMeasurement {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	m, ok := self.data[metric]
	if !ok {
		m = NewOneMeasurement(metric)
		self.data[metric] = m
	}
	return m
}

// Record consumes one operation result under the given metric name.
func (self *Measurements) Record(metric string, result *OperationResult) {
	m := self.getMeasurement(metric)
	m.Measure(result.Latency)
	m.ReportStatus(result.Status)
}

func (self *Measurements) metricNames() []string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	names := make([]string, 0, len(self.data))
	for name := range self.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSummary concatenates the one-line summaries of every metric, for
// the periodic status line.
func (self *Measurements) GetSummary() string {
	var summary string
	for _, name := range self.metricNames() {
		summary += self.getMeasurement(name).GetSummary() + " "
	}
	return summary
}

// Snapshot returns the current per-metric snapshots keyed by metric name.
func (self *Measurements) Snapshot() map[string]MeasurementSnapshot {
	ret := make(map[string]MeasurementSnapshot)
	for _, name := range self.metricNames() {
		ret[name] = self.getMeasurement(name).Snapshot()
	}
	return ret
}

// TotalOperations sums the recorded operation count across metrics.
func (self *Measurements) TotalOperations() int64 {
	var total int64
	for _, s := range self.Snapshot() {
		total += s.Operations
	}
	return total
}

// TotalErrors sums the recorded error count across metrics.
func (self *Measurements) TotalErrors() int64 {
	var total int64
	for _, s := range self.Snapshot() {
		total += s.Errors
	}
	return total
}

// Export writes every metric through the exporter in name order.
func (self *Measurements) Export(exporter MeasurementExporter) error {
	for _, name := range self.metricNames() {
		if err := self.getMeasurement(name).ExportMeasurements(exporter); err != nil {
			return err
		}
	}
	return nil
}

// TextMeasurementExporter writes human readable text, one measurement
// per line.
type TextMeasurementExporter struct {
	w io.WriteCloser
}

func NewTextMeasurementExporter(w io.WriteCloser) *TextMeasurementExporter {
	return &TextMeasurementExporter{
		w: w,
	}
}

func (self *TextMeasurementExporter) Write(metric, measurement string, v interface{}) error {
	_, err := fmt.Fprintf(self.w, "[%s], %s, %v\n", metric, measurement, v)
	return err
}

func (self *TextMeasurementExporter) Close() error {
	return self.w.Close()
}

// JSONMeasurementExporter writes one JSON object per measurement.
type JSONMeasurementExporter struct {
	w       io.WriteCloser
	encoder *json.Encoder
}

func NewJSONMeasurementExporter(w io.WriteCloser) *JSONMeasurementExporter {
	return &JSONMeasurementExporter{
		w:       w,
		encoder: json.NewEncoder(w),
	}
}

func (self *JSONMeasurementExporter) Write(metric, measurement string, v interface{}) error {
	return self.encoder.Encode(map[string]interface{}{
		"metric":      metric,
		"measurement": measurement,
		"value":       v,
	})
}

func (self *JSONMeasurementExporter) Close() error {
	return self.w.Close()
}
