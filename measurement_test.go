package skylar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
)

type bufferWriteCloser struct {
	*bytes.Buffer
	closed bool
}

func (self *bufferWriteCloser) Close() error {
	self.closed = true
	return nil
}

func TestMeasurementsRecord(t *testing.T) {
	m := NewMeasurements()
	m.Record("READ", &OperationResult{Latency: time.Millisecond, Status: StatusOK})
	m.Record("READ", &OperationResult{Latency: 2 * time.Millisecond, Status: StatusNotFound})
	m.Record("READ", &OperationResult{Latency: 3 * time.Millisecond, Status: StatusTimeout})
	m.Record("WRITE", &OperationResult{Latency: time.Millisecond, Status: StatusOK})

	snapshot := m.Snapshot()
	read, ok := snapshot["READ"]
	require.True(t, ok)
	require.Equal(t, int64(3), read.Operations)
	// NOT_FOUND is a valid outcome, only the timeout counts as an error.
	require.Equal(t, int64(1), read.Errors)
	require.Equal(t, int64(1), read.NotFound)
	require.Equal(t, int64(1), read.StatusCounts[StatusOK])
	require.Equal(t, int64(1), read.StatusCounts[StatusTimeout])

	write, ok := snapshot["WRITE"]
	require.True(t, ok)
	require.Equal(t, int64(1), write.Operations)
	require.Equal(t, int64(0), write.Errors)

	require.Equal(t, int64(4), m.TotalOperations())
	require.Equal(t, int64(1), m.TotalErrors())
}

func TestMeasurementsGetSummary(t *testing.T) {
	m := NewMeasurements()
	m.Record("READ", &OperationResult{Latency: time.Millisecond, Status: StatusOK})
	m.Record("WRITE", &OperationResult{Latency: time.Millisecond, Status: StatusOK})
	summary := m.GetSummary()
	require.True(t, strings.Contains(summary, "READ"))
	require.True(t, strings.Contains(summary, "WRITE"))
	require.True(t, strings.Contains(summary, "Count=1"))
}

func TestTextMeasurementExporter(t *testing.T) {
	m := NewMeasurements()
	m.Record("READ", &OperationResult{Latency: time.Millisecond, Status: StatusOK})
	buf := &bufferWriteCloser{Buffer: &bytes.Buffer{}}
	exporter := NewTextMeasurementExporter(buf)
	require.Nil(t, m.Export(exporter))
	require.Nil(t, exporter.Close())
	require.True(t, buf.closed)
	out := buf.String()
	require.True(t, strings.Contains(out, "[READ], Operations, 1"))
	require.True(t, strings.Contains(out, "[READ], Return=OK, 1"))
	require.True(t, strings.Contains(out, "99PercentileLatency(us)"))
}

func TestJSONMeasurementExporter(t *testing.T) {
	m := NewMeasurements()
	m.Record("WRITE", &OperationResult{Latency: time.Millisecond, Status: StatusOK})
	buf := &bufferWriteCloser{Buffer: &bytes.Buffer{}}
	exporter := NewJSONMeasurementExporter(buf)
	require.Nil(t, m.Export(exporter))
	out := buf.String()
	require.True(t, strings.Contains(out, `"metric":"WRITE"`))
	require.True(t, strings.Contains(out, `"measurement":"Operations"`))
}

func TestOneMeasurementMeasure(t *testing.T) {
	m := NewOneMeasurement("READ")
	m.Measure(1500 * time.Microsecond)
	m.Measure(2500 * time.Microsecond)
	m.ReportStatus(StatusOK)
	m.ReportStatus(StatusOK)
	s := m.Snapshot()
	require.Equal(t, int64(2), s.Operations)
	require.Equal(t, int64(0), s.Errors)
	require.True(t, s.MeanLatency > 1000 && s.MeanLatency < 3000)
}
