package skylar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusReporter exposes live run gauges on a scrape endpoint. It is
// optional: a zero port disables it entirely.
type PrometheusReporter struct {
	server     *http.Server
	registry   *prometheus.Registry
	operations *prometheus.GaugeVec
	errors     *prometheus.GaugeVec
	latency    *prometheus.GaugeVec
	targetRate prometheus.Gauge
}

func NewPrometheusReporter(port int64) *PrometheusReporter {
	registry := prometheus.NewRegistry()
	object := &PrometheusReporter{
		registry: registry,
		operations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skylar_operations_total",
				Help: "Operations executed so far, per role.",
			},
			[]string{"metric"},
		),
		errors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skylar_errors_total",
				Help: "Failed operations so far, per role.",
			},
			[]string{"metric"},
		),
		latency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skylar_latency_usec",
				Help: "Operation latency in microseconds, per role and quantile.",
			},
			[]string{"metric", "quantile"},
		),
		targetRate: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "skylar_target_rate",
				Help: "Current scheduled target throughput in ops/sec.",
			},
		),
	}
	registry.MustRegister(object.operations, object.errors, object.latency, object.targetRate)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	object.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	go func() {
		if err := object.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Errorf("prometheus endpoint failed: %s", err)
		}
	}()
	return object
}

// Update refreshes the gauges from the measurement sink and controller.
func (self *PrometheusReporter) Update(measurements *Measurements, controller *RateController) {
	for metric, snapshot := range measurements.Snapshot() {
		self.operations.WithLabelValues(metric).Set(float64(snapshot.Operations))
		self.errors.WithLabelValues(metric).Set(float64(snapshot.Errors))
		self.latency.WithLabelValues(metric, "mean").Set(snapshot.MeanLatency)
		self.latency.WithLabelValues(metric, "0.99").Set(float64(snapshot.P99Latency))
	}
	self.targetRate.Set(controller.TargetRate())
}

func (self *PrometheusReporter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return self.server.Shutdown(ctx)
}
