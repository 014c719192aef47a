package skylar

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// Target cluster.
	PropertyHost            = "host"
	PropertyHostDefault     = "127.0.0.1"
	PropertyPort            = "port"
	PropertyPortDefault     = "9042"
	PropertyUsername        = "username"
	PropertyUsernameDefault = ""
	PropertyPassword        = "password"
	PropertyPasswordDefault = ""
	// The replica-acknowledgement policy applied to every operation.
	PropertyConsistency        = "consistency"
	PropertyConsistencyDefault = "LOCAL_QUORUM"
	PropertyReplication        = "replication"
	PropertyReplicationDefault = "1"
	PropertyDatacenter         = "datacenter"
	PropertyDatacenterDefault  = "datacenter1"
	// Initial tablet count for the keyspace. 0 disables tablet placement.
	PropertyTablets        = "tablets"
	PropertyTabletsDefault = "0"
	PropertyKeyspace       = "keyspace"
	// The default value of `PropertyKeyspace`
	PropertyKeyspaceDefault = "skylar"

	// Worker pool.
	PropertyReaders        = "readers"
	PropertyReadersDefault = "10"
	PropertyWriters        = "writers"
	PropertyWritersDefault = "90"

	// The kind of rows written and read back. Options are "devices"
	// and "users".
	PropertyPayload        = "payload"
	PropertyPayloadDefault = "devices"

	// Key selection. `recordcount` is the size N of the key domain [0, N);
	// every sampler draws keys from it.
	PropertyRecordCount        = "recordcount"
	PropertyRecordCountDefault = "1000000"
	// The name of the property for the distribution of keys across the
	// domain. Options are "sequential", "uniform", "normal", "poisson",
	// "geometric", "binomial" and "zipfian".
	PropertyDistribution        = "distribution"
	PropertyDistributionDefault = "uniform"
	// Standard deviation for the normal distribution. 0 means N/6.
	PropertyDistributionSpread        = "distribution.spread"
	PropertyDistributionSpreadDefault = "0"
	// Mean for the poisson distribution. 0 means N/2.
	PropertyDistributionMean        = "distribution.mean"
	PropertyDistributionMeanDefault = "0"
	// Success probability for the geometric and binomial distributions.
	PropertyDistributionProbability        = "distribution.probability"
	PropertyDistributionProbabilityDefault = "0.3"
	// Trial count for the binomial distribution.
	PropertyDistributionTrials        = "distribution.trials"
	PropertyDistributionTrialsDefault = "20"
	// Skew constant for the zipfian distribution, in (0, 1).
	PropertyDistributionSkew        = "distribution.skew"
	PropertyDistributionSkewDefault = "0.99"

	// Offered load. The target rate ramps linearly from `rate.min` at t=0
	// to `rate.max` at t=`rate.period`, then holds at `rate.max`.
	// rate.min = rate.max = 0 disables throttling.
	PropertyRateMin           = "rate.min"
	PropertyRateMinDefault    = "0"
	PropertyRateMax           = "rate.max"
	PropertyRateMaxDefault    = "0"
	PropertyRatePeriod        = "rate.period"
	PropertyRatePeriodDefault = "0"
	// Ceiling on operations in flight. 0 disables the ceiling.
	PropertyMaxOutstanding        = "maxoutstanding"
	PropertyMaxOutstandingDefault = "1000"

	// Run control.
	// Run duration in seconds. 0 runs until interrupted.
	PropertyDuration        = "duration"
	PropertyDurationDefault = "0"
	// Seed for the per-worker samplers. 0 derives a seed from the clock;
	// the effective seed is logged for replay either way.
	PropertySeed        = "seed"
	PropertySeedDefault = "0"
	// Seconds between status lines. 0 disables status reporting.
	PropertyStatusInterval        = "status.interval"
	PropertyStatusIntervalDefault = "10"
	// Port for the prometheus scrape endpoint. 0 disables it.
	PropertyPrometheusPort        = "prometheus.port"
	PropertyPrometheusPortDefault = "0"
	PropertyLogLevel              = "loglevel"
	PropertyLogLevelDefault       = "info"

	// BasicDB
	ConfigBasicVerbose         = "basic.verbose"
	ConfigBasicVerboseDefault  = "false"
	ConfigSimulateDelay        = "basic.simulatedelay"
	ConfigSimulateDelayDefault = "0"
)

// ConfigError reports an invalid property combination. It is detected
// before any worker starts and is fatal.
type ConfigError struct {
	message string
}

func (self *ConfigError) Error() string {
	return self.message
}

func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		message: fmt.Sprintf(format, args...),
	}
}

// BootstrapError reports a failure to connect to the target or to set up
// its schema. It is fatal and surfaces as a non-zero exit.
type BootstrapError struct {
	message string
	cause   error
}

func (self *BootstrapError) Error() string {
	if self.cause != nil {
		return fmt.Sprintf("%s: %s", self.message, self.cause)
	}
	return self.message
}

func (self *BootstrapError) Unwrap() error {
	return self.cause
}

func NewBootstrapError(cause error, format string, args ...interface{}) *BootstrapError {
	return &BootstrapError{
		message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

// TestConfig holds the validated run parameters. It is built once at
// startup and shared read-only by every worker.
type TestConfig struct {
	Host              string
	Port              int64
	Username          string
	Password          string
	Consistency       ConsistencyLevel
	ReplicationFactor int64
	Datacenter        string
	Tablets           int64
	Keyspace          string
	Readers           int64
	Writers           int64
	Payload           string
	Distribution      string
	RecordCount       int64
	Spread            float64
	Mean              float64
	Probability       float64
	Trials            int64
	Skew              float64
	RateMin           float64
	RateMax           float64
	RatePeriod        time.Duration
	MaxOutstanding    int64
	Duration          time.Duration
	Seed              int64
	StatusInterval    time.Duration
	PrometheusPort    int64
}

func parseIntProperty(p Properties, name, defaultValue string) (int64, error) {
	propStr := p.GetDefault(name, defaultValue)
	v, err := strconv.ParseInt(propStr, 0, 64)
	if err != nil {
		return 0, NewConfigError("invalid value for %s: %s", name, propStr)
	}
	return v, nil
}

func parseFloatProperty(p Properties, name, defaultValue string) (float64, error) {
	propStr := p.GetDefault(name, defaultValue)
	v, err := strconv.ParseFloat(propStr, 64)
	if err != nil {
		return 0, NewConfigError("invalid value for %s: %s", name, propStr)
	}
	return v, nil
}

// NewTestConfig builds a TestConfig from properties and validates every
// invariant the engine relies on. All validation happens here, once,
// before any worker is spawned.
func NewTestConfig(p Properties) (*TestConfig, error) {
	port, err := parseIntProperty(p, PropertyPort, PropertyPortDefault)
	if err != nil {
		return nil, err
	}
	consistency, err := ParseConsistencyLevel(
		p.GetDefault(PropertyConsistency, PropertyConsistencyDefault))
	if err != nil {
		return nil, err
	}
	replication, err := parseIntProperty(p, PropertyReplication, PropertyReplicationDefault)
	if err != nil {
		return nil, err
	}
	tablets, err := parseIntProperty(p, PropertyTablets, PropertyTabletsDefault)
	if err != nil {
		return nil, err
	}
	readers, err := parseIntProperty(p, PropertyReaders, PropertyReadersDefault)
	if err != nil {
		return nil, err
	}
	writers, err := parseIntProperty(p, PropertyWriters, PropertyWritersDefault)
	if err != nil {
		return nil, err
	}
	recordCount, err := parseIntProperty(p, PropertyRecordCount, PropertyRecordCountDefault)
	if err != nil {
		return nil, err
	}
	spread, err := parseFloatProperty(p, PropertyDistributionSpread, PropertyDistributionSpreadDefault)
	if err != nil {
		return nil, err
	}
	mean, err := parseFloatProperty(p, PropertyDistributionMean, PropertyDistributionMeanDefault)
	if err != nil {
		return nil, err
	}
	probability, err := parseFloatProperty(p, PropertyDistributionProbability, PropertyDistributionProbabilityDefault)
	if err != nil {
		return nil, err
	}
	trials, err := parseIntProperty(p, PropertyDistributionTrials, PropertyDistributionTrialsDefault)
	if err != nil {
		return nil, err
	}
	skew, err := parseFloatProperty(p, PropertyDistributionSkew, PropertyDistributionSkewDefault)
	if err != nil {
		return nil, err
	}
	rateMin, err := parseFloatProperty(p, PropertyRateMin, PropertyRateMinDefault)
	if err != nil {
		return nil, err
	}
	rateMax, err := parseFloatProperty(p, PropertyRateMax, PropertyRateMaxDefault)
	if err != nil {
		return nil, err
	}
	ratePeriod, err := parseFloatProperty(p, PropertyRatePeriod, PropertyRatePeriodDefault)
	if err != nil {
		return nil, err
	}
	maxOutstanding, err := parseIntProperty(p, PropertyMaxOutstanding, PropertyMaxOutstandingDefault)
	if err != nil {
		return nil, err
	}
	duration, err := parseIntProperty(p, PropertyDuration, PropertyDurationDefault)
	if err != nil {
		return nil, err
	}
	seed, err := parseIntProperty(p, PropertySeed, PropertySeedDefault)
	if err != nil {
		return nil, err
	}
	statusInterval, err := parseIntProperty(p, PropertyStatusInterval, PropertyStatusIntervalDefault)
	if err != nil {
		return nil, err
	}
	prometheusPort, err := parseIntProperty(p, PropertyPrometheusPort, PropertyPrometheusPortDefault)
	if err != nil {
		return nil, err
	}

	if readers < 0 || writers < 0 {
		return nil, NewConfigError("readers and writers must not be negative")
	}
	if readers+writers < 1 {
		return nil, NewConfigError("at least one reader or writer is required")
	}
	if recordCount <= 0 {
		return nil, NewConfigError("recordcount must be positive, got %d", recordCount)
	}
	if rateMin < 0 || rateMax < 0 {
		return nil, NewConfigError("rate.min and rate.max must not be negative")
	}
	if rateMax < rateMin {
		return nil, NewConfigError(
			"rate.max (%g) must not be less than rate.min (%g)", rateMax, rateMin)
	}
	if ratePeriod < 0 {
		return nil, NewConfigError("rate.period must not be negative")
	}
	if maxOutstanding < 0 {
		return nil, NewConfigError("maxoutstanding must not be negative")
	}
	if replication < 1 {
		return nil, NewConfigError("replication must be at least 1, got %d", replication)
	}
	if tablets < 0 {
		return nil, NewConfigError("tablets must not be negative")
	}
	if duration < 0 {
		return nil, NewConfigError("duration must not be negative")
	}
	if spread < 0 {
		return nil, NewConfigError("distribution.spread must not be negative")
	}
	if mean < 0 {
		return nil, NewConfigError("distribution.mean must not be negative")
	}
	if spread == 0 {
		spread = float64(recordCount) / 6.0
	}
	if mean == 0 {
		mean = float64(recordCount) / 2.0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &TestConfig{
		Host:              p.GetDefault(PropertyHost, PropertyHostDefault),
		Port:              port,
		Username:          p.GetDefault(PropertyUsername, PropertyUsernameDefault),
		Password:          p.GetDefault(PropertyPassword, PropertyPasswordDefault),
		Consistency:       consistency,
		ReplicationFactor: replication,
		Datacenter:        p.GetDefault(PropertyDatacenter, PropertyDatacenterDefault),
		Tablets:           tablets,
		Keyspace:          p.GetDefault(PropertyKeyspace, PropertyKeyspaceDefault),
		Readers:           readers,
		Writers:           writers,
		Payload:           p.GetDefault(PropertyPayload, PropertyPayloadDefault),
		Distribution:      p.GetDefault(PropertyDistribution, PropertyDistributionDefault),
		RecordCount:       recordCount,
		Spread:            spread,
		Mean:              mean,
		Probability:       probability,
		Trials:            trials,
		Skew:              skew,
		RateMin:           rateMin,
		RateMax:           rateMax,
		RatePeriod:        time.Duration(ratePeriod * float64(time.Second)),
		MaxOutstanding:    maxOutstanding,
		Duration:          time.Duration(duration) * time.Second,
		Seed:              seed,
		StatusInterval:    time.Duration(statusInterval) * time.Second,
		PrometheusPort:    prometheusPort,
	}, nil
}
