package binding

import (
	"strconv"
	"time"

	"github.com/timkoopmans/skylar"
)

func init() {
	skylar.RegisterDB("basic", func() skylar.DB {
		return NewBasicDB()
	})
}

// BasicDB does nothing but echo the operations, optionally after a
// simulated per-operation delay. Useful for dry runs and for exercising
// the engine without a target cluster.
type BasicDB struct {
	*skylar.DBBase
	verbose bool
	toDelay time.Duration
}

func NewBasicDB() *BasicDB {
	return &BasicDB{
		DBBase: skylar.NewDBBase(),
	}
}

func (self *BasicDB) Init(c *skylar.TestConfig) error {
	p := self.GetProperties()
	verbose, err := strconv.ParseBool(
		p.GetDefault(skylar.ConfigBasicVerbose, skylar.ConfigBasicVerboseDefault))
	if err != nil {
		return skylar.NewConfigError("invalid value for %s", skylar.ConfigBasicVerbose)
	}
	delayMS, err := strconv.ParseInt(
		p.GetDefault(skylar.ConfigSimulateDelay, skylar.ConfigSimulateDelayDefault), 0, 64)
	if err != nil {
		return skylar.NewConfigError("invalid value for %s", skylar.ConfigSimulateDelay)
	}
	self.verbose = verbose
	self.toDelay = time.Duration(delayMS) * time.Millisecond
	if self.verbose {
		skylar.OutputProperties(p)
	}
	return nil
}

func (self *BasicDB) Cleanup() error {
	return nil
}

func (self *BasicDB) CreateKeyspace(c *skylar.TestConfig) error {
	if self.verbose {
		skylar.Printf("CREATE KEYSPACE %s rf=%d dc=%s tablets=%d",
			c.Keyspace, c.ReplicationFactor, c.Datacenter, c.Tablets)
	}
	return nil
}

func (self *BasicDB) CreateTable(c *skylar.TestConfig) error {
	if self.verbose {
		skylar.Printf("CREATE TABLE %s.%s", c.Keyspace, c.Payload)
	}
	return nil
}

func (self *BasicDB) Execute(op *skylar.Operation) *skylar.OperationResult {
	start := time.Now()
	if self.toDelay > 0 {
		time.Sleep(self.toDelay)
	}
	if self.verbose {
		skylar.Printf("%s %d [%s]", op.Role, op.Key, op.Consistency)
	}
	return &skylar.OperationResult{
		Latency: time.Since(start),
		Status:  skylar.StatusOK,
	}
}
