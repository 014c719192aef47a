package skylar

import (
	"time"
)

// RoleType tags an operation with the worker role that issued it.
type RoleType uint8

const (
	RoleRead RoleType = 1 + iota
	RoleWrite
)

func (self RoleType) String() string {
	switch self {
	case RoleRead:
		return "READ"
	case RoleWrite:
		return "WRITE"
	default:
		return "UNKNOWN_ROLE"
	}
}

// StatusType classifies the outcome of one operation.
type StatusType uint8

const (
	StatusOK StatusType = 1 + iota
	// The requested key has not been written yet. Expected under mixed
	// read/write load, never fatal.
	StatusNotFound
	StatusTimeout
	StatusUnavailable
	StatusOverloaded
	StatusError
)

func (self StatusType) String() string {
	switch self {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusUnavailable:
		return "UNAVAILABLE"
	case StatusOverloaded:
		return "OVERLOADED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN_STATUS"
	}
}

// IsError reports whether the status counts as a failed operation.
// NOT_FOUND is a valid outcome of reading a key no writer has touched yet.
func (self StatusType) IsError() bool {
	return self != StatusOK && self != StatusNotFound
}

// Operation is one read or write against the target, created per loop
// iteration and consumed immediately by the executor. The consistency
// level is forwarded to the target unchanged.
type Operation struct {
	Role        RoleType
	Key         int64
	Consistency ConsistencyLevel
}

// OperationResult carries the latency and classified outcome of one
// executed operation to the measurement sink.
type OperationResult struct {
	Latency time.Duration
	Status  StatusType
}

// DB is the layer executing operations against the target system to be
// measured. One instance is shared by reference across all workers and
// must be safe for concurrent Execute calls. Execute never returns an
// error: failures are classified into the result status so a worker can
// record them and keep going.
type DB interface {
	// Set the properties for this DB.
	SetProperties(p Properties)

	// Get the properties for this DB.
	GetProperties() Properties

	// Initialize any state for this DB: connect and authenticate.
	// Called once, before any worker starts.
	Init(c *TestConfig) error

	// Cleanup any state for this DB. Called once, after every worker
	// has stopped.
	Cleanup() error

	// CreateKeyspace bootstraps the keyspace with the configured
	// replication factor, datacenter and tablet count. Called once,
	// after Init and before any worker starts.
	CreateKeyspace(c *TestConfig) error

	// CreateTable bootstraps the table for the configured payload kind.
	CreateTable(c *TestConfig) error

	// Execute runs one operation at the consistency level it carries and
	// returns its latency and classified outcome.
	Execute(op *Operation) *OperationResult
}

type DBBase struct {
	p Properties
}

func NewDBBase() *DBBase {
	return &DBBase{}
}

func (self *DBBase) SetProperties(p Properties) {
	self.p = p
}

func (self *DBBase) GetProperties() Properties {
	return self.p
}

type MakeDBFunc func() DB

var (
	databases = make(map[string]MakeDBFunc)
)

// RegisterDB makes a DB constructor available under the given name.
// Bindings register themselves from their package init.
func RegisterDB(name string, f MakeDBFunc) {
	databases[name] = f
}

func NewDB(name string, props Properties) (DB, error) {
	f, ok := databases[name]
	if !ok {
		return nil, NewConfigError("unsupported database: %s", name)
	}
	db := f()
	db.SetProperties(props)
	return db, nil
}
