package binding

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/avast/retry-go"
	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/timkoopmans/skylar"
)

const (
	connectAttempts     = 8
	connectInitialDelay = 500 * time.Millisecond
	connectMaxDelay     = 20 * time.Second

	ddlDevices = `CREATE TABLE IF NOT EXISTS %s.devices (
		device bigint,
		kind text,
		link_name text,
		model text,
		serial text,
		zone text,
		bytes_sent int,
		bytes_received int,
		packets_sent int,
		packets_received int,
		time timestamp,
		PRIMARY KEY (device, time))`
	insertDevices = `INSERT INTO %s.devices
		(device, kind, link_name, model, serial, zone,
		 bytes_sent, bytes_received, packets_sent, packets_received, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectDevices = `SELECT bytes_sent, bytes_received, packets_sent, packets_received
		FROM %s.devices WHERE device = ? LIMIT 1`

	ddlUsers = `CREATE TABLE IF NOT EXISTS %s.users (
		user_id bigint,
		name text,
		email text,
		city text,
		time timestamp,
		PRIMARY KEY (user_id, time))`
	insertUsers = `INSERT INTO %s.users (user_id, name, email, city, time)
		VALUES (?, ?, ?, ?, ?)`
	selectUsers = `SELECT name, email FROM %s.users WHERE user_id = ? LIMIT 1`
)

func init() {
	skylar.RegisterDB("scylla", func() skylar.DB {
		return NewScyllaDB()
	})
}

// ScyllaDB executes operations against a CQL wide-column store. One
// instance is shared across all workers; the underlying session is
// internally thread-safe.
type ScyllaDB struct {
	*skylar.DBBase
	session    *gocql.Session
	payload    string
	insertStmt string
	selectStmt string
}

func NewScyllaDB() *ScyllaDB {
	return &ScyllaDB{
		DBBase: skylar.NewDBBase(),
	}
}

// toConsistency maps the run's consistency level to the driver's. The
// serial levels have no regular-consistency equivalent; they apply to the
// conditional phase and are set per query in applyConsistency.
func toConsistency(level skylar.ConsistencyLevel) gocql.Consistency {
	switch level {
	case skylar.ConsistencyOne:
		return gocql.One
	case skylar.ConsistencyTwo:
		return gocql.Two
	case skylar.ConsistencyThree:
		return gocql.Three
	case skylar.ConsistencyQuorum:
		return gocql.Quorum
	case skylar.ConsistencyAll:
		return gocql.All
	case skylar.ConsistencyLocalQuorum:
		return gocql.LocalQuorum
	case skylar.ConsistencyEachQuorum:
		return gocql.EachQuorum
	case skylar.ConsistencyLocalOne:
		return gocql.LocalOne
	default:
		return gocql.LocalQuorum
	}
}

func applyConsistency(q *gocql.Query, level skylar.ConsistencyLevel) *gocql.Query {
	switch level {
	case skylar.ConsistencySerial:
		return q.SerialConsistency(gocql.Serial)
	case skylar.ConsistencyLocalSerial:
		return q.SerialConsistency(gocql.LocalSerial)
	default:
		return q.Consistency(toConsistency(level))
	}
}

func (self *ScyllaDB) Init(c *skylar.TestConfig) error {
	cluster := gocql.NewCluster(c.Host)
	cluster.Port = int(c.Port)
	cluster.Consistency = toConsistency(c.Consistency)
	cluster.Timeout = 10 * time.Second
	cluster.ConnectTimeout = 10 * time.Second
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(
		gocql.DCAwareRoundRobinPolicy(c.Datacenter))
	if c.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: c.Username,
			Password: c.Password,
		}
	}

	err := retry.Do(
		func() error {
			session, err := cluster.CreateSession()
			if err != nil {
				skylar.Warnf("connect to %s failed, retrying: %s", c.Host, err)
				return err
			}
			self.session = session
			return nil
		},
		retry.Attempts(connectAttempts),
		retry.Delay(connectInitialDelay),
		retry.MaxDelay(connectMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return errors.Wrapf(err, "fail to connect to %s:%d", c.Host, c.Port)
	}
	return nil
}

func (self *ScyllaDB) Cleanup() error {
	if self.session != nil {
		self.session.Close()
	}
	return nil
}

// KeyspaceDDL renders the CREATE KEYSPACE statement for the configured
// replication factor and tablet count.
func KeyspaceDDL(c *skylar.TestConfig) string {
	stmt := fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH replication = "+
			"{'class': 'NetworkTopologyStrategy', '%s': %d}",
		c.Keyspace, c.Datacenter, c.ReplicationFactor)
	if c.Tablets > 0 {
		stmt += fmt.Sprintf(" AND tablets = {'enabled': true, 'initial': %d}", c.Tablets)
	}
	return stmt
}

func (self *ScyllaDB) CreateKeyspace(c *skylar.TestConfig) error {
	stmt := KeyspaceDDL(c)
	skylar.Debugf("running migration: %s", stmt)
	if err := self.session.Query(stmt).Exec(); err != nil {
		return errors.Wrap(err, "fail to create keyspace")
	}
	return nil
}

// TableDDL renders the CREATE TABLE statement for the payload kind, or
// an error for an unknown kind.
func TableDDL(c *skylar.TestConfig) (string, error) {
	switch c.Payload {
	case "devices":
		return fmt.Sprintf(ddlDevices, c.Keyspace), nil
	case "users":
		return fmt.Sprintf(ddlUsers, c.Keyspace), nil
	default:
		return "", skylar.NewConfigError("unsupported payload kind: %s", c.Payload)
	}
}

func (self *ScyllaDB) CreateTable(c *skylar.TestConfig) error {
	stmt, err := TableDDL(c)
	if err != nil {
		return err
	}
	skylar.Debugf("running migration: %s", stmt)
	if err = self.session.Query(stmt).Exec(); err != nil {
		return errors.Wrap(err, "fail to create table")
	}
	self.payload = c.Payload
	switch c.Payload {
	case "devices":
		self.insertStmt = fmt.Sprintf(insertDevices, c.Keyspace)
		self.selectStmt = fmt.Sprintf(selectDevices, c.Keyspace)
	case "users":
		self.insertStmt = fmt.Sprintf(insertUsers, c.Keyspace)
		self.selectStmt = fmt.Sprintf(selectUsers, c.Keyspace)
	}
	return nil
}

func (self *ScyllaDB) Execute(op *skylar.Operation) *skylar.OperationResult {
	var err error
	start := time.Now()
	switch op.Role {
	case skylar.RoleWrite:
		err = applyConsistency(
			self.session.Query(self.insertStmt, self.insertArgs(op.Key)...),
			op.Consistency).Exec()
	default:
		err = self.read(op)
	}
	return &skylar.OperationResult{
		Latency: time.Since(start),
		Status:  classifyError(err),
	}
}

func (self *ScyllaDB) read(op *skylar.Operation) error {
	q := applyConsistency(self.session.Query(self.selectStmt, op.Key), op.Consistency)
	// Column count differs per payload; discard the values either way.
	var a, b, c, d interface{}
	if self.payload == "users" {
		return q.Scan(&a, &b)
	}
	return q.Scan(&a, &b, &c, &d)
}

func (self *ScyllaDB) insertArgs(key int64) []interface{} {
	now := time.Now()
	tag := randomString(4)
	switch self.payload {
	case "users":
		return []interface{}{
			key,
			fmt.Sprintf("user-%s", tag),
			fmt.Sprintf("%s@example.com", tag),
			fmt.Sprintf("city-%s", tag),
			now,
		}
	default:
		return []interface{}{
			key,
			"vnic",
			fmt.Sprintf("l-%s", tag),
			fmt.Sprintf("m-%s", tag),
			fmt.Sprintf("s-%s", tag),
			fmt.Sprintf("z-%s", tag),
			rand.Int31n(1000),
			rand.Int31n(1000),
			rand.Int31n(1000000),
			rand.Int31n(1000000),
			now,
		}
	}
}

const alphanumerics = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomString(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanumerics[rand.Intn(len(alphanumerics))]
	}
	return string(buf)
}

// classifyError maps driver errors onto the outcome statuses the
// measurement sink counts. Anything unrecognized is a plain error.
func classifyError(err error) skylar.StatusType {
	if err == nil {
		return skylar.StatusOK
	}
	if err == gocql.ErrNotFound {
		return skylar.StatusNotFound
	}
	if err == gocql.ErrTimeoutNoResponse || err == gocql.ErrConnectionClosed {
		return skylar.StatusTimeout
	}
	if requestErr, ok := err.(gocql.RequestError); ok {
		switch requestErr.Code() {
		case gocql.ErrCodeReadTimeout, gocql.ErrCodeWriteTimeout:
			return skylar.StatusTimeout
		case gocql.ErrCodeUnavailable:
			return skylar.StatusUnavailable
		case gocql.ErrCodeOverloaded:
			return skylar.StatusOverloaded
		}
		return skylar.StatusError
	}
	return skylar.StatusError
}
