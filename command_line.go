package skylar

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

var (
	Commands = map[string]bool{
		"run": true,
	}
	OptionPrefixes = []string{"--", "-"}

	ProgramName = ""
)

func init() {
	ProgramName = filepath.Base(os.Args[0])
}

// Arguments is the parsed command line: the command, the binding name and
// the merged property set.
type Arguments struct {
	Command  string
	Database string
	Properties
}

func Usage() {
	usageFormat := `usage: %s command database [options]

Commands:
  run                Execute the load test

Databases:
  scylla             A wide-column distributed store speaking CQL
  basic              A demo database that does nothing but echo the operations

Options:
  -P filename      : specify a property file
  -p name=value    : specify a property value
  -h, --help       : show this help message and exit

Key properties:
  host, port, username, password, consistency, replication, datacenter,
  tablets, readers, writers, payload, distribution, recordcount,
  rate.min, rate.max, rate.period, maxoutstanding, duration, seed,
  status.interval, prometheus.port, loglevel`
	Printf(usageFormat, ProgramName)
}

func ExitOnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func stripOptionPrefix(arg string) (string, bool) {
	for _, prefix := range OptionPrefixes {
		if strings.HasPrefix(arg, prefix) {
			return arg[len(prefix):], true
		}
	}
	return arg, false
}

// ParseArgs parses `skylar command database [options]`. Properties given
// with -p override those loaded from -P files.
func ParseArgs() *Arguments {
	if len(os.Args) <= 1 {
		Usage()
		os.Exit(1)
	}
	if name, ok := stripOptionPrefix(os.Args[1]); ok && (name == "h" || name == "help") {
		Usage()
		os.Exit(0)
	}
	if len(os.Args) <= 2 {
		ExitOnError("not enough arguments, try `%s --help`", ProgramName)
	}
	command := os.Args[1]
	if _, ok := Commands[command]; !ok {
		ExitOnError("unknown command: %s", command)
	}
	database := os.Args[2]

	fileProperties := make(Properties)
	properties := make(Properties)
	index := 3
	for index < len(os.Args) {
		arg := os.Args[index]
		name, ok := stripOptionPrefix(arg)
		if !ok {
			ExitOnError("unexpected argument: %s", arg)
		}
		switch name {
		case "h", "help":
			Usage()
			os.Exit(0)
		case "P":
			if index+1 >= len(os.Args) {
				ExitOnError("option -P requires a filename")
			}
			index++
			loaded, err := LoadProperties(os.Args[index])
			if err != nil {
				ExitOnError("fail to load property file %s: %s", os.Args[index], err)
			}
			fileProperties.Merge(loaded)
		case "p":
			if index+1 >= len(os.Args) {
				ExitOnError("option -p requires name=value")
			}
			index++
			parts := strings.SplitN(os.Args[index], "=", 2)
			if len(parts) != 2 {
				ExitOnError("invalid property: %s", os.Args[index])
			}
			properties.Add(parts[0], parts[1])
		default:
			ExitOnError("unknown option: %s", arg)
		}
		index++
	}
	fileProperties.Merge(properties)

	return &Arguments{
		Command:    command,
		Database:   database,
		Properties: fileProperties,
	}
}

// Main is the process entry point behind the executable. It exits
// non-zero on configuration or bootstrap failure and zero on graceful
// completion, including completion after an interrupt.
func Main() {
	args := ParseArgs()
	SetLogLevel(args.Properties.GetDefault(PropertyLogLevel, PropertyLogLevelDefault))

	config, err := NewTestConfig(args.Properties)
	if err != nil {
		ExitOnError("invalid configuration: %s", err)
	}
	if err = ValidateDistribution(config); err != nil {
		ExitOnError("invalid configuration: %s", err)
	}
	db, err := NewDB(args.Database, args.Properties)
	if err != nil {
		ExitOnError("fail to create database %s: %s", args.Database, err)
	}

	stop := make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		close(stop)
	}()

	client := NewClient(config, db)
	if err = client.Run(stop); err != nil {
		ExitOnError("run failed: %s", err)
	}
}
