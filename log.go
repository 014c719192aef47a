package skylar

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	nameToLevels = map[string]logrus.Level{
		"verbose": logrus.TraceLevel,
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"quiet":   logrus.PanicLevel,
	}
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)
}

// SetLogLevel sets the global log level by name.
// Unknown names leave the level unchanged.
func SetLogLevel(name string) {
	if level, ok := nameToLevels[name]; ok {
		logrus.SetLevel(level)
	}
}

func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}

func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

func Verbosef(format string, args ...interface{}) {
	logrus.Tracef(format, args...)
}

func Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	fmt.Println("")
}

func EPrintf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr, "")
}
