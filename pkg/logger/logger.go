// Package logger wraps the process-wide structured logger. Generation is a
// batch process: failures of individual schema components, properties and
// operations are logged here and the batch carries on.
package logger

import "github.com/sirupsen/logrus"

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// SetVerbose lowers the level to trace for debugging generation runs.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.TraceLevel)
		return
	}
	log.SetLevel(logrus.InfoLevel)
}

// SetJSONOutput switches to the JSON formatter.
func SetJSONOutput(enabled bool) {
	if enabled {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

func Tracef(format string, args ...any) {
	log.Tracef(format, args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
