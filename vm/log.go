package vm

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the out-of-band debug stream required by the error-handling
// design: a single diagnostic line written when an error terminates a run,
// to aid authoring without influencing control flow. A library caller gets a
// logger whose output is discarded by default, matching the teacher's
// pattern of only producing debug text when debug mode is explicitly
// requested (NewVirtualMachine's debug bool).
type Logger = logrus.Logger

// NewSilentLogger returns a Logger that discards everything written to it.
func NewSilentLogger() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func logAbort(logger *Logger, pc uint16, status Status) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"pc":   pc,
		"kind": status.String(),
	}).Error("run aborted")
}
