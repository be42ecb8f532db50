package telemetry

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// NewLogger returns a structured logger writing to w through the standard
// library logger. Messages at V(n) with n > verbosity are dropped.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(
		log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		stdr.Options{LogCaller: stdr.Error},
	).WithName(serviceName)
}
