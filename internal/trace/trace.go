// Package trace is the ambient logging seam used by the CPU's per-step
// tracing; the PPU and APU take no logger. It wraps the standard log
// package behind a per-run enabled
// flag, the same shape the teacher threads through with its
// per-component verbose bool (see nes/cpu.go's Log/Logf helpers).
package trace

import (
	"log"
	"os"
)

// Logger gates a *log.Logger behind an Enabled flag so the hot CPU
// step path can skip formatting work when tracing is off.
type Logger struct {
	Enabled bool
	l       *log.Logger
}

// New builds a Logger writing to os.Stdout when enabled is true.
func New(enabled bool) *Logger {
	return &Logger{
		Enabled: enabled,
		l:       log.New(os.Stdout, "", 0),
	}
}

// Printf logs a formatted line when tracing is enabled.
func (t *Logger) Printf(format string, args ...interface{}) {
	if t == nil || !t.Enabled {
		return
	}
	t.l.Printf(format, args...)
}
