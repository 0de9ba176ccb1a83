/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package wlog

import (
	"io"
	"log"
	"os"
)

// Logger is something that can print, using Logf, a format string
type Logger interface {
	Logf(format string, v ...any)
}

// SubsystemLogger writes the lines of one subsystem, each prefixed with the subsystem's name.
// It's safe to share amongst goroutines since the underlying log.Logger serializes its writes
type SubsystemLogger struct {
	logger *log.Logger
}

// New creates a logger for the subsystem with name "name", writing to standard error
func New(name string) *SubsystemLogger {
	return NewWithOutput(name, os.Stderr)
}

// NewWithOutput creates a logger for the subsystem with name "name", writing to out
func NewWithOutput(name string, out io.Writer) *SubsystemLogger {
	return &SubsystemLogger{
		logger: log.New(out, "["+name+"]: ", log.Ldate|log.Ltime),
	}
}

func (s *SubsystemLogger) Logf(format string, v ...any) {
	s.logger.Printf(format, v...)
}

// nopLogger discards everything, used where a Logger is required but output is unwanted
type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

// Nop returns a Logger that discards all of its input
func Nop() Logger {
	return nopLogger{}
}
