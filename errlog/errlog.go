// Package errlog is the parser driver's error-reporting collaborator: it
// accumulates syntax errors as a [multierror.Error], counts hints and
// warnings separately, and routes everything through a [logrus.FieldLogger]
// so a caller can redirect or format diagnostics independently of the
// parse itself.
package errlog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// FatalError aborts the parse currently in progress. It is returned (never
// panicked) by [Log.Fatal] so a caller can unwind via a normal error return
// rather than recover().
type FatalError struct {
	File    string
	Line    int
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s:%d: fatal: %s", e.File, e.Line, e.Message)
}

// Log collects diagnostics raised while scanning or parsing a single
// source. Syntax errors accumulate in a [multierror.Error] so the full set
// survives to the end of a parse instead of aborting on the first one;
// hints and warnings are advisory and only counted.
type Log struct {
	logger *logrus.Logger

	errors   *multierror.Error
	hints    int
	warnings int
}

// New returns a Log that writes to logger. A nil logger falls back to
// [logrus.StandardLogger].
func New(logger *logrus.Logger) *Log {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Log{logger: logger}
}

// Hint records an advisory diagnostic that does not affect recovery.
func (l *Log) Hint(file string, line int, format string, args ...any) {
	l.hints++
	l.logger.WithFields(logrus.Fields{"file": file, "line": line}).
		Infof(format, args...)
}

// Warning records a diagnostic worth surfacing but not treated as an error.
func (l *Log) Warning(file string, line int, format string, args ...any) {
	l.warnings++
	l.logger.WithFields(logrus.Fields{"file": file, "line": line}).
		Warnf(format, args...)
}

// Syntax records a recoverable syntax error. The parser is expected to
// call this, then resynchronize to a known rule and continue — the error
// is logged and appended to the accumulated set, not returned.
func (l *Log) Syntax(file string, line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.errors = multierror.Append(l.errors, fmt.Errorf("%s:%d: %s", file, line, msg))
	l.logger.WithFields(logrus.Fields{"file": file, "line": line}).Error(msg)
}

// Fatal records an unrecoverable error and returns it as a [*FatalError]
// for the caller to propagate, unwinding the current parse.
func (l *Log) Fatal(file string, line int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	err := &FatalError{File: file, Line: line, Message: msg}
	l.errors = multierror.Append(l.errors, err)
	l.logger.WithFields(logrus.Fields{"file": file, "line": line}).Error(msg)
	return err
}

// Errors returns the number of syntax and fatal errors recorded so far.
func (l *Log) Errors() int {
	if l.errors == nil {
		return 0
	}
	return len(l.errors.Errors)
}

// Warnings returns the number of warnings recorded so far.
func (l *Log) Warnings() int { return l.warnings }

// Hints returns the number of hints recorded so far.
func (l *Log) Hints() int { return l.hints }

// Err returns the accumulated errors as a single error, or nil if none were
// recorded.
func (l *Log) Err() error {
	if l.errors == nil {
		return nil
	}
	return l.errors.ErrorOrNil()
}
