package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// StdoutLogger writes to stdout, or to W when set.
type StdoutLogger struct {
	W io.Writer
}

func (l *StdoutLogger) out() io.Writer {
	if l.W != nil {
		return l.W
	}
	return os.Stdout
}

func (l *StdoutLogger) Logf(format string, args ...interface{}) {
	msg := sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(l.out(), msg)
}

func (l *StdoutLogger) Log(msg string) { fmt.Fprintln(l.out(), msg) }

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
