package logger

import "sync"

// Logger is the minimal sink used across langreg for human-readable output.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// NopLogger discards everything. It is the default for registries created
// without a logger so that library callers never get unexpected output.
type NopLogger struct{}

func (NopLogger) Logf(format string, args ...interface{}) {}
func (NopLogger) Log(msg string)                          {}

// Verbose forwards to the wrapped logger only when enabled. The registry and
// detector report skipped work through it; the CLI turns it on with -v.
type Verbose struct {
	mu      sync.Mutex
	next    Logger
	enabled bool
}

// NewVerbose wraps next, forwarding only while enabled. A nil next discards.
func NewVerbose(next Logger, enabled bool) *Verbose {
	if next == nil {
		next = NopLogger{}
	}
	return &Verbose{next: next, enabled: enabled}
}

func (v *Verbose) SetEnabled(enabled bool) {
	v.mu.Lock()
	v.enabled = enabled
	v.mu.Unlock()
}

func (v *Verbose) Logf(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.enabled {
		v.next.Logf(format, args...)
	}
}

func (v *Verbose) Log(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.enabled {
		v.next.Log(msg)
	}
}

// Recorder keeps every message in memory. Useful in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Logf(format string, args ...interface{}) {
	r.Log(sprintf(format, args...))
}

func (r *Recorder) Log(msg string) {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
}

// Lines returns a snapshot of the recorded messages.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
