// Package audit emits structured audit events for authentication,
// authorization decisions, and record lifecycle changes.
package audit

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event represents an audit event.
type Event interface {
	// MessageID identifies the event kind (login, denied, create, ...).
	MessageID() string
	// Message is the human-readable event description.
	Message() string
	// Fields carries the structured event attributes.
	Fields() logrus.Fields
	// Success reports whether the audited action succeeded.
	Success() bool
}

// Logger writes audit events through logrus.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a new audit logger writing to w.
func NewLogger(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{log: log}
}

// Log writes an audit event. Failed actions log at warning level.
func (l *Logger) Log(event Event) {
	fields := event.Fields()
	fields["audit"] = event.MessageID()

	entry := l.log.WithFields(fields)
	if event.Success() {
		entry.Info(event.Message())
	} else {
		entry.Warning(event.Message())
	}
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// SetDefaultLogger replaces the package-level logger. Used by tests.
func SetDefaultLogger(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Log writes an audit event using the default logger.
func Log(event Event) {
	defaultMu.Lock()
	if defaultLogger == nil {
		defaultLogger = &Logger{log: logrus.StandardLogger()}
	}
	l := defaultLogger
	defaultMu.Unlock()

	l.Log(event)
}
