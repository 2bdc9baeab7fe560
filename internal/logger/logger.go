// Package logger provides logging implementations for flowtests runs.
//
// Loggers report leveled free-form messages plus the domain events of a run:
// subjects resolved or skipped, stale files pruned, transform invocations and
// report writes. Implementations are safe for concurrent use.
package logger

import (
	"time"

	"github.com/harrison/flowtests/internal/models"
)

// Logger is the full event surface used by the run driver
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)

	LogSubjectResolved(subject models.Subject, set models.ArtifactSet)
	LogSubjectSkipped(subject models.Subject)
	LogPruned(subject models.Subject, paths []string, dryRun bool)
	LogReportWritten(summary models.RunSummary)

	LogTransformStart(subject models.Subject, resourceDir string)
	LogTransformComplete(subject models.Subject, duration time.Duration, err error)
}

// MultiLogger fans every event out to several loggers in order
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogSubjectResolved(subject models.Subject, set models.ArtifactSet) {
	for _, l := range m.loggers {
		l.LogSubjectResolved(subject, set)
	}
}

func (m *MultiLogger) LogSubjectSkipped(subject models.Subject) {
	for _, l := range m.loggers {
		l.LogSubjectSkipped(subject)
	}
}

func (m *MultiLogger) LogPruned(subject models.Subject, paths []string, dryRun bool) {
	for _, l := range m.loggers {
		l.LogPruned(subject, paths, dryRun)
	}
}

func (m *MultiLogger) LogReportWritten(summary models.RunSummary) {
	for _, l := range m.loggers {
		l.LogReportWritten(summary)
	}
}

func (m *MultiLogger) LogTransformStart(subject models.Subject, resourceDir string) {
	for _, l := range m.loggers {
		l.LogTransformStart(subject, resourceDir)
	}
}

func (m *MultiLogger) LogTransformComplete(subject models.Subject, duration time.Duration, err error) {
	for _, l := range m.loggers {
		l.LogTransformComplete(subject, duration, err)
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}

func (n *NoOpLogger) LogDebug(string) {}

func (n *NoOpLogger) LogInfo(string) {}

func (n *NoOpLogger) LogWarn(string) {}

func (n *NoOpLogger) LogError(string) {}

func (n *NoOpLogger) LogSubjectResolved(models.Subject, models.ArtifactSet) {}

func (n *NoOpLogger) LogSubjectSkipped(models.Subject) {}

func (n *NoOpLogger) LogPruned(models.Subject, []string, bool) {}

func (n *NoOpLogger) LogReportWritten(models.RunSummary) {}

func (n *NoOpLogger) LogTransformStart(models.Subject, string) {}

func (n *NoOpLogger) LogTransformComplete(models.Subject, time.Duration, error) {}
