package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/flowtests/internal/models"
)

// FileLogger logs run events to a timestamped file in the log directory and
// maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the given level.
// It creates logDir if needed, opens run-YYYYMMDD-HHMMSS.log and points
// latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== flowtests run log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of this run's log file
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

func (fl *FileLogger) event(level string, message string) {
	if !fl.shouldLog(level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] %s\n", timestamp(), message))
}

// LogSubjectResolved records the iterations found for a subject at DEBUG level.
func (fl *FileLogger) LogSubjectResolved(subject models.Subject, set models.ArtifactSet) {
	fl.event("debug", fmt.Sprintf("%s: %s %v", subject.RawName, plural(len(set), "iteration"), iterationIndices(set)))
}

// LogSubjectSkipped records a subject with no artifacts at INFO level.
func (fl *FileLogger) LogSubjectSkipped(subject models.Subject) {
	fl.event("info", fmt.Sprintf("%s: nothing to report yet", subject.RawName))
}

// LogPruned records every stale path at INFO level; the file log keeps the
// full list since deletions cannot be undone.
func (fl *FileLogger) LogPruned(subject models.Subject, paths []string, dryRun bool) {
	verb := "pruned"
	if dryRun {
		verb = "would prune"
	}
	fl.event("info", fmt.Sprintf("%s: %s %s", subject.RawName, verb, plural(len(paths), "stale file")))
	for _, path := range paths {
		fl.event("info", fmt.Sprintf("  %s %s", verb, path))
	}
}

// LogReportWritten records a completed report pass at INFO level.
func (fl *FileLogger) LogReportWritten(summary models.RunSummary) {
	fl.event("info", fmt.Sprintf(
		"Report %s: %d subjects, %d reported, %d skipped, %d pruned, duration %.1fs",
		summary.ReportPath, summary.Subjects, summary.Reported, summary.Skipped, summary.Pruned,
		summary.Duration.Seconds(),
	))
}

// LogTransformStart records the start of a transform invocation.
func (fl *FileLogger) LogTransformStart(subject models.Subject, resourceDir string) {
	fl.event("info", fmt.Sprintf("Running transform for %s: %s %s (in %s)",
		subject.RawName, subject.ResourceA, subject.ResourceB, resourceDir))
}

// LogTransformComplete records the outcome of a transform invocation.
func (fl *FileLogger) LogTransformComplete(subject models.Subject, duration time.Duration, err error) {
	if err != nil {
		fl.event("error", fmt.Sprintf("Transform for %s failed after %.1fs: %v", subject.RawName, duration.Seconds(), err))
		return
	}
	fl.event("info", fmt.Sprintf("Transform for %s complete: duration %.1fs", subject.RawName, duration.Seconds()))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
