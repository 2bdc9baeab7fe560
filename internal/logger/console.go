package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/flowtests/internal/models"
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// Honors NO_COLOR and TTY detection
		return !color.NoColor
	}

	return false
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel formats "[HH:MM:SS] [LEVEL] <message>" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// write emits a pre-formatted event line at the given level.
func (cl *ConsoleLogger) write(level string, plain string, colored func() string) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	line := plain
	if cl.colorOutput {
		line = colored()
	}
	fmt.Fprintf(cl.writer, "[%s] %s\n", timestamp(), line)
}

// LogSubjectResolved logs the iterations found for a subject at DEBUG level.
// Format: "[HH:MM:SS] Foo: 3 iterations [0 2 3]"
func (cl *ConsoleLogger) LogSubjectResolved(subject models.Subject, set models.ArtifactSet) {
	detail := fmt.Sprintf("%s %v", plural(len(set), "iteration"), iterationIndices(set))
	cl.write("debug",
		fmt.Sprintf("%s: %s", subject.RawName, detail),
		func() string {
			return fmt.Sprintf("%s: %s", color.New(color.Bold).Sprint(subject.RawName), detail)
		})
}

// LogSubjectSkipped logs a subject with no artifacts at INFO level.
func (cl *ConsoleLogger) LogSubjectSkipped(subject models.Subject) {
	cl.write("info",
		fmt.Sprintf("%s: nothing to report yet", subject.RawName),
		func() string {
			return fmt.Sprintf("%s: %s", color.New(color.Bold).Sprint(subject.RawName),
				color.New(color.FgHiBlack).Sprint("nothing to report yet"))
		})
}

// LogPruned logs the stale files removed for a subject at INFO level and
// each path at DEBUG level.
func (cl *ConsoleLogger) LogPruned(subject models.Subject, paths []string, dryRun bool) {
	verb := "pruned"
	if dryRun {
		verb = "would prune"
	}
	summary := fmt.Sprintf("%s %s", verb, plural(len(paths), "stale file"))

	cl.write("info",
		fmt.Sprintf("%s: %s", subject.RawName, summary),
		func() string {
			return fmt.Sprintf("%s: %s", color.New(color.Bold).Sprint(subject.RawName),
				color.New(color.FgYellow).Sprint(summary))
		})

	for _, path := range paths {
		cl.LogDebug(fmt.Sprintf("  %s %s", verb, path))
	}
}

// LogReportWritten logs a completed report pass at INFO level.
// Format: "[HH:MM:SS] Report flowtests.html: 3 reported, 1 skipped, 2 pruned (0s)"
func (cl *ConsoleLogger) LogReportWritten(summary models.RunSummary) {
	counts := fmt.Sprintf("%d reported, %d skipped, %d pruned (%s)",
		summary.Reported, summary.Skipped, summary.Pruned, formatDuration(summary.Duration))

	cl.write("info",
		fmt.Sprintf("Report %s: %s", summary.ReportPath, counts),
		func() string {
			return fmt.Sprintf("Report %s: %s", color.New(color.FgGreen).Sprint(summary.ReportPath), counts)
		})
}

// LogTransformStart logs the start of a transform invocation at INFO level.
func (cl *ConsoleLogger) LogTransformStart(subject models.Subject, resourceDir string) {
	cl.write("info",
		fmt.Sprintf("Running transform for %s (%s)", subject.RawName, resourceDir),
		func() string {
			return fmt.Sprintf("Running transform for %s (%s)",
				color.New(color.Bold).Sprint(subject.RawName), resourceDir)
		})
}

// LogTransformComplete logs the end of a transform invocation. Failures are
// logged at ERROR level, success at INFO level.
func (cl *ConsoleLogger) LogTransformComplete(subject models.Subject, duration time.Duration, err error) {
	d := formatDuration(duration)
	if err != nil {
		cl.write("error",
			fmt.Sprintf("Transform for %s failed after %s: %v", subject.RawName, d, err),
			func() string {
				return color.New(color.FgRed).Sprintf("Transform for %s failed after %s: %v", subject.RawName, d, err)
			})
		return
	}

	cl.write("info",
		fmt.Sprintf("Transform for %s complete (%s)", subject.RawName, d),
		func() string {
			return fmt.Sprintf("Transform for %s %s (%s)", color.New(color.Bold).Sprint(subject.RawName),
				color.New(color.FgGreen).Sprint("complete"), d)
		})
}

func iterationIndices(set models.ArtifactSet) []int {
	indices := make([]int, len(set))
	for i, it := range set {
		indices[i] = it.Index
	}
	return indices
}
