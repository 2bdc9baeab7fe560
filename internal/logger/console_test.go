package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/flowtests/internal/models"
)

var tsPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] `)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
	}{
		{level: "trace", visible: []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "debug", visible: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "info", visible: []string{"INFO", "WARN", "ERROR"}},
		{level: "warn", visible: []string{"WARN", "ERROR"}},
		{level: "error", visible: []string{"ERROR"}},
		{level: "bogus", visible: []string{"INFO", "WARN", "ERROR"}},
		{level: " DEBUG ", visible: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.level)

			cl.LogTrace("t")
			cl.LogDebug("d")
			cl.LogInfo("i")
			cl.LogWarn("w")
			cl.LogError("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Len(t, lines, len(tt.visible))
			for i, level := range tt.visible {
				assert.Contains(t, lines[i], "["+level+"]")
				assert.Regexp(t, tsPrefix, lines[i])
			}
		})
	}
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")
	cl.LogInfo("dropped")
	cl.LogSubjectSkipped(models.Subject{RawName: "Foo"})
}

func TestConsoleLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	assert.False(t, cl.colorOutput)

	cl.LogWarn("careful")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestConsoleLogger_DomainEvents(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "debug")
	foo := models.Subject{RawName: "Foo"}

	cl.LogSubjectResolved(foo, models.ArtifactSet{{Index: 0}, {Index: 2}})
	cl.LogSubjectSkipped(models.Subject{RawName: "Bar"})
	cl.LogPruned(foo, []string{"flowtests/Foo/x.png"}, false)
	cl.LogPruned(foo, []string{"a.png", "b.png"}, true)
	cl.LogReportWritten(models.RunSummary{ReportPath: "flowtests.html", Reported: 1, Skipped: 1, Pruned: 1})
	cl.LogTransformStart(foo, "/Applications/Foo.app/Contents/Resources")
	cl.LogTransformComplete(foo, 90*time.Second, nil)
	cl.LogTransformComplete(foo, time.Second, errors.New("exit status 1"))

	out := buf.String()
	assert.Contains(t, out, "Foo: 2 iterations [0 2]")
	assert.Contains(t, out, "Bar: nothing to report yet")
	assert.Contains(t, out, "Foo: pruned 1 stale file\n")
	assert.Contains(t, out, "pruned flowtests/Foo/x.png")
	assert.Contains(t, out, "Foo: would prune 2 stale files")
	assert.Contains(t, out, "Report flowtests.html: 1 reported, 1 skipped, 1 pruned (0s)")
	assert.Contains(t, out, "Running transform for Foo (/Applications/Foo.app/Contents/Resources)")
	assert.Contains(t, out, "Transform for Foo complete (1m30s)")
	assert.Contains(t, out, "Transform for Foo failed after 1s: exit status 1")
}

func TestConsoleLogger_ResolvedHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSubjectResolved(models.Subject{RawName: "Foo"}, models.ArtifactSet{{Index: 0}})
	cl.LogPruned(models.Subject{RawName: "Foo"}, []string{"x.png"}, false)

	out := buf.String()
	assert.NotContains(t, out, "iteration")
	assert.NotContains(t, out, "pruned x.png")
	assert.Contains(t, out, "Foo: pruned 1 stale file")
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                                     "0s",
		5 * time.Second:                       "5s",
		time.Minute:                           "1m",
		90 * time.Second:                      "1m30s",
		2*time.Hour + 15*time.Minute:          "2h15m",
		time.Hour + time.Minute + time.Second: "1h1m1s",
		3 * time.Hour:                         "3h",
	}
	for d, want := range tests {
		assert.Equal(t, want, formatDuration(d))
	}
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiLogger(NewConsoleLogger(&a, "info"), nil, NewConsoleLogger(&b, "info"))

	m.LogInfo("hello")
	m.LogSubjectSkipped(models.Subject{RawName: "Foo"})

	assert.Equal(t, 2, strings.Count(a.String(), "\n"))
	assert.Equal(t, a.String(), b.String())
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.LogInfo("x")
	l.LogTransformComplete(models.Subject{}, 0, nil)
}
