package report

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/flowtests/internal/artifact"
	"github.com/harrison/flowtests/internal/filelock"
	"github.com/harrison/flowtests/internal/metrics"
	"github.com/harrison/flowtests/internal/models"
)

// LogFileName is the transform log inside each subject directory
const LogFileName = "log.txt"

// Logger receives progress events from a report pass
type Logger interface {
	LogSubjectResolved(subject models.Subject, set models.ArtifactSet)
	LogSubjectSkipped(subject models.Subject)
	LogPruned(subject models.Subject, paths []string, dryRun bool)
	LogReportWritten(summary models.RunSummary)
}

// Document is one fully built report
type Document struct {
	Elements []string        // Header, subject fragments and metrics dump, in order
	Metrics  *models.Metrics // RawName -> MetricTable for every reported subject
}

// Render joins the document's elements into the final HTML text
func (d *Document) Render() string {
	return strings.Join(d.Elements, "\n")
}

// Aggregator builds and writes the report for a subject list. It holds no
// state between passes, so Emit can be called any number of times per run.
type Aggregator struct {
	Store        artifact.Store
	ArtifactsDir string // Parent of the per-subject directories
	ReportPath   string // Output HTML file
	Intro        string // Optional HTML placed after the script header
	DryRun       bool   // List stale files instead of deleting them
	Logger       Logger
}

// SubjectDir returns the artifact directory for subject
func (a *Aggregator) SubjectDir(subject models.Subject) string {
	return filepath.Join(a.ArtifactsDir, subject.RawName)
}

// Build resolves, prunes and renders every subject in list order. Subjects
// with no iterations are skipped entirely and contribute neither a fragment
// nor a metrics entry.
func (a *Aggregator) Build(subjects []models.Subject) (*Document, models.RunSummary, error) {
	start := time.Now()
	summary := models.RunSummary{Subjects: len(subjects), ReportPath: a.ReportPath}

	doc := &Document{
		Elements: []string{rolloverScript},
		Metrics:  models.NewMetrics(),
	}
	if a.Intro != "" {
		doc.Elements = append(doc.Elements, a.Intro)
	}

	for _, subject := range subjects {
		dir := a.SubjectDir(subject)

		set, err := artifact.Resolve(a.Store, dir)
		if err != nil {
			return nil, summary, fmt.Errorf("resolve %s: %w", subject.RawName, err)
		}

		stale, err := artifact.Prune(a.Store, dir, set, artifact.PruneOptions{DryRun: a.DryRun})
		if err != nil {
			return nil, summary, fmt.Errorf("prune %s: %w", subject.RawName, err)
		}
		summary.Pruned += len(stale)
		if len(stale) > 0 && a.Logger != nil {
			a.Logger.LogPruned(subject, stale, a.DryRun)
		}

		if len(set) == 0 {
			summary.Skipped++
			summary.SkippedList = append(summary.SkippedList, subject.RawName)
			if a.Logger != nil {
				a.Logger.LogSubjectSkipped(subject)
			}
			continue
		}
		if a.Logger != nil {
			a.Logger.LogSubjectResolved(subject, set)
		}

		logPath := filepath.Join(dir, LogFileName)
		parsed, err := metrics.ParseFile(logPath, len(set))
		if err != nil {
			return nil, summary, fmt.Errorf("parse log for %s: %w", subject.RawName, err)
		}

		doc.Elements = append(doc.Elements, RenderSubject(SubjectFragment{
			Subject:  subject,
			Set:      a.linkSet(set),
			LogLines: parsed.Lines,
			LogPath:  a.link(logPath),
		})...)
		doc.Metrics.Set(subject.RawName, parsed.Table)
		summary.Reported++
	}

	doc.Elements = append(doc.Elements, "<pre>"+html.EscapeString(FormatMetrics(doc.Metrics))+"</pre>")
	summary.Duration = time.Since(start)

	return doc, summary, nil
}

// Emit builds the report and overwrites ReportPath with it. The write holds
// a lock beside the report and replaces the file atomically, so a reader or
// a concurrent run never observes a partial document.
func (a *Aggregator) Emit(subjects []models.Subject) (*Document, models.RunSummary, error) {
	doc, summary, err := a.Build(subjects)
	if err != nil {
		return nil, summary, err
	}

	if err := filelock.LockAndWrite(a.ReportPath, []byte(doc.Render())); err != nil {
		return nil, summary, fmt.Errorf("write report: %w", err)
	}

	if a.Logger != nil {
		a.Logger.LogReportWritten(summary)
	}
	return doc, summary, nil
}

// link rewrites path relative to the report's directory so the page works
// when opened from disk.
func (a *Aggregator) link(path string) string {
	base := filepath.Dir(a.ReportPath)
	if rel, err := filepath.Rel(base, path); err == nil {
		path = rel
	}
	return filepath.ToSlash(path)
}

func (a *Aggregator) linkSet(set models.ArtifactSet) models.ArtifactSet {
	linked := make(models.ArtifactSet, len(set))
	for i, it := range set {
		linked[i] = models.Iteration{
			Index:           it.Index,
			ComparisonImage: a.link(it.ComparisonImage),
			OutputImage:     a.link(it.OutputImage),
		}
	}
	return linked
}
