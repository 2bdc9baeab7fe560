package models

import "time"

// RunSummary counts what a single report pass did
type RunSummary struct {
	Subjects    int           // Subjects in the list
	Reported    int           // Subjects with a non-empty artifact set
	Skipped     int           // Subjects with nothing to report yet
	Pruned      int           // Stale files removed (or listed, in dry-run)
	ReportPath  string        // Where the document was written
	Duration    time.Duration // Wall time of the pass
	SkippedList []string      // RawNames of skipped subjects
}
