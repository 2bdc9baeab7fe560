package models

import "sort"

// SizeKeys labels metric rows in priority order. The order is not numeric:
// the first N keys are taken, then sorted descending.
var SizeKeys = []int{16, 32, 128, 512, 256}

// MetricTuple holds the four numbers parsed from one log line
type MetricTuple [4]float64

// MetricEntry is one size key with its tuple
type MetricEntry struct {
	Key   int
	Value MetricTuple
}

// MetricTable is an ordered mapping from size key to tuple
type MetricTable []MetricEntry

// SortedByKey returns a copy of the table ordered by ascending key
func (t MetricTable) SortedByKey() MetricTable {
	sorted := make(MetricTable, len(t))
	copy(sorted, t)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return sorted
}

// SubjectMetrics pairs a subject name with its metric table
type SubjectMetrics struct {
	Subject string
	Table   MetricTable
}

// Metrics accumulates metric tables across subjects in insertion order.
// A later Set for the same subject replaces the earlier table in place.
type Metrics struct {
	entries []SubjectMetrics
	index   map[string]int
}

// NewMetrics creates an empty Metrics
func NewMetrics() *Metrics {
	return &Metrics{index: make(map[string]int)}
}

// Set records the table for subject
func (m *Metrics) Set(subject string, table MetricTable) {
	if i, ok := m.index[subject]; ok {
		m.entries[i].Table = table
		return
	}
	m.index[subject] = len(m.entries)
	m.entries = append(m.entries, SubjectMetrics{Subject: subject, Table: table})
}

// Len returns the number of subjects recorded
func (m *Metrics) Len() int {
	return len(m.entries)
}

// Entries returns the recorded subjects in insertion order
func (m *Metrics) Entries() []SubjectMetrics {
	out := make([]SubjectMetrics, len(m.entries))
	copy(out, m.entries)
	return out
}
