package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion cycle
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	PlayersFetched   int
	TeamsFetched     int
	SnapshotsWritten int
	LinesFetched     int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.PlayersFetched = 0
	m.TeamsFetched = 0
	m.SnapshotsWritten = 0
	m.LinesFetched = 0
	m.Errors = 0
}

// RecordPlayers adds fetched player rows
func (m *IngestionMetrics) RecordPlayers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersFetched += n
}

// RecordTeams adds fetched team rows
func (m *IngestionMetrics) RecordTeams(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamsFetched += n
}

// RecordSnapshot increments the written snapshot count
func (m *IngestionMetrics) RecordSnapshot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotsWritten++
}

// RecordLines adds fetched odds lines
func (m *IngestionMetrics) RecordLines(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinesFetched += n
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Players=%d, Teams=%d, Snapshots=%d, Lines=%d, Errors=%d, Duration=%v}",
		m.PlayersFetched,
		m.TeamsFetched,
		m.SnapshotsWritten,
		m.LinesFetched,
		m.Errors,
		m.Duration,
	)
}
