package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLogStatus is the status recorded when an arrival is logged without one.
const DefaultLogStatus = "נכנס"

// LogEntry records a single truck arrival at the checkpoint.
type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Org       string    `json:"org"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
}

// DailySummary aggregates the log entries of one local calendar day.
type DailySummary struct {
	Date  string         `json:"date"` // "2006-01-02"
	Total int            `json:"total"`
	ByOrg map[string]int `json:"by_org"`
}
