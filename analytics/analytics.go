// Package analytics records page views and degraded-mode events in a local
// SQLite database, keeping the main content store free of telemetry.
package analytics

import "time"

// DegradedEvent marks a request that was answered with fallback content
// instead of stored data.
type DegradedEvent struct {
	Source    string    `json:"source"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PageStat aggregates views per path.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// Summary is the aggregate the editor dashboard reads.
type Summary struct {
	Period         string         `json:"period"`
	TotalViews     int            `json:"totalViews"`
	TopPages       []PageStat     `json:"topPages"`
	DegradedEvents int            `json:"degradedEvents"`
	LastDegraded   *DegradedEvent `json:"lastDegraded,omitempty"`
}
