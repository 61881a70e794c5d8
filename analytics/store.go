package analytics

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS degraded_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			detail TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_timestamp ON page_views(timestamp);
		CREATE INDEX IF NOT EXISTS idx_page_views_path ON page_views(path);
		CREATE INDEX IF NOT EXISTS idx_degraded_events_timestamp ON degraded_events(timestamp);
	`)
	return err
}

// RecordPageView stores a single page view.
func (s *Store) RecordPageView(path, referrer string) error {
	_, err := s.db.Exec(
		"INSERT INTO page_views (path, referrer, timestamp) VALUES (?, ?, ?)",
		path, referrer, time.Now().UTC(),
	)
	return err
}

// RecordDegradedEvent stores a fallback-content event.
func (s *Store) RecordDegradedEvent(source, detail string) error {
	_, err := s.db.Exec(
		"INSERT INTO degraded_events (source, detail, timestamp) VALUES (?, ?, ?)",
		source, detail, time.Now().UTC(),
	)
	return err
}

// GetSummary aggregates views and degraded events in [from, to].
func (s *Store) GetSummary(from, to time.Time) (*Summary, error) {
	sum := &Summary{
		Period:   from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopPages: []PageStat{},
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM page_views WHERE timestamp BETWEEN ? AND ?",
		from, to,
	).Scan(&sum.TotalViews); err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS views FROM page_views
		 WHERE timestamp BETWEEN ? AND ?
		 GROUP BY path ORDER BY views DESC LIMIT 10`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, fmt.Errorf("scan page stat: %w", err)
		}
		sum.TopPages = append(sum.TopPages, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM degraded_events WHERE timestamp BETWEEN ? AND ?",
		from, to,
	).Scan(&sum.DegradedEvents); err != nil {
		return nil, fmt.Errorf("count degraded events: %w", err)
	}

	last, err := s.LastDegradedEvent()
	if err != nil {
		return nil, err
	}
	sum.LastDegraded = last

	return sum, nil
}

// LastDegradedEvent returns the most recent degraded event, or nil if none
// has been recorded.
func (s *Store) LastDegradedEvent() (*DegradedEvent, error) {
	var ev DegradedEvent
	var detail sql.NullString
	err := s.db.QueryRow(
		"SELECT source, detail, timestamp FROM degraded_events ORDER BY timestamp DESC, id DESC LIMIT 1",
	).Scan(&ev.Source, &detail, &ev.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last degraded event: %w", err)
	}
	ev.Detail = detail.String
	return &ev, nil
}

// CleanupOld removes rows older than the retention period.
func (s *Store) CleanupOld(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	if _, err := s.db.Exec("DELETE FROM page_views WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("cleanup page_views: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM degraded_events WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("cleanup degraded_events: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop
// function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOld(retentionDays); err != nil {
					fmt.Printf("analytics cleanup error: %v\n", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
