package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSummarize(t *testing.T) {
	s := newTestStore(t)

	views := []struct{ path, referrer string }{
		{"/", ""},
		{"/", "https://google.com"},
		{"/portfolio/crm", ""},
	}
	for _, v := range views {
		if err := s.RecordPageView(v.path, v.referrer); err != nil {
			t.Fatalf("RecordPageView failed: %v", err)
		}
	}
	if err := s.RecordDegradedEvent("footer", "served built-in footer payload"); err != nil {
		t.Fatalf("RecordDegradedEvent failed: %v", err)
	}

	sum, err := s.GetSummary(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", sum.TotalViews)
	}
	if len(sum.TopPages) == 0 || sum.TopPages[0].Path != "/" || sum.TopPages[0].Views != 2 {
		t.Errorf("TopPages = %+v", sum.TopPages)
	}
	if sum.DegradedEvents != 1 {
		t.Errorf("DegradedEvents = %d, want 1", sum.DegradedEvents)
	}
	if sum.LastDegraded == nil || sum.LastDegraded.Source != "footer" {
		t.Errorf("LastDegraded = %+v", sum.LastDegraded)
	}
}

func TestSummaryEmptyWindow(t *testing.T) {
	s := newTestStore(t)

	sum, err := s.GetSummary(time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.TotalViews != 0 || sum.DegradedEvents != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
	if sum.LastDegraded != nil {
		t.Errorf("LastDegraded = %+v, want nil", sum.LastDegraded)
	}
}

func TestCleanupOld(t *testing.T) {
	s := newTestStore(t)

	// Insert an old row directly; RecordPageView always stamps now.
	old := time.Now().UTC().AddDate(0, 0, -400)
	if _, err := s.db.Exec(
		"INSERT INTO page_views (path, referrer, timestamp) VALUES (?, ?, ?)",
		"/old", "", old,
	); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordPageView("/fresh", ""); err != nil {
		t.Fatal(err)
	}

	if err := s.CleanupOld(365); err != nil {
		t.Fatalf("CleanupOld failed: %v", err)
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM page_views").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows after cleanup = %d, want 1", n)
	}
}
