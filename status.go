package compro

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/digitalmahadata/compro/analytics"
)

// statusReport is the operator-facing health snapshot. Mode is "degraded"
// when the app is serving from the in-memory store instead of MongoDB.
type statusReport struct {
	Mode           string                   `json:"mode"`
	Store          string                   `json:"store"`
	PublishedPages int                      `json:"publishedPages"`
	PortfolioItems int                      `json:"portfolioItems"`
	DegradedEvents int                      `json:"degradedEvents,omitempty"`
	LastDegraded   *analytics.DegradedEvent `json:"lastDegraded,omitempty"`
	Timestamp      string                   `json:"timestamp"`
}

func (a *App) statusReport(ctx context.Context) (*statusReport, error) {
	r := &statusReport{
		Mode:      "ok",
		Store:     "mongodb",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if _, ok := a.Store.(*MemStore); ok {
		r.Store = "memory"
	}
	if a.degraded {
		r.Mode = "degraded"
	}

	pages, portfolio, err := a.Cache.Content(ctx)
	if err != nil {
		return nil, err
	}
	r.PublishedPages = len(pages)
	r.PortfolioItems = len(portfolio)

	if a.analyticsStore != nil {
		sum, err := a.analyticsStore.GetSummary(time.Now().AddDate(0, 0, -7), time.Now())
		if err != nil {
			return nil, err
		}
		r.DegradedEvents = sum.DegradedEvents
		r.LastDegraded = sum.LastDegraded
	}
	return r, nil
}

func (a *App) handleStatus(c echo.Context) error {
	r, err := a.statusReport(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (a *App) handleStatusPage(c echo.Context) error {
	r, err := a.statusReport(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, statusPage(a.Config.Name, r))
}

// statusPage renders the minimal operator status page.
func statusPage(siteName string, r *statusReport) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		badge := `<span style="color:green">OK</span>`
		if r.Mode == "degraded" {
			badge = `<span style="color:#b45309">DEGRADED</span>`
		}
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%[1]s status</title></head>
<body style="font-family:sans-serif;max-width:40rem;margin:2rem auto">
<h1>%[1]s</h1>
<p>Mode: %[2]s (store: %[3]s)</p>
<ul>
<li>Published pages: %[4]d</li>
<li>Portfolio items: %[5]d</li>
<li>Degraded events (7d): %[6]d</li>
</ul>`,
			html.EscapeString(siteName), badge, html.EscapeString(r.Store),
			r.PublishedPages, r.PortfolioItems, r.DegradedEvents)
		if err != nil {
			return err
		}
		if r.LastDegraded != nil {
			_, err = fmt.Fprintf(w, "<p>Last fallback served: %s (%s)</p>",
				html.EscapeString(r.LastDegraded.Source),
				r.LastDegraded.Timestamp.Format("2006-01-02 15:04:05"))
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "<p><small>%s</small></p>\n</body>\n</html>\n", r.Timestamp)
		return err
	})
}
