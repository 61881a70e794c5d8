package compro

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type viewBeacon struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// handleAnalyticsView records a page view sent by the frontend beacon.
// Pages whose analytics settings disable tracking are dropped silently.
func (a *App) handleAnalyticsView(c echo.Context) error {
	var b viewBeacon
	if err := c.Bind(&b); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request data")
	}
	b.Path = strings.TrimSpace(b.Path)
	if b.Path == "" || !strings.HasPrefix(b.Path, "/") {
		return jsonError(c, http.StatusBadRequest, "Missing required field: path")
	}

	slug := strings.Trim(b.Path, "/")
	if slug == "" {
		slug = "home"
	}
	pages, _, err := a.Store.ListPages(c.Request().Context(), PageFilter{Slug: slug}, 1)
	if err != nil {
		return err
	}
	if len(pages) > 0 && !pages[0].Analytics.TrackPageViews {
		return c.NoContent(http.StatusNoContent)
	}

	if err := a.analyticsStore.RecordPageView(b.Path, b.Referrer); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAnalyticsSummary(c echo.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Invalid from date")
		}
		from = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Invalid to date")
		}
		// Include the whole end day.
		to = t.AddDate(0, 0, 1)
	}

	sum, err := a.analyticsStore.GetSummary(from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
