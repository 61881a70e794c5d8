package compro

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const pageListLimit = 100

func (a *App) handlePagesGet(c echo.Context) error {
	f := PageFilter{
		PageType: c.QueryParam("pageType"),
		Status:   c.QueryParam("status"),
		Slug:     c.QueryParam("slug"),
	}
	if c.QueryParam("showInMainMenu") == "true" {
		f.ShowInMainMenu = true
	}

	// Unknown filter values are applied as-is and simply match nothing.
	pages, total, err := a.Store.ListPages(c.Request().Context(), f, pageListLimit)
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []Page{}
	}

	// A slug query resolves a single page. A miss still answers 200 with
	// an empty envelope so clients can distinguish "no such page" from a
	// broken route.
	if f.Slug != "" {
		if len(pages) > 0 {
			return c.JSON(http.StatusOK, pages[0])
		}
		return c.JSON(http.StatusOK, echo.Map{
			"pages":      []Page{},
			"totalPages": 0,
			"totalDocs":  0,
		})
	}

	totalPages := (total + pageListLimit - 1) / pageListLimit
	return c.JSON(http.StatusOK, echo.Map{
		"pages":      pages,
		"totalPages": totalPages,
		"totalDocs":  total,
	})
}

func (a *App) handlePageCreate(c echo.Context) error {
	var p Page
	if err := c.Bind(&p); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if p.Title == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: title")
	}

	applyPageDefaults(&p)

	if !ValidPageType(p.PageType) {
		return jsonError(c, http.StatusBadRequest, "Invalid pageType")
	}
	if !ValidPageStatus(p.Status) {
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	}
	for _, g := range p.Analytics.ConversionGoals {
		if !ValidGoalType(g.GoalType) {
			return jsonError(c, http.StatusBadRequest, "Invalid conversion goal type: "+g.GoalType)
		}
	}

	if err := a.Store.CreatePage(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return jsonError(c, http.StatusConflict, "A page with this slug already exists")
		}
		return err
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, p)
}
