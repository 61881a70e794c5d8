package compro

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) handleServicesGet(c echo.Context) error {
	f := ServiceFilter{Status: ServiceStatusActive}

	if s := c.QueryParam("status"); s != "" {
		if !ValidServiceStatus(s) {
			return jsonError(c, http.StatusBadRequest, "Invalid status filter")
		}
		f.Status = s
	}
	if c.QueryParam("featured") == "true" {
		f.Featured = true
	}
	// An unparseable or non-positive limit falls back to the default page
	// size rather than failing the request.
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			f.Limit = n
		}
	}

	services, err := a.Store.ListServices(c.Request().Context(), f)
	if err != nil {
		return err
	}
	if len(services) == 0 && a.degraded {
		if fallback := filterServices(DefaultServices(), f); len(fallback) > 0 {
			a.noteDegraded("services", "served built-in service list")
			services = fallback
		}
	}
	if services == nil {
		services = []Service{}
	}
	return c.JSON(http.StatusOK, services)
}

// filterServices applies the same status/featured/limit semantics as the
// store query, so fallback content never leaks past the request's filters.
func filterServices(list []Service, f ServiceFilter) []Service {
	var out []Service
	for _, s := range list {
		if s.Status != f.Status {
			continue
		}
		if f.Featured && !s.Featured {
			continue
		}
		out = append(out, s)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func (a *App) handleServiceCreate(c echo.Context) error {
	var s Service
	if err := c.Bind(&s); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if s.Title == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: title")
	}
	if s.Description == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: description")
	}

	applyServiceDefaults(&s)

	if s.Category != "" && !ValidServiceCategory(s.Category) {
		return jsonError(c, http.StatusBadRequest, "Invalid category")
	}
	if !ValidServiceStatus(s.Status) {
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	}

	if err := a.Store.CreateService(c.Request().Context(), &s); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}
