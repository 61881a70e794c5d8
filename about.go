package compro

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAboutGet(c echo.Context) error {
	about, err := a.Store.GetAbout(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if a.degraded {
				a.noteDegraded("about", "served built-in about payload")
				return c.JSON(http.StatusOK, DefaultAbout())
			}
			return jsonError(c, http.StatusNotFound, "No about data found")
		}
		return err
	}
	return c.JSON(http.StatusOK, about)
}

func (a *App) handleAboutUpsert(c echo.Context) error {
	var about About
	if err := c.Bind(&about); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if about.Title == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: title")
	}

	if err := a.Store.UpsertAbout(c.Request().Context(), &about); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}
