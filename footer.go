package compro

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleFooterGet always answers with a footer. When no document exists the
// built-in default payload is served without being persisted, so the public
// site renders even against an empty database.
func (a *App) handleFooterGet(c echo.Context) error {
	footer, err := a.Store.GetFooter(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.noteDegraded("footer", "served built-in footer payload")
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data":    DefaultFooter(),
			})
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    footer,
	})
}

func (a *App) handleFooterCreate(c echo.Context) error {
	var footer Footer
	if err := c.Bind(&footer); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if footer.CompanyName == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: companyName")
	}
	if err := validateFooter(&footer); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := a.Store.CreateFooter(c.Request().Context(), &footer); err != nil {
		if errors.Is(err, ErrSingletonExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   "Footer already exists, use the update route instead",
			})
		}
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    footer,
	})
}

func (a *App) handleFooterUpsert(c echo.Context) error {
	var footer Footer
	if err := c.Bind(&footer); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if footer.CompanyName == "" {
		return jsonError(c, http.StatusBadRequest, "Missing required field: companyName")
	}
	if err := validateFooter(&footer); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := a.Store.UpsertFooter(c.Request().Context(), &footer); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    footer,
	})
}

func validateFooter(f *Footer) error {
	for _, l := range f.SocialLinks {
		if !ValidSocialPlatform(l.Platform) {
			return errors.New("Invalid social platform: " + l.Platform)
		}
	}
	if f.LogoOpacity < 0 || f.LogoOpacity > 100 {
		return errors.New("logoOpacity must be between 0 and 100")
	}
	return nil
}
