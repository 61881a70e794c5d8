package compro

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const portfolioListLimit = 50

func (a *App) handlePortfolioList(c echo.Context) error {
	items, total, err := a.Store.ListPortfolio(c.Request().Context(), portfolioListLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"docs":      items,
		"totalDocs": total,
	})
}

func (a *App) handlePortfolioCreate(c echo.Context) error {
	var p PortfolioItem
	if err := c.Bind(&p); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}

	applyPortfolioDefaults(&p)

	for _, f := range []struct {
		name, value string
	}{
		{"title", p.Title},
		{"slug", p.Slug},
		{"description", p.Description},
		{"client", p.Client},
		{"category", p.Category},
	} {
		if strings.TrimSpace(f.value) == "" {
			return jsonError(c, http.StatusBadRequest, "Missing required field: "+f.name)
		}
	}
	if !ValidPortfolioCategory(p.Category) {
		return jsonError(c, http.StatusBadRequest, "Invalid category")
	}
	if !ValidPortfolioStatus(p.Status) {
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	}

	ctx := c.Request().Context()
	taken, err := a.Store.PortfolioSlugInUse(ctx, p.Slug, primitive.NilObjectID)
	if err != nil {
		return err
	}
	if taken {
		return jsonError(c, http.StatusConflict, "A portfolio item with this slug already exists")
	}

	if err := a.Store.CreatePortfolio(ctx, &p); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return jsonError(c, http.StatusConflict, "A portfolio item with this slug already exists")
		}
		return err
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, p)
}

// resolvePortfolio looks up the :slug route param. A 24-char hex value is
// always treated as an id, never as a slug, so a slug that happens to look
// like an id is unreachable by design of the id format.
func (a *App) resolvePortfolio(c echo.Context) (*PortfolioItem, error) {
	ref := c.Param("slug")
	ctx := c.Request().Context()

	if IsObjectIDHex(ref) {
		id, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			return nil, ErrNotFound
		}
		return a.Store.GetPortfolioByID(ctx, id)
	}
	return a.Store.GetPortfolioBySlug(ctx, ref)
}

func (a *App) handlePortfolioGet(c echo.Context) error {
	item, err := a.resolvePortfolio(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (a *App) handlePortfolioUpdate(c echo.Context) error {
	item, err := a.resolvePortfolio(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		return err
	}

	var u PortfolioUpdate
	if err := json.NewDecoder(c.Request().Body).Decode(&u); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	return a.applyPortfolioUpdate(c, item, &u)
}

// handlePortfolioPatch accepts the admin frontend's multipart form with the
// JSON document in a _payload field. An empty body is a valid empty update.
func (a *App) handlePortfolioPatch(c echo.Context) error {
	item, err := a.resolvePortfolio(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		return err
	}

	payload, err := patchPayload(c)
	if err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	if payload == "" {
		return a.applyPortfolioUpdate(c, item, &PortfolioUpdate{})
	}

	var u PortfolioUpdate
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Invalid request data", err.Error())
	}
	return a.applyPortfolioUpdate(c, item, &u)
}

// patchPayload extracts the _payload field from a multipart or urlencoded
// PATCH body. A missing field or empty body yields "".
func patchPayload(c echo.Context) (string, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if ct == "" || c.Request().ContentLength == 0 {
		return "", nil
	}
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(body)), nil
	}
	return c.FormValue("_payload"), nil
}

func (a *App) applyPortfolioUpdate(c echo.Context, item *PortfolioItem, u *PortfolioUpdate) error {
	ctx := c.Request().Context()

	if u.Category != nil && !ValidPortfolioCategory(*u.Category) {
		return jsonError(c, http.StatusBadRequest, "Invalid category")
	}
	if u.Status != nil && !ValidPortfolioStatus(*u.Status) {
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	}

	if u.Slug != nil && *u.Slug != item.Slug {
		taken, err := a.Store.PortfolioSlugInUse(ctx, *u.Slug, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return jsonError(c, http.StatusConflict, "A portfolio item with this slug already exists")
		}
	}

	updated, err := a.Store.UpdatePortfolio(ctx, item.ID, u)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		if errors.Is(err, ErrDuplicateSlug) {
			return jsonError(c, http.StatusConflict, "A portfolio item with this slug already exists")
		}
		return err
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, updated)
}

func (a *App) handlePortfolioDelete(c echo.Context) error {
	item, err := a.resolvePortfolio(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		return err
	}

	if err := a.Store.DeletePortfolio(c.Request().Context(), item.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Portfolio item not found")
		}
		return err
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"message": "Portfolio item deleted successfully"})
}
