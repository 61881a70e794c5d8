package compro

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error envelope for every API failure.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

func jsonErrorDetails(c echo.Context, status int, msg, details string) error {
	return c.JSON(status, errorResponse{Error: msg, Details: details})
}

// httpErrorHandler renders every unhandled error as the JSON envelope.
// Internal errors are logged but never leak their message to the client.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(status)
		}
	}

	if status >= 500 {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		msg = "Internal server error"
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(status); err != nil {
			c.Logger().Error(err)
		}
		return
	}
	if err := c.JSON(status, errorResponse{Error: msg}); err != nil {
		c.Logger().Error(err)
	}
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Server is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
