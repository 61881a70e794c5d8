package compro

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Allow(ip) {
		c.Logger().Warnf("login rate limit hit for %s", ip)
		return jsonError(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request data")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := a.Store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := setEditorSession(c, user); err != nil {
		return err
	}
	a.loginLimiter.Reset(ip)

	return c.JSON(http.StatusOK, echo.Map{
		"email": user.Email,
		"role":  user.Role,
	})
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearEditorSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

func (a *App) handleMe(c echo.Context) error {
	if !IsEditor(c) {
		return jsonError(c, http.StatusUnauthorized, "Authentication required")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"email": SessionEmail(c),
		"role":  SessionRole(c),
	})
}
