package compro

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// newTestApp wires a full App on the in-memory store with routes and
// middleware installed, so tests exercise the same stack as production.
func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := SiteConfig{
		SessionSecret: "test-secret",
		UploadsDir:    t.TempDir(),
	}
	a := New(cfg, WithStore(NewMemStore()))
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("init app: %v", err)
	}
	return a
}

func doJSON(t *testing.T, a *App, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func doRaw(t *testing.T, a *App, method, path, contentType string, body []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// loginEditor creates an editor account and logs in, returning the session
// cookies for authenticated requests.
func loginEditor(t *testing.T, a *App) []*http.Cookie {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := User{Name: "Editor", Email: "editor@test.local", Password: string(hash), Role: RoleEditor}
	if err := a.Store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rec := doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    u.Email,
		"password": "s3cret-pass",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}
