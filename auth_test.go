package compro

import (
	"context"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestMutationsRequireSession(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/pages"},
		{http.MethodPost, "/api/portfolio"},
		{http.MethodPut, "/api/portfolio/some-item"},
		{http.MethodDelete, "/api/portfolio/some-item"},
		{http.MethodPost, "/api/services"},
		{http.MethodPost, "/api/footer"},
		{http.MethodPut, "/api/footer"},
		{http.MethodPut, "/api/about"},
	}
	for _, tc := range cases {
		rec := doJSON(t, a, tc.method, tc.path, map[string]any{"title": "x"}, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestApp(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	u := User{Name: "E", Email: "e@test.local", Password: string(hash), Role: RoleEditor}
	if err := a.Store.CreateUser(context.Background(), &u); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "e@test.local", "password": "wrong",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d, want 401", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@test.local", "password": "right",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: %d, want 401", rec.Code)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	me := doJSON(t, a, http.MethodGet, "/api/auth/me", nil, cookies)
	if me.Code != http.StatusOK {
		t.Fatalf("me: %d", me.Code)
	}
	var who struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeBody(t, me, &who)
	if who.Email != "editor@test.local" || who.Role != RoleEditor {
		t.Fatalf("me = %+v", who)
	}

	logout := doJSON(t, a, http.MethodPost, "/api/auth/logout", nil, cookies)
	if logout.Code != http.StatusOK {
		t.Fatalf("logout: %d", logout.Code)
	}
	expired := logout.Result().Cookies()

	me = doJSON(t, a, http.MethodGet, "/api/auth/me", nil, expired)
	if me.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: %d, want 401", me.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	a := newTestApp(t)

	var last int
	for i := 0; i < 6; i++ {
		rec := doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "nobody@test.local", "password": "guess",
		}, nil)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after repeated attempts", last)
	}
}
