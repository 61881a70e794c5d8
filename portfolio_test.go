package compro

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
)

func createPortfolio(t *testing.T, a *App, cookies []*http.Cookie, body map[string]any) PortfolioItem {
	t.Helper()
	rec := doJSON(t, a, http.MethodPost, "/api/portfolio", body, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create portfolio: %d %s", rec.Code, rec.Body.String())
	}
	var item PortfolioItem
	decodeBody(t, rec, &item)
	return item
}

func TestPortfolioCreateReportsFirstMissingField(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	cases := []struct {
		body map[string]any
		want string
	}{
		{map[string]any{}, "Missing required field: title"},
		{map[string]any{"title": "X"}, "Missing required field: description"},
		{map[string]any{"title": "X", "description": "d"}, "Missing required field: client"},
		{map[string]any{"title": "X", "description": "d", "client": "c"}, "Missing required field: category"},
	}
	for _, tc := range cases {
		rec := doJSON(t, a, http.MethodPost, "/api/portfolio", tc.body, cookies)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d for %v", rec.Code, tc.body)
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Error != tc.want {
			t.Errorf("error = %q, want %q", resp.Error, tc.want)
		}
	}
}

func TestPortfolioCreateAndLookup(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title":       "E-Learning Platform",
		"description": "LMS for schools",
		"client":      "EduCorp",
		"category":    "web",
	})
	if item.Status != PortfolioStatusCompleted {
		t.Errorf("Status = %q, want default completed", item.Status)
	}
	if rec := doJSON(t, a, http.MethodPost, "/api/portfolio", map[string]any{
		"title": "X", "description": "d", "client": "c", "category": "edtech",
	}, cookies); rec.Code != http.StatusBadRequest {
		// edtech is a service category, not a portfolio one
		t.Fatalf("category check: status = %d, want 400", rec.Code)
	}
}

func TestPortfolioSlugOrIDResolution(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title":       "AI Chatbot",
		"description": "Conversational support bot",
		"client":      "Acme",
		"category":    "ai",
	})
	if item.Slug != "ai-chatbot" {
		t.Fatalf("Slug = %q", item.Slug)
	}

	bySlug := doJSON(t, a, http.MethodGet, "/api/portfolio/ai-chatbot", nil, nil)
	if bySlug.Code != http.StatusOK {
		t.Fatalf("get by slug: %d", bySlug.Code)
	}
	byID := doJSON(t, a, http.MethodGet, "/api/portfolio/"+item.ID.Hex(), nil, nil)
	if byID.Code != http.StatusOK {
		t.Fatalf("get by id: %d", byID.Code)
	}

	miss := doJSON(t, a, http.MethodGet, "/api/portfolio/unknown-project", nil, nil)
	if miss.Code != http.StatusNotFound {
		t.Fatalf("miss: status = %d, want 404", miss.Code)
	}
	var resp errorResponse
	decodeBody(t, miss, &resp)
	if resp.Error != "Portfolio item not found" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestPortfolioHexSlugResolvesAsID(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	// A slug that happens to be 24 hex characters is unreachable: the
	// segment is always treated as an id.
	createPortfolio(t, a, cookies, map[string]any{
		"title":       "Hex Named",
		"slug":        "abcdefabcdefabcdefabcdef",
		"description": "d",
		"client":      "c",
		"category":    "web",
	})

	rec := doJSON(t, a, http.MethodGet, "/api/portfolio/abcdefabcdefabcdefabcdef", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (hex segment must resolve as id)", rec.Code)
	}
}

func TestPortfolioDuplicateSlugConflicts(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	createPortfolio(t, a, cookies, map[string]any{
		"title": "First", "description": "d", "client": "c", "category": "web",
	})
	rec := doJSON(t, a, http.MethodPost, "/api/portfolio", map[string]any{
		"title": "Second", "slug": "first", "description": "d", "client": "c", "category": "web",
	}, cookies)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	// The conflicting create must not have persisted anything.
	list := doJSON(t, a, http.MethodGet, "/api/portfolio", nil, nil)
	var envelope struct {
		Docs      []PortfolioItem `json:"docs"`
		TotalDocs int             `json:"totalDocs"`
	}
	decodeBody(t, list, &envelope)
	if envelope.TotalDocs != 1 {
		t.Fatalf("totalDocs = %d, want 1", envelope.TotalDocs)
	}
}

func TestPortfolioUpdateSlugConflictExcludesSelf(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	first := createPortfolio(t, a, cookies, map[string]any{
		"title": "First", "description": "d", "client": "c", "category": "web",
	})
	createPortfolio(t, a, cookies, map[string]any{
		"title": "Second", "description": "d", "client": "c", "category": "web",
	})

	// Re-submitting its own slug is not a conflict.
	rec := doJSON(t, a, http.MethodPut, "/api/portfolio/"+first.Slug, map[string]any{
		"slug":  "first",
		"title": "First Updated",
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("self-slug update: %d %s", rec.Code, rec.Body.String())
	}
	var updated PortfolioItem
	decodeBody(t, rec, &updated)
	if updated.Title != "First Updated" {
		t.Errorf("Title = %q", updated.Title)
	}

	// Taking another document's slug is.
	rec = doJSON(t, a, http.MethodPut, "/api/portfolio/first", map[string]any{
		"slug": "second",
	}, cookies)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestPortfolioPatchMultipartPayload(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title": "Patchable", "description": "d", "client": "c", "category": "web",
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("_payload", `{"featured": true, "status": "in-progress"}`); err != nil {
		t.Fatal(err)
	}
	w.Close()

	rec := doRaw(t, a, http.MethodPatch, "/api/portfolio/"+item.Slug, w.FormDataContentType(), buf.Bytes(), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rec.Code, rec.Body.String())
	}
	var updated PortfolioItem
	decodeBody(t, rec, &updated)
	if !updated.Featured || updated.Status != PortfolioStatusInProgress {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Title != "Patchable" {
		t.Errorf("untouched field changed: %q", updated.Title)
	}
}

func TestPortfolioPatchEmptyBodyIsNoOp(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title": "Stable", "description": "d", "client": "c", "category": "web",
	})

	rec := doRaw(t, a, http.MethodPatch, "/api/portfolio/"+item.Slug, "", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	var got PortfolioItem
	decodeBody(t, rec, &got)
	if got.Title != "Stable" || got.Slug != "stable" {
		t.Fatalf("document changed by empty patch: %+v", got)
	}
}

func TestPortfolioPatchMalformedPayload(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title": "Fragile", "description": "d", "client": "c", "category": "web",
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("_payload", `{"featured": tru`); err != nil {
		t.Fatal(err)
	}
	w.Close()

	rec := doRaw(t, a, http.MethodPatch, "/api/portfolio/"+item.Slug, w.FormDataContentType(), buf.Bytes(), cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Error != "Invalid request data" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Details == "" {
		t.Error("expected parse diagnostics in details")
	}
}

func TestPortfolioDelete(t *testing.T) {
	a := newTestApp(t)
	cookies := loginEditor(t, a)

	item := createPortfolio(t, a, cookies, map[string]any{
		"title": "Doomed", "description": "d", "client": "c", "category": "web",
	})

	rec := doJSON(t, a, http.MethodDelete, "/api/portfolio/"+item.Slug, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if resp.Message != "Portfolio item deleted successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	if rec := doJSON(t, a, http.MethodGet, "/api/portfolio/doomed", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("after delete: %d, want 404", rec.Code)
	}
	if rec := doJSON(t, a, http.MethodDelete, "/api/portfolio/doomed", nil, cookies); rec.Code != http.StatusNotFound {
		t.Fatalf("double delete: %d, want 404", rec.Code)
	}
}
