package compro

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, portfolio, err := a.Cache.Content(c.Request().Context())
	if err != nil {
		return err
	}

	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     a.buildURL(pagePath(p)),
			LastMod: lastMod(p.UpdatedAt),
		})
	}
	for _, item := range portfolio {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     a.buildURL("/portfolio/" + item.Slug),
			LastMod: lastMod(item.UpdatedAt),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml", append([]byte(xml.Header), out...))
}

// pagePath maps a page to its public path. The home page lives at the root,
// every other page at its slug.
func pagePath(p Page) string {
	if p.PageType == PageTypeHome {
		return "/"
	}
	return "/" + p.Slug
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func (a *App) buildURL(path string) string {
	base := strings.TrimSuffix(a.Config.URL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
