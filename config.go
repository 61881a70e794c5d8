package compro

import "time"

// SiteConfig holds all configuration for the content service.
type SiteConfig struct {
	Name string // Site name (default "Digital Mahadata Prima")
	URL  string // Canonical public URL (default "http://localhost:3000")

	Addr          string // Listen address (default ":3000")
	MongoURI      string // MongoDB connection string; empty selects the in-memory store
	MongoDatabase string // Database name (default "dmp-compro")

	UploadsDir string // Directory for uploaded media files (default "media")

	AnalyticsEnabled      bool   // Enable the analytics store (default used by cmd: true)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true behind HTTPS

	SitemapCacheTTL time.Duration // Published-content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Digital Mahadata Prima"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "dmp-compro"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "media"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.SitemapCacheTTL == 0 {
		c.SitemapCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore sets the content store explicitly, bypassing the MongoURI-based
// selection in Start. Used by tests and embedders.
func WithStore(s Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
