// Package compro is the content service behind the Digital Mahadata Prima
// company-profile site, built with Go, Echo, and MongoDB.
// It owns the content collections (pages, portfolio, services, about,
// footer, media, users) and serves the JSON API the frontend consumes,
// together with editor authentication, media upload, a sitemap, and
// lightweight page-view analytics.
package compro

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digitalmahadata/compro/analytics"
)

// App is the central application. It wires together the store, cache,
// handlers, middleware, and the analytics sidecar.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  Store
	Cache  *SiteCache

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	degraded       bool // true when running on the in-memory store
	initialized    bool
	stopFns        []func()
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	defer a.stop()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Init prepares the App without starting the server: validates config,
// connects the store (or falls back to the in-memory store), and installs
// middleware and routes. Exposed so tests and embedders can drive the Echo
// instance directly.
func (a *App) Init(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("compro: SessionSecret is required")
	}

	if a.Store == nil {
		if a.Config.MongoURI == "" {
			// No database configured: serve from memory so the site still
			// renders, and surface that through the status endpoints.
			a.Store = NewMemStore()
			a.degraded = true
		} else {
			connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			store, err := NewMongoStore(connectCtx, a.Config.MongoURI, a.Config.MongoDatabase)
			if err != nil {
				return fmt.Errorf("compro: init store: %w", err)
			}
			a.Store = store
		}
	}

	a.Cache = NewSiteCache(a.Store, a.Config.SitemapCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	stopLimiter := a.loginLimiter.StartCleanup(5 * time.Minute)
	a.stopFns = append(a.stopFns, stopLimiter)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("compro: init analytics: %w", err)
		}
		a.analyticsStore = store
		a.stopFns = append(a.stopFns, store.StartCleanupScheduler(365, 24*time.Hour))
		if a.degraded {
			a.noteDegraded("store", "running on in-memory store, no MongoDB configured")
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/api/health", a.handleHealth)
	e.GET("/api/status", a.handleStatus)
	e.GET("/status", a.handleStatusPage)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/robots.txt", a.handleRobots)

	// Public content API.
	e.GET("/api/about", a.handleAboutGet)
	e.GET("/api/footer", a.handleFooterGet)
	e.GET("/api/pages", a.handlePagesGet)
	e.GET("/api/portfolio", a.handlePortfolioList)
	e.GET("/api/portfolio/:slug", a.handlePortfolioGet)
	e.GET("/api/services", a.handleServicesGet)
	e.GET("/api/media", a.handleMediaList)
	e.Static("/media", a.Config.UploadsDir)

	// Auth.
	e.POST("/api/auth/login", a.handleLogin)
	e.POST("/api/auth/logout", a.handleLogout)
	e.GET("/api/auth/me", a.handleMe)

	// Editor mutations: session required.
	edit := e.Group("", a.requireEditor)
	edit.PUT("/api/about", a.handleAboutUpsert)
	edit.POST("/api/footer", a.handleFooterCreate)
	edit.PUT("/api/footer", a.handleFooterUpsert)
	edit.POST("/api/pages", a.handlePageCreate)
	edit.POST("/api/portfolio", a.handlePortfolioCreate)
	edit.PUT("/api/portfolio/:slug", a.handlePortfolioUpdate)
	edit.PATCH("/api/portfolio/:slug", a.handlePortfolioPatch)
	edit.DELETE("/api/portfolio/:slug", a.handlePortfolioDelete)
	edit.POST("/api/services", a.handleServiceCreate)
	edit.POST("/api/media", a.handleMediaUpload)
	edit.DELETE("/api/media/:id", a.handleMediaDelete)

	// Analytics beacon + editor summary.
	if a.analyticsStore != nil {
		e.POST("/api/analytics/view", a.handleAnalyticsView)
		edit.GET("/api/analytics/summary", a.handleAnalyticsSummary)
	}
}

func (a *App) stop() {
	for _, fn := range a.stopFns {
		fn()
	}
	a.stopFns = nil
}

// Close cleans up resources. Call when the app is shutting down.
func (a *App) Close() error {
	a.stop()
	if a.Store != nil {
		if err := a.Store.Close(context.Background()); err != nil {
			return err
		}
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

// noteDegraded records a degraded-mode event when analytics is enabled.
func (a *App) noteDegraded(source, detail string) {
	if a.analyticsStore == nil {
		return
	}
	if err := a.analyticsStore.RecordDegradedEvent(source, detail); err != nil {
		a.Echo.Logger.Warnf("record degraded event: %v", err)
	}
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/auth/\n\nSitemap: %s\n", a.buildURL("/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("compro: required environment variable %s is not set", key)
	}
	return v
}
