// Command compro runs the Digital Mahadata Prima content service.
// All configuration comes from environment variables.
package main

import (
	"log"
	"strings"
	"time"

	"github.com/digitalmahadata/compro"
)

func main() {
	cfg := compro.SiteConfig{
		Name:          compro.EnvOr("SITE_NAME", "Digital Mahadata Prima"),
		URL:           strings.TrimSuffix(compro.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Addr:          compro.EnvOr("ADDR", ":3000"),
		MongoURI:      compro.EnvOr("MONGO_URI", ""),
		MongoDatabase: compro.EnvOr("MONGO_DATABASE", "dmp-compro"),
		UploadsDir:    compro.EnvOr("UPLOADS_DIR", "media"),

		AnalyticsEnabled:      !strings.EqualFold(compro.EnvOr("ANALYTICS_DISABLED", ""), "true"),
		AnalyticsDatabasePath: compro.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		SessionSecret: compro.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(compro.EnvOr("COOKIE_SECURE", ""), "true"),

		SitemapCacheTTL: 5 * time.Minute,
	}

	app := compro.New(cfg)
	defer app.Close()

	if cfg.MongoURI == "" {
		log.Println("MONGO_URI not set: serving from the in-memory store (degraded mode)")
	}

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
