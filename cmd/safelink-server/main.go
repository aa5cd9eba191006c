package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/fdciabdul/go-safelink/pkg/safelink/auth"
	"github.com/fdciabdul/go-safelink/pkg/safelink/cache"
	"github.com/fdciabdul/go-safelink/pkg/safelink/config"
	"github.com/fdciabdul/go-safelink/pkg/safelink/database"
	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
	"github.com/fdciabdul/go-safelink/pkg/safelink/redirect"
	"github.com/fdciabdul/go-safelink/pkg/safelink/settings"
	"github.com/fdciabdul/go-safelink/pkg/safelink/shortcode"
	"github.com/fdciabdul/go-safelink/pkg/safelink/stats"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	settingsStore := settings.NewStore(db)
	if err := settingsStore.Seed(); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	// Redis is optional; without it the redirect path reads straight from
	// the database.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		log.Println("Link cache enabled")
	}
	linkCache := cache.New(rdb, logger)

	linkStore := links.NewStore(db, linkCache)

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Admin API behind the shared token
	api := r.Group("/api")
	api.Use(auth.TokenAuth(cfg.AdminToken))
	{
		links.NewHandler(linkStore, cfg.BaseURL, cfg.PageSize).RegisterRoutes(api)
		settings.NewHandler(settingsStore).RegisterRoutes(api)
		shortcode.NewHandler(shortcode.NewExpander(linkStore, cfg.BaseURL)).RegisterRoutes(api)
		stats.NewHandler(db).RegisterRoutes(api)
	}

	// Public redirect routes, registered last
	resolver := redirect.NewResolver(linkStore, settingsStore, linkCache, logger)
	redirect.NewHandler(resolver, cfg.HomeURL).RegisterRoutes(r)

	log.Printf("Starting SafeLink server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
