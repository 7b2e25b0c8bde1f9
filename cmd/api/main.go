package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/olu-davies/noticehub/internal/admin"
	"github.com/olu-davies/noticehub/internal/aggregator"
	"github.com/olu-davies/noticehub/internal/alerts"
	"github.com/olu-davies/noticehub/internal/auth"
	"github.com/olu-davies/noticehub/internal/board"
	"github.com/olu-davies/noticehub/internal/config"
	"github.com/olu-davies/noticehub/internal/gateway"
	"github.com/olu-davies/noticehub/internal/logger"
	appmw "github.com/olu-davies/noticehub/internal/middleware"
	"github.com/olu-davies/noticehub/internal/preview"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	ctx := context.Background()

	// Store gateway
	var gw gateway.Gateway
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := gateway.NewPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("store init failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		gw = pg
	case config.DriverMongo:
		mg, err := gateway.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB, log)
		if err != nil {
			log.Error("store init failed", "error", err)
			os.Exit(1)
		}
		defer mg.Close(ctx)
		gw = mg
	}

	// Alerts queue (degrades to log-only without Redis)
	notifier := alerts.NewNotifier(cfg.RedisAddr, log)
	defer notifier.Close()
	if cfg.RedisAddr != "" {
		processor := alerts.NewProcessor(cfg.RedisAddr, cfg.NotifyWebhookURL, log)
		processor.Run()
		defer processor.Shutdown()
	}

	// Aggregation stores: full visibility for moderation, approved-only
	// for the open board.
	agg := aggregator.New(gw, log)
	adminStore := board.NewStore(agg, true, log)
	publicStore := board.NewStore(agg, false, log)
	for _, s := range []*board.Store{adminStore, publicStore} {
		if err := s.Refresh(ctx); err != nil {
			// Startup proceeds with an empty snapshot and the error
			// flag set; the refresh loop and manual retry recover.
			log.Error("initial aggregation failed", "error", err)
		}
	}
	go refreshLoop(ctx, adminStore, publicStore, time.Duration(cfg.RefreshSeconds)*time.Second)

	moderator := board.NewModerator(gw, notifier, log, adminStore, publicStore)
	// Session TTL matches the access-token lifetime issued at login.
	sessions := preview.NewSessions(24 * time.Hour)

	authHandler := auth.NewHandler([]byte(cfg.JWTSecret), cfg.AdminEmail, cfg.AdminPasswordHash, log)
	adminHandler := admin.NewHandler(adminStore, publicStore, moderator, sessions, log)
	publicHandler := board.NewPublicHandler(publicStore, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Public board
	e.GET("/listings", publicHandler.Listings)
	e.GET("/listings/:category", publicHandler.CategoryListings)
	e.POST("/admin/login", authHandler.Login)

	// Moderation surface
	g := e.Group("/admin")
	g.Use(appmw.JWT([]byte(cfg.JWTSecret)))
	g.Use(appmw.AdminGuard)
	g.GET("/me", authHandler.Me)
	g.GET("/queue", adminHandler.Queue)
	g.GET("/analytics", adminHandler.Analytics)
	g.POST("/refresh", adminHandler.Refresh)
	g.POST("/listings/:category/:id/approve", adminHandler.Approve)
	g.POST("/listings/:category/:id/decline", adminHandler.Decline)
	g.DELETE("/listings/:category/:id", adminHandler.Delete)
	g.GET("/preview", adminHandler.Preview)
	g.POST("/preview/open", adminHandler.PreviewOpen)
	g.POST("/preview/next", adminHandler.PreviewNext)
	g.POST("/preview/prev", adminHandler.PreviewPrev)
	g.POST("/preview/close", adminHandler.PreviewClose)
	g.POST("/preview/key", adminHandler.PreviewKey)

	log.Info("noticehub listening", "port", cfg.Port, "driver", cfg.StoreDriver)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// refreshLoop keeps both snapshots from going stale between moderation
// actions; listings posted by the outside forms show up within one tick.
func refreshLoop(ctx context.Context, adminStore, publicStore *board.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		_ = adminStore.Refresh(ctx)
		_ = publicStore.Refresh(ctx)
	}
}
