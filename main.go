package main

import (
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lattelane/configs"
	"lattelane/pkg/logger"
	"lattelane/pkg/yoco"
	"lattelane/routes"
	"lattelane/ws"
)

func main() {
	cfg := configs.LoadConfig()

	zl, err := logger.Init(cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	// DB
	db, err := configs.ConnectDB(cfg)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		zl.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		zl.Fatal("seed admin failed", zap.Error(err))
	}
	if err := configs.SeedMenu(db); err != nil {
		zl.Fatal("seed menu failed", zap.Error(err))
	}

	// Redis (optional, webhook dedup degrades without it)
	rdb, err := configs.ConnectRedis(cfg)
	if err != nil {
		zl.Warn("redis unavailable, webhook dedup disabled", zap.Error(err))
		rdb = nil
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Env}); err != nil {
			zl.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	gateway := yoco.NewClient(cfg.YocoSecretKey)

	hub := ws.NewOrderHub(zl)
	go hub.Run()

	// HTTP
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Gateway: gateway,
		Hub:     hub,
		Log:     zl,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	zl.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}
