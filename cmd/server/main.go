package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/config"
	"github.com/lmt-transport/LMT-Driver-App/internal/api/handler"
	"github.com/lmt-transport/LMT-Driver-App/internal/api/router"
	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/notifier"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
	"github.com/lmt-transport/LMT-Driver-App/internal/service"
	"github.com/lmt-transport/LMT-Driver-App/pkg/database"
	"github.com/lmt-transport/LMT-Driver-App/pkg/jwt"
	applogger "github.com/lmt-transport/LMT-Driver-App/pkg/logger"
	"github.com/lmt-transport/LMT-Driver-App/pkg/redis"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("fleet board starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Database + migrations
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis (optional: the token blacklist degrades when unavailable)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Webhook notifier (Noop when no URL is configured)
	var n notifier.Notifier = notifier.Noop{}
	if cfg.Notify.WebhookURL != "" {
		n = notifier.NewDiscord(cfg.Notify.WebhookURL, cfg.Notify.BotName, cfg.Notify.BotAvatar)
	} else {
		logger.Warn("no webhook url configured, notifications disabled")
	}

	// 7. Dependency injection: Repository → Cache → Service → Handler
	repo := repository.NewRepository(db)
	store := cache.NewStore(repo, cfg.Cache.TTL, thai.Now)
	svc := service.NewService(repo, store, n, jwtMgr, rdb, cfg, logger)
	h := handler.NewHandler(svc)

	// 8. Router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. Background notification loop (hourly late roster, ledger prune)
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	go svc.Notify.RunBackground(bgCtx)

	// 10. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	bgCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
