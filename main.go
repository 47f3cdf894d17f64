package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/cache"
	"github.com/cristianadrielbraun/qrcard/internal/config"
	"github.com/cristianadrielbraun/qrcard/internal/handlers"
	"github.com/cristianadrielbraun/qrcard/internal/idcard"
	"github.com/cristianadrielbraun/qrcard/internal/logger"
	"github.com/cristianadrielbraun/qrcard/internal/payload"
	"github.com/cristianadrielbraun/qrcard/internal/refine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config is part of what failed to load
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	fonts, err := idcard.LoadFonts(cfg.IDCard.FontPath)
	if err != nil {
		log.Fatal("load card fonts", zap.Error(err))
	}

	deps := handlers.Deps{
		Config:    cfg,
		Formatter: payload.NewFormatter(cfg.Payload.CountryCode),
		Cards:     idcard.NewRenderer(fonts, cfg.Render.CardErrorCorrection),
		Logger:    log,
	}

	if cfg.Redis.Enabled() {
		rc := cache.NewRedis(cache.RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, render cache disabled", zap.String("address", cfg.Redis.Address), zap.Error(err))
			_ = rc.Close()
		} else {
			deps.Cache = rc
			defer rc.Close()
			log.Info("render cache enabled", zap.String("address", cfg.Redis.Address))
		}
		cancel()
	}

	if cfg.Refine.Enabled() {
		deps.Refiner = refine.NewClient(cfg.Refine, log)
		log.Info("refinement service enabled", zap.String("base_url", cfg.Refine.BaseURL))
	}

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(handlers.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(gin.Recovery())

	// Static assets
	r.Static("/web/static", cfg.Server.StaticDir)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.New(deps).Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("qrcard listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("shutdown complete")
}
