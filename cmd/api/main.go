package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildledger/internal/config"
	"buildledger/internal/database"
	"buildledger/internal/metrics"
	"buildledger/internal/pkg/ids"
	"buildledger/internal/pkg/jwt"
	"buildledger/internal/pkg/logger"
	"buildledger/internal/server"
	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := database.OpenBackend(ctx, cfg, zl.Named("database"))
	if err != nil {
		zl.Fatal("open store backend", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer func() {
		if err := closeBackend(); err != nil {
			zl.Warn("close store backend", zap.Error(err))
		}
	}()

	gen, err := ids.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		zl.Fatal("id generator", zap.Error(err))
	}

	m := metrics.New()
	db := store.New(backend, store.WithLogger(zl.Named("store")), store.WithRecorder(m))

	app := server.New(server.Deps{
		Store:          db,
		JWT:            jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		IDs:            gen,
		Metrics:        m,
		Log:            zl,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("backend", cfg.StoreBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
