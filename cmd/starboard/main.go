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

	"github.com/dukerupert/starboard/internal/avatar"
	"github.com/dukerupert/starboard/internal/config"
	"github.com/dukerupert/starboard/internal/database"
	"github.com/dukerupert/starboard/internal/logging"
	"github.com/dukerupert/starboard/internal/server"
	"github.com/dukerupert/starboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.Log)

	// State lives only as long as the process.
	db, err := database.Open(":memory:")
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.NewMemberStore(db).Seed(cfg.Members); err != nil {
		logger.Error("failed to seed members", "error", err)
		os.Exit(1)
	}

	var avatars avatar.Storage
	if cfg.S3.Enabled() {
		avatars = avatar.NewS3Storage(cfg.S3)
		logger.Info("avatar storage", "backend", "s3", "bucket", cfg.S3.Bucket)
	} else {
		local, err := avatar.NewLocalStorage(cfg.AvatarDir(), "/static/avatars")
		if err != nil {
			logger.Error("failed to prepare avatar directory", "error", err)
			os.Exit(1)
		}
		avatars = local
		logger.Info("avatar storage", "backend", "local", "dir", cfg.AvatarDir())
	}

	srv := server.New(db, avatars, server.Config{
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		RateLimit:      cfg.RateLimit,
		TrustProxy:     cfg.TrustProxy,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starboard running", "addr", "http://localhost:"+cfg.Port, "members", len(cfg.Members))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
