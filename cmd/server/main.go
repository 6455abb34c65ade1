package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relaybox/internal/server/api"
	"relaybox/internal/server/config"
	"relaybox/internal/server/mail"
	"relaybox/internal/server/service"
	"relaybox/internal/server/storage"
)

func main() {
	// Structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load config once; components receive it explicitly.
	cfg := config.Load()
	slog.Info("configuration loaded",
		"port", cfg.Port,
		"upload_dir", cfg.UploadDir,
		"max_upload_size", cfg.MaxUploadSize,
		"naming_scheme", cfg.NamingScheme,
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
	)

	// Initialize storage. The service cannot run without its storage
	// root, so creation failure is fatal.
	store := storage.NewFileSystemStore(cfg.UploadDir)
	if err := store.EnsureDir(); err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	slog.Info("file storage initialized", "path", cfg.UploadDir)

	// Wire services
	transport := mail.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	storageSvc := service.NewStorageService(store, storage.NamerFor(cfg.NamingScheme))
	mailSvc := service.NewMailService(transport, cfg.SMTPUser)

	// Setup HTTP router
	handler := api.NewHandler(storageSvc, mailSvc)
	e := api.SetupRouter(handler, cfg)

	// Start server in a goroutine
	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil {
			slog.Info("server stopped", "reason", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutting down", "signal", sig)

	// Stop accepting new requests, finish in-flight with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited cleanly")
}
