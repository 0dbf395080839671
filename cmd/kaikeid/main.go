package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/audit"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/export"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrclient"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/repository"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/scan"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Env
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// DB pool
	pool, err := repository.NewPool(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("creating DB pool: %v", err)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Infow("DB health OK")

	// Audit trail (local sqlite; losing it never blocks a scan)
	auditStore, err := audit.Open(cfg.Audit.Path, slogger)
	if err != nil {
		log.Fatalf("open audit store: %v", err)
	}
	defer func() {
		if cerr := auditStore.Close(); cerr != nil {
			log.Warnf("close audit store: %v", cerr)
		}
	}()

	// Scan pipeline
	vendor := ocrclient.NewClient(cfg.OCR.EndpointURL, cfg.OCR.Timeout, slogger)
	extractor := ocrscan.NewExtractor(ocrscan.Config{
		ExcludedRecipients: cfg.Scan.ExcludedRecipients,
	}, slogger)
	pipeline := scan.NewPipeline(vendor, extractor, auditStore, slogger)

	// HTTP server
	entries := repository.NewEntryStore(pool, slogger)
	exportSvc := export.NewService(slogger)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(pipeline, entries, exportSvc, logger).Router(),
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
