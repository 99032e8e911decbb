package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartnotes-be/internal/bootstrap"
	"smartnotes-be/internal/config"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/server"
	"smartnotes-be/internal/tracer"
	"smartnotes-be/pkg/database"
)

func main() {
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := tracer.InitTracer(ctx, cfg.App, sysLogger)

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.App.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "Failed to start re-embed consumer", map[string]interface{}{
			"error": err.Error(),
		})
	}

	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	sysLogger.Info("MAIN", "Shutting down", nil)

	if err := srv.Shutdown(); err != nil {
		sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracer(flushCtx); err != nil {
		sysLogger.Warn("MAIN", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
