package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nco-classifier-be/internal/bootstrap"
	"nco-classifier-be/internal/config"
	"nco-classifier-be/internal/server"
	"nco-classifier-be/internal/tracer"
	"nco-classifier-be/pkg/database"
)

func main() {
	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	log.Println("[INFO] Background: Starting thread cleanup consumer...")
	if err := container.CleanupConsumer.Consume(ctx); err != nil {
		log.Fatalf("[FATAL] Cleanup consumer: %v", err)
	}
	if container.EventAuditService != nil {
		if err := container.EventAuditService.Start(ctx); err != nil {
			log.Printf("[WARN] Event audit disabled: %v", err)
		}
	}
	go container.IdleSweeper.Run(ctx)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("[INFO] Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("[WARN] Server shutdown: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("[ERROR] Server stopped: %v", err)
	}
}
