package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"persona-replicator-be/internal/bootstrap"
	"persona-replicator-be/internal/config"
	"persona-replicator-be/internal/server"
	"persona-replicator-be/internal/tracer"
	"persona-replicator-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.App)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start activity consumer: %v", err)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
