package main

import (
	"context"
	"log"

	"machinity-be/internal/bootstrap"
	"machinity-be/internal/config"
	"machinity-be/internal/server"
	"machinity-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting AI audit writer...")
		if err := container.AuditWriter.Run(context.Background()); err != nil {
			log.Printf("Background audit writer error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
