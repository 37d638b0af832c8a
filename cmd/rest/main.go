package main

import (
	"context"
	"log"
	"time"

	"spiritual-guidance-be/internal/bootstrap"
	"spiritual-guidance-be/internal/config"
	"spiritual-guidance-be/internal/server"
	"spiritual-guidance-be/internal/tracer"
	"spiritual-guidance-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	go func() {
		log.Println("Background: Starting integration validator...")
		container.MonitorService.Run(context.Background())
	}()
	defer container.MonitorService.Close()

	go func() {
		log.Println("Background: Starting follow-up delivery worker...")
		container.FollowUpService.Run(context.Background())
	}()

	// Daily retention pass over validation records
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := container.MonitorService.Prune(context.Background(), cfg.Monitoring.RetentionDays); err != nil {
				log.Printf("Background: Validation prune failed: %v", err)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
