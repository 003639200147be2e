package main

import (
	"context"
	"log"

	"bid-agent-be/internal/bootstrap"
	"bid-agent-be/internal/config"
	"bid-agent-be/internal/entity"
	"bid-agent-be/internal/server"
	"bid-agent-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; sessions are in-memory either way)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&entity.ArchivedAnnouncement{}); err != nil {
			log.Panicf("Unable to migrate archive schema: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Archive Service...")
		if err := container.ArchiveService.Consume(context.Background()); err != nil {
			log.Printf("Background Archive Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
