package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/handler"
	"github.com/inkpress/internal/router"
	"github.com/inkpress/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	writer := service.NewAIWriterService(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	api := handler.NewAPI(gdb, writer)

	r := router.New(api)
	log.Printf("server listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
