package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Arcadelis/arcadis-scoring/app"
	"github.com/Arcadelis/arcadis-scoring/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Printf("Application run failed: %v", err)
	}

	if err := application.Close(); err != nil {
		log.Printf("Application shutdown error: %v", err)
	}
}
