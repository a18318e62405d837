package main

import (
	"log"

	"github.com/joho/godotenv"

	"absim/internal/config"
	"absim/internal/container"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	c.Logger.Info("seed=%d consumers=%d items=%d workers=%d",
		cfg.Simulation.Seed, cfg.Simulation.NumConsumers, cfg.Simulation.NumItems, cfg.Simulation.Workers)

	if err := c.Server().Start(c.Addr()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
