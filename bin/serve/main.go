package main

import (
	"log"
	"net/http"
	"os"

	"velora-gallery/cmd"
	"velora-gallery/pkg/config"
	"velora-gallery/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.RequireAdminCredentials(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	services.InitService(cfg)

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), cmd.NewMux(cfg)); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
