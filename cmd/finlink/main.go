package main

import (
	"log"
	"os"

	"github.com/aussiebroadwan/finlink/internal/finlink/app"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := app.LoadDotEnv(envFile); err != nil {
		log.Fatalf("failed to load %s: %v", envFile, err)
	}

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
