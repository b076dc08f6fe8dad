package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/casebandit/casebandit/internal/app"
)

func main() {
	// Optional .env for local development; the environment wins in prod.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ casebandit failed to start: %v", err)
	}
}
