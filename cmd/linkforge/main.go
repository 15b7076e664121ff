package main

import (
	"log"

	"github.com/linkforge/linkforge/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkforge failed to start: %v", err)
	}
}
