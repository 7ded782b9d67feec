package main

import (
	"log"

	"github.com/HRMetriX/couriesr-mules-project/internal/app"
)

func main() {
	application, err := app.NewSaverApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
