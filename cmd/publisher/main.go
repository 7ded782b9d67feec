package main

import (
	"log"

	"github.com/HRMetriX/couriesr-mules-project/internal/app"
)

func main() {
	application, err := app.NewPublisherApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Publication run failed: %v", err)
	}
}
