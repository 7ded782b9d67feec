package main

import (
	"log"

	"github.com/HRMetriX/couriesr-mules-project/internal/app"
)

func main() {
	application, err := app.NewParserApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Scrape run failed: %v", err)
	}
}
