package hh

import (
	"log"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// HHFetcherAdapter отвечает за все взаимодействия с API hh.ru
type HHFetcherAdapter struct {
	// один родительский коллектор, который разделяет лимиты
	collector *colly.Collector
	baseURL   string
}

// NewHHFetcherAdapter - конструктор
func NewHHFetcherAdapter(baseURL string) *HHFetcherAdapter {
	u, err := url.Parse(baseURL)
	if err != nil {
		log.Fatalf("HHFetcherAdapter: invalid base URL %q: %v", baseURL, err)
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Host), colly.AllowURLRevisit())

	err = c.Limit(&colly.LimitRule{
		DomainGlob:  u.Host,
		Parallelism: 1,
		RandomDelay: 1 * time.Second,
	})
	if err != nil {
		log.Fatalf("HHFetcherAdapter: Failed to set limit rule: %v", err)
	}

	extensions.RandomUserAgent(c)

	return &HHFetcherAdapter{
		collector: c,
		baseURL:   baseURL,
	}
}
