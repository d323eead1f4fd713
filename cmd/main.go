package main

import (
	"log"

	"feed-service/aggregator"
	"feed-service/api"
	"feed-service/cache"
	"feed-service/config"
	"feed-service/fetcher"
	"feed-service/handler"
	"feed-service/metrics"
	"feed-service/registry"
)

func main() {
	log.Println("Starting feed service...")

	cfg := config.Load()

	sources := registry.Default()
	if err := registry.Validate(sources); err != nil {
		log.Fatal("Invalid source registry:", err)
	}
	log.Printf("Source registry loaded with %d sources", len(sources))

	agg := aggregator.New(sources, fetcher.New(cfg.FetchTimeout), cfg.RecencyWindow, cfg.FetchTimeout)
	store := cache.New(agg, cfg.CacheTTL)

	metrics.Init("feed-service", "1.0", "production")

	var events *handler.FeedEvents
	if cfg.NATSUrl != "" {
		var err error
		events, err = handler.NewFeedEvents(cfg.NATSUrl, store)
		if err != nil {
			log.Printf("NATS unavailable, running without broker: %v", err)
		} else {
			defer events.Close()
			log.Println("Connected to NATS")
		}
	}

	api.StartServer(cfg.Port, store, sources, events)
}
