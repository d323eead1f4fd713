package handler

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"feed-service/cache"
	"feed-service/metrics"
	"feed-service/model"
)

const (
	refreshRequestSubject = "feed.refresh.request"
	refreshedSubject      = "feed.refreshed"
)

// RefreshedEvent is published after every completed aggregation run.
type RefreshedEvent struct {
	ArticleCount int       `json:"articleCount"`
	FetchedAt    time.Time `json:"fetchedAt"`
	Service      string    `json:"service"`
}

// FeedEvents wires the cache to NATS: other services force a refresh by
// publishing to feed.refresh.request, and hear about completed runs on
// feed.refreshed.
type FeedEvents struct {
	nc    *nats.Conn
	store *cache.Cache
}

func NewFeedEvents(natsURL string, store *cache.Cache) (*FeedEvents, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	ev := &FeedEvents{nc: nc, store: store}
	if err := ev.subscribeRefreshRequests(); err != nil {
		nc.Close()
		return nil, err
	}
	return ev, nil
}

func (ev *FeedEvents) Close() {
	if ev.nc != nil {
		ev.nc.Close()
	}
}

func (ev *FeedEvents) subscribeRefreshRequests() error {
	_, err := ev.nc.Subscribe(refreshRequestSubject, func(msg *nats.Msg) {
		log.Printf("Refresh requested via NATS")
		metrics.NatsMessagesReceived.WithLabelValues(refreshRequestSubject, "success").Inc()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		snap := ev.store.Get(ctx, true)
		ev.PublishRefreshed(snap)
	})
	return err
}

// PublishRefreshed announces a completed run. Best-effort: a publish
// failure is logged and counted, never propagated.
func (ev *FeedEvents) PublishRefreshed(snap model.Snapshot) {
	event := RefreshedEvent{
		ArticleCount: len(snap.Articles),
		FetchedAt:    snap.FetchedAt,
		Service:      "feed-service",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal refreshed event: %v", err)
		return
	}

	if err := ev.nc.Publish(refreshedSubject, data); err != nil {
		log.Printf("Failed to publish refreshed event: %v", err)
		metrics.NatsMessagesPublished.WithLabelValues(refreshedSubject, "error").Inc()
		return
	}
	metrics.NatsMessagesPublished.WithLabelValues(refreshedSubject, "success").Inc()
}
