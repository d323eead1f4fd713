package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feed-service/cache"
	"feed-service/handler"
	"feed-service/metrics"
	"feed-service/model"
)

// FeedHandler serves the cached aggregation snapshot.
type FeedHandler struct {
	store   *cache.Cache
	sources []model.Source
	events  *handler.FeedEvents
}

func NewFeedHandler(store *cache.Cache, sources []model.Source, events *handler.FeedEvents) *FeedHandler {
	return &FeedHandler{store: store, sources: sources, events: events}
}

// GetArticles returns the current snapshot. refresh=true bypasses the
// TTL (user-initiated pull-to-refresh). Category filtering is the
// client's job; the cache serves the full merged list.
func (h *FeedHandler) GetArticles(c *gin.Context) {
	start := time.Now()
	forceRefresh := c.Query("refresh") == "true"

	snap := h.store.Get(c.Request.Context(), forceRefresh)

	metrics.ArticlesServed.Add(float64(len(snap.Articles)))
	log.Printf("Returned %d articles (refresh=%v) in %v", len(snap.Articles), forceRefresh, time.Since(start))

	c.JSON(http.StatusOK, snap)
}

// GetSources lists the source registry so clients can render filter tabs.
func (h *FeedHandler) GetSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources":    h.sources,
		"categories": model.Categories,
	})
}

// TriggerRefresh forces a new aggregation run and returns the result.
func (h *FeedHandler) TriggerRefresh(c *gin.Context) {
	log.Printf("Manual refresh triggered")

	snap := h.store.Get(c.Request.Context(), true)
	if h.events != nil {
		h.events.PublishRefreshed(snap)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Refresh completed",
		"articleCount": len(snap.Articles),
		"fetchedAt":    snap.FetchedAt,
	})
}
