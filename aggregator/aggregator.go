package aggregator

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"feed-service/metrics"
	"feed-service/model"
	"feed-service/registry"
)

// DefaultWindow is the recency window applied to every run: articles
// published earlier than now minus the window are excluded.
const DefaultWindow = 7 * 24 * time.Hour

// Fetcher reads one source. Implemented by fetcher.Fetcher; faked in tests.
type Fetcher interface {
	Fetch(ctx context.Context, source model.Source) ([]model.Article, error)
}

// Aggregator fans out one fetch per source concurrently and merges the
// results into a single snapshot.
type Aggregator struct {
	sources      []model.Source
	fetcher      Fetcher
	window       time.Duration
	fetchTimeout time.Duration
}

func New(sources []model.Source, fetcher Fetcher, window, fetchTimeout time.Duration) *Aggregator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Aggregator{
		sources:      sources,
		fetcher:      fetcher,
		window:       window,
		fetchTimeout: fetchTimeout,
	}
}

// Aggregate runs one fan-out over every source and returns a snapshot.
// A failing or slow source degrades to zero articles from that source;
// the run itself only errors when the registry is malformed.
func (a *Aggregator) Aggregate(ctx context.Context) (model.Snapshot, error) {
	start := time.Now()

	if err := registry.Validate(a.sources); err != nil {
		metrics.AggregationRunsTotal.WithLabelValues("error").Inc()
		return model.Snapshot{}, err
	}

	// Results are reassembled by source index so the merge order depends
	// on the registry, never on fetch completion order.
	results := make([][]model.Article, len(a.sources))
	var wg sync.WaitGroup
	for i, source := range a.sources {
		wg.Add(1)
		go func(i int, source model.Source) {
			defer wg.Done()
			fctx := ctx
			if a.fetchTimeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
				defer cancel()
			}
			articles, err := a.fetcher.Fetch(fctx, source)
			if err != nil {
				log.Printf("Fetch failed for source=%s: %v", source.Name, err)
				metrics.FeedFetchesTotal.WithLabelValues(source.Name, "error").Inc()
				return
			}
			metrics.FeedFetchesTotal.WithLabelValues(source.Name, "success").Inc()
			metrics.FeedArticlesFetched.WithLabelValues(source.Name).Add(float64(len(articles)))
			results[i] = articles
		}(i, source)
	}
	wg.Wait()

	now := time.Now()
	snapshot := model.Snapshot{
		Articles:  merge(results, now.Add(-a.window)),
		FetchedAt: now,
	}

	metrics.AggregationRunsTotal.WithLabelValues("success").Inc()
	metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	log.Printf("Aggregated %d articles from %d sources in %v",
		len(snapshot.Articles), len(a.sources), time.Since(start))

	return snapshot, nil
}

// merge concatenates per-source lists in registry order, drops articles
// older than the cutoff, keeps the first occurrence of each ID, and
// sorts the survivors newest first. The sort is stable, so equal
// timestamps preserve registry order.
func merge(results [][]model.Article, cutoff time.Time) []model.Article {
	seen := make(map[string]struct{})
	merged := make([]model.Article, 0)
	for _, articles := range results {
		for _, article := range articles {
			if article.PublishedAt.Before(cutoff) {
				continue
			}
			if _, dup := seen[article.ID]; dup {
				continue
			}
			seen[article.ID] = struct{}{}
			merged = append(merged, article)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})
	return merged
}
