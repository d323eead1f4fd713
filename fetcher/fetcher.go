package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"feed-service/model"
)

// maxDescriptionLen bounds article summaries to keep payloads small.
const maxDescriptionLen = 160

// Fetcher reads one remote feed per call and normalizes its items.
// A single attempt per call; retry policy belongs to the caller.
// Safe for concurrent use: the http.Client is shared, but each call
// gets its own gofeed.Parser since the parser initializes internal
// state lazily on first parse.
type Fetcher struct {
	client *http.Client
}

func New(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch issues a single remote read for the source and returns its
// normalized articles. Transport failures, non-success responses and
// unparseable payloads come back as an error; the aggregator treats any
// error as a zero contribution so one misbehaving source never blocks
// the rest.
func (f *Fetcher) Fetch(ctx context.Context, source model.Source) ([]model.Article, error) {
	if source.Endpoint == "" {
		return nil, fmt.Errorf("source %q has no endpoint", source.Name)
	}

	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = "feed-service/1.0"

	feed, err := parser.ParseURLWithContext(source.Endpoint, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		article, ok := normalize(item, source)
		if !ok {
			// Missing link or unparseable timestamp: drop silently.
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func normalize(item *gofeed.Item, source model.Source) (model.Article, bool) {
	if item.Link == "" {
		return model.Article{}, false
	}

	// gofeed already tries pubDate, dc:date, atom updated and friends;
	// an item with neither parsed field has no usable timestamp.
	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		return model.Article{}, false
	}

	id := item.GUID
	if id == "" {
		id = item.Link
	}

	desc := item.Description
	if desc == "" {
		desc = item.Content
	}

	return model.Article{
		ID:          id,
		Title:       item.Title,
		URL:         item.Link,
		Description: truncate(stripHTML(desc), maxDescriptionLen),
		Source:      source.Name,
		Category:    source.Category,
		PublishedAt: published,
		Domain:      domainOf(item.Link),
	}, true
}

// domainOf extracts the host of a link with any leading "www." removed.
// Display-only; never used for deduplication.
func domainOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
