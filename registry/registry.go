package registry

import (
	"fmt"
	"net/url"

	"feed-service/model"
)

// Default returns the built-in source list. Order matters: the
// aggregator merges per-source results in registry order and keeps the
// first occurrence on ID collisions.
func Default() []model.Source {
	return []model.Source{
		{Name: "ESPN", Endpoint: "https://www.espn.com/espn/rss/news", Category: model.CategorySports},
		{Name: "BBC Sport", Endpoint: "https://feeds.bbci.co.uk/sport/rss.xml", Category: model.CategorySports},
		{Name: "CBS Sports", Endpoint: "https://www.cbssports.com/rss/headlines/", Category: model.CategorySports},
		{Name: "Variety", Endpoint: "https://variety.com/feed/", Category: model.CategoryEntertainment},
		{Name: "The Hollywood Reporter", Endpoint: "https://www.hollywoodreporter.com/feed/", Category: model.CategoryEntertainment},
		{Name: "Rolling Stone", Endpoint: "https://www.rollingstone.com/feed/", Category: model.CategoryEntertainment},
		{Name: "CNBC", Endpoint: "https://www.cnbc.com/id/10001147/device/rss/rss.html", Category: model.CategoryBusiness},
		{Name: "MarketWatch", Endpoint: "https://feeds.marketwatch.com/marketwatch/topstories/", Category: model.CategoryBusiness},
		{Name: "Business Insider", Endpoint: "https://www.businessinsider.com/rss", Category: model.CategoryBusiness},
		{Name: "TechCrunch", Endpoint: "https://techcrunch.com/feed/", Category: model.CategoryTechnology},
		{Name: "Ars Technica", Endpoint: "https://feeds.arstechnica.com/arstechnica/index", Category: model.CategoryTechnology},
		{Name: "The Verge", Endpoint: "https://www.theverge.com/rss/index.xml", Category: model.CategoryTechnology},
		{Name: "EdSurge", Endpoint: "https://www.edsurge.com/articles_rss", Category: model.CategoryEducation},
		{Name: "Inside Higher Ed", Endpoint: "https://www.insidehighered.com/rss.xml", Category: model.CategoryEducation},
		{Name: "BBC News", Endpoint: "https://feeds.bbci.co.uk/news/rss.xml", Category: model.CategoryOther},
		{Name: "NPR", Endpoint: "https://feeds.npr.org/1001/rss.xml", Category: model.CategoryOther},
	}
}

// Validate checks every descriptor: non-empty name, an http(s) endpoint,
// a known category, and no duplicate names.
func Validate(sources []model.Source) error {
	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.Endpoint == "" {
			return fmt.Errorf("source %q: endpoint is required", s.Name)
		}
		u, err := url.Parse(s.Endpoint)
		if err != nil {
			return fmt.Errorf("source %q: invalid endpoint: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: endpoint scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if !s.Category.Valid() {
			return fmt.Errorf("source %q: unknown category %q", s.Name, s.Category)
		}
	}
	return nil
}
