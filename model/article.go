package model

import "time"

// Category tags a feed source. Feeds are single-category; every article
// inherits the category of the source it came from.
type Category string

const (
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryBusiness      Category = "business"
	CategoryTechnology    Category = "technology"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategorySports,
	CategoryEntertainment,
	CategoryBusiness,
	CategoryTechnology,
	CategoryEducation,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Source describes one remote feed the aggregator polls.
type Source struct {
	Name     string   `json:"name"`
	Endpoint string   `json:"endpoint"`
	Category Category `json:"category"`
}

// Article is one normalized feed item. ID is the feed's own item
// identifier when present, otherwise the item link; it is the
// deduplication key across sources.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	Category    Category  `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
	Domain      string    `json:"domain"`
}

// Snapshot is one immutable aggregation result: articles sorted newest
// first, deduplicated by ID, all within the recency window at the time
// the run executed.
type Snapshot struct {
	Articles  []Article `json:"articles"`
	FetchedAt time.Time `json:"fetchedAt"`
}
