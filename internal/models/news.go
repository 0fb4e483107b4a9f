package models

import "fmt"

// NewsItem is a normalized news article reference.
type NewsItem struct {
	ID          string `json:"id"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// NewsItemFromPayload builds a NewsItem from a raw upstream news entry.
// The published timestamp is required; everything else degrades to empty.
func NewsItemFromPayload(item map[string]any) (NewsItem, error) {
	publishedAt := payloadString(item, "published_at")
	if publishedAt == "" {
		return NewsItem{}, fmt.Errorf("news item %q has no published_at", payloadString(item, "uuid"))
	}

	return NewsItem{
		ID:          payloadString(item, "uuid"),
		Headline:    payloadString(item, "title"),
		Summary:     payloadString(item, "summary"),
		Source:      payloadString(item, "source"),
		URL:         payloadString(item, "url"),
		PublishedAt: CoerceTimestamp(publishedAt),
	}, nil
}
