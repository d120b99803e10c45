// Package models defines data structures for Folio
package models

import "time"

// NewsItem is a single news article returned by the news provider.
type NewsItem struct {
	Category    string    `json:"category,omitempty"`
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	Related     string    `json:"related,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
