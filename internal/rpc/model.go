package rpc

import "time"

// NewsSummary is a feed entry without body.
type NewsSummary struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
	Path    string    `json:"path"`
}

type NewsSummaries []NewsSummary

type News struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Path    string    `json:"path"`
}
