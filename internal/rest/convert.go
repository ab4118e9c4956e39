package rest

import (
	"html/template"

	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

// NewNews converts a news item for templates. Bodies are written by
// administrators and rendered as markup.
func NewNews(n newsportal.News) News {
	return News{
		ID:      n.ID,
		Title:   n.Title,
		Body:    template.HTML(n.Body),
		Created: n.Created,
		Path:    newsportal.PathFor(n.ID),
	}
}

func NewNewsList(list []newsportal.News) []News {
	result := make([]News, len(list))
	for i := range list {
		result[i] = NewNews(list[i])
	}
	return result
}

func NewAlerts(list []newsportal.Alert) []Alert {
	result := make([]Alert, len(list))
	for i, a := range list {
		result[i] = Alert{Severity: a.Severity, Message: a.Message}
	}
	return result
}
