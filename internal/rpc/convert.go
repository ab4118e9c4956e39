package rpc

import "github.com/daniilsolovey/news-admin/internal/newsportal"

func NewNews(n newsportal.News) News {
	return News{
		ID:      n.ID,
		Title:   n.Title,
		Body:    n.Body,
		Created: n.Created,
		Path:    newsportal.PathFor(n.ID),
	}
}

func NewNewsSummary(n newsportal.News) NewsSummary {
	return NewsSummary{
		ID:      n.ID,
		Title:   n.Title,
		Created: n.Created,
		Path:    newsportal.PathFor(n.ID),
	}
}

func NewNewsSummaries(list []newsportal.News) NewsSummaries {
	result := make(NewsSummaries, len(list))
	for i := range list {
		result[i] = NewNewsSummary(list[i])
	}
	return result
}
