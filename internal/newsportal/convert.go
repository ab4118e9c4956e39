package newsportal

import (
	"strconv"

	"github.com/daniilsolovey/news-admin/internal/db"
)

func NewNews(n *db.News) News {
	return News{
		ID:            n.ID,
		Title:         n.Title,
		Body:          n.Body,
		Created:       n.Created,
		CorrelationID: n.UUID,
	}
}

func NewNewsList(list []db.News) []News {
	result := make([]News, len(list))
	for i := range list {
		result[i] = NewNews(&list[i])
	}
	return result
}

// PathFor is the canonical path of a news item.
func PathFor(newsID int) string {
	return "/news/" + strconv.Itoa(newsID)
}
