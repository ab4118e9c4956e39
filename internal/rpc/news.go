package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

// NewsService is the public read-only news feed.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// List returns live news newest first, without bodies.
//
//zenrpc:limit maximum number of items, all when omitted
//zenrpc:return list of news summaries
//zenrpc:500 internal server error
func (s *NewsService) List(ctx context.Context, limit *int) (NewsSummaries, error) {
	n := 0
	if limit != nil && *limit > 0 {
		n = *limit
	}

	news, err := s.manager.News(ctx, n, false)
	if err != nil {
		return nil, err
	}

	return NewNewsSummaries(news), nil
}

// ByID returns a single live news item with body.
//
//zenrpc:id news numeric ID
//zenrpc:return news with body
//zenrpc:400 id must be positive
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *NewsService) ByID(ctx context.Context, id int) (*News, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	news, err := s.manager.NewsByID(ctx, id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return nil, zenrpc.NewStringError(404, "news not found")
	} else if err != nil {
		return nil, err
	}

	result := NewNews(*news)
	return &result, nil
}
