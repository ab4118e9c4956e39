package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

func New(logger *slog.Logger, newsManager *newsportal.Manager) *zenrpc.Server {
	rpcService := NewNewsService(newsManager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true, AllowCORS: true})
	rpcServer.Register("news", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "news-admin", nil))

	return rpcServer
}
