package db

import (
	"context"

	"github.com/go-pg/pg/v10"
)

type connKey struct{}

// WithConn attaches a request-scoped connection to ctx. Repository calls made
// with the returned context run on conn instead of the shared pool.
func WithConn(ctx context.Context, conn pg.DBI) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

// ConnFromContext returns the connection attached by WithConn.
func ConnFromContext(ctx context.Context) (pg.DBI, bool) {
	conn, ok := ctx.Value(connKey{}).(pg.DBI)
	return conn, ok && conn != nil
}

func (r *Repository) conn(ctx context.Context) pg.DBI {
	if conn, ok := ConnFromContext(ctx); ok {
		return conn
	}

	return r.db
}
