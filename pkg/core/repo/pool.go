package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool. Connections are acquired
// with the Conn method for the lifetime of one handler call and the
// whole pool is released with Close when its owner command finishes.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
