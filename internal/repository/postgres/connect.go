package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	_ "github.com/lib/pq"
)

// ErrConnectionFailed wraps any failure to establish the database connection.
var ErrConnectionFailed = errors.New("database connection failed")

// Connector owns the process-wide database handle. The first caller that
// finds no live handle starts the establishment; concurrent callers join the
// same in-flight attempt via singleflight instead of dialing again. A failed
// attempt is not cached: the flight is cleared when it completes, so the next
// call dials from scratch.
type Connector struct {
	dsn   string
	open  func(driverName, dataSourceName string) (*sql.DB, error)
	group singleflight.Group

	mu sync.RWMutex
	db *sql.DB
}

// NewConnector returns a Connector for the given DSN. No connection is made
// until the first Ensure call.
func NewConnector(dsn string) *Connector {
	return &Connector{dsn: dsn, open: sql.Open}
}

// Ensure returns the live database handle, establishing it on first use.
// At most one establishment is in flight at a time; every caller suspended on
// it receives the same handle or the same error.
func (c *Connector) Ensure(ctx context.Context) (*sql.DB, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		// A finished flight may have set the handle between the fast path
		// and joining the group.
		c.mu.RLock()
		db := c.db
		c.mu.RUnlock()
		if db != nil {
			return db, nil
		}

		db, err := c.open("postgres", c.dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}

		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close tears down the live handle, if any. Only intended for shutdown.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
