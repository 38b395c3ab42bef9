package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/avast/retry-go"

	"github.com/GregMSThompson/expense-backend/internal/errs"
)

const (
	dialAttempts = 3
	dialDelay    = 2 * time.Second
)

// Conn owns the Firestore client handle. The dial is retried a bounded
// number of times at startup; if the process still comes up without a
// handle, each operation attempts one lazy reconnect before failing with
// DatabaseUnavailableError, so a recovered network does not require a
// restart.
type Conn struct {
	mu     sync.Mutex
	client *firestore.Client
	dial   func(ctx context.Context) (*firestore.Client, error)
}

func NewConn(ctx context.Context, log *slog.Logger, projectID string) *Conn {
	conn := &Conn{
		dial: func(ctx context.Context) (*firestore.Client, error) {
			return firestore.NewClient(ctx, projectID)
		},
	}

	err := retry.Do(
		func() error {
			client, err := conn.dial(ctx)
			if err != nil {
				return err
			}
			conn.client = client
			return nil
		},
		retry.Attempts(dialAttempts),
		retry.Delay(dialDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Error("firestore connection failed, starting without a database handle",
			"attempts", dialAttempts,
			"error", err)
	}

	return conn
}

// Client returns the live handle, dialing once more if none exists yet.
func (c *Conn) Client(ctx context.Context) (*firestore.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := c.dial(ctx)
	if err != nil {
		return nil, errs.NewDatabaseUnavailableError()
	}
	c.client = client
	return client, nil
}

// Ready reports whether a handle has been established, for the health
// endpoint. It does not trigger a reconnect.
func (c *Conn) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
