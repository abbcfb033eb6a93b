// Package mongodb provides the document-store connector and extractor.
package mongodb

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mlingest/internal/domain"
)

// Config holds connection settings for the document store.
type Config struct {
	URI             string // connection URI
	DefaultDatabase string // database used when a call does not name one
}

// Client is an explicitly owned, lazily connected handle to a MongoDB
// deployment. It is constructed by whichever component composes the pipeline
// and lives for the duration of one run; there is no package-level singleton.
type Client struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
}

// NewClient creates an unconnected Client. The first Connect (or the first
// extraction) establishes the connection.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Connect establishes the connection if it has not been established yet.
// Subsequent calls reuse the existing connection.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.cfg.URI))
	if err != nil {
		return domain.ErrConnection(err, "connect to document store")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return domain.ErrConnection(err, "ping document store")
	}

	c.client = client
	c.logger.Info("document store connection established", "database", c.cfg.DefaultDatabase)
	return nil
}

// Database returns a handle to the named database, defaulting to the
// configured database when name is empty. Connect must have succeeded first.
func (c *Client) Database(name string) *mongo.Database {
	if name == "" {
		name = c.cfg.DefaultDatabase
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.Database(name)
}

// Close releases the underlying connection. Safe to call on an unconnected
// client.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	if err != nil {
		return domain.ErrConnection(err, "disconnect from document store")
	}
	return nil
}
