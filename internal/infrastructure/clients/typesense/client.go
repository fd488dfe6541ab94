package typesense

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/moodbrew/cafe-discovery/pkg/config"
	"github.com/moodbrew/cafe-discovery/pkg/retry"
	"github.com/typesense/typesense-go/v2/typesense"
)

// Client wraps the Typesense connection used by the cafe search adapter.
type Client struct {
	client *typesense.Client
}

// NewClient connects to Typesense, retrying the health check with backoff
// until the search node answers.
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(
		context.Background(),
		retry.DefaultConfig(),
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Printf("Typesense connection attempt %d failed: %v. Retrying in %v...", attempt, err, nextDelay)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Println("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client.
func (c *Client) Client() *typesense.Client {
	return c.client
}
