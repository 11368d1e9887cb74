// Package provider wraps the outbound HTTP data sources (weather, quotes,
// cat images, IMEI checks) behind a client that always yields a structured
// result or an error, never a panic.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/j0lvera/kotik/internal/config"
	"github.com/rs/zerolog"
)

const retryAttempts = 2

// Client calls the external data providers. Every method is independent: an
// outage of one provider only fails the action that needed it.
type Client struct {
	http *http.Client
	cfg  *config.Config
	log  zerolog.Logger
}

// NewClient creates a provider client using the endpoints and keys from cfg.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:  cfg,
		log:  logger.With().Str("component", "provider").Logger(),
	}
}

// getJSON fetches url and decodes the JSON body into out, retrying transient
// failures. Client-side errors (4xx, malformed payloads) are not retried.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	return c.roundTrip(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}, out)
}

func (c *Client) roundTrip(ctx context.Context, newReq func() (*http.Request, error), out any) error {
	return retry.Do(
		func() error {
			req, err := newReq()
			if err != nil {
				return retry.Unrecoverable(err)
			}

			res, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				err := fmt.Errorf("unexpected status %s", res.Status)
				if res.StatusCode >= 400 && res.StatusCode < 500 {
					// The request itself is wrong, retrying won't help
					return retry.Unrecoverable(err)
				}
				return err
			}

			if err := json.NewDecoder(res.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
