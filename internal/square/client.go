// Package square is the provider fetch layer: it pulls catalog, order,
// customer and merchant records from the commerce API and hands the raw
// payloads to internal/normalize. Auth tokens come from configuration; the
// OAuth dance that produces them is not this service's concern.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"store-insights-go/internal/config"
	"store-insights-go/internal/logger"
)

const (
	liveURL = "https://connect.squareup.com"
	testURL = "https://connect.squareupsandbox.com"
)

// Client is an authenticated provider API client.
type Client struct {
	baseURL string
	cfg     config.SquareConfig
	http    *http.Client
	log     *logrus.Entry
}

func NewClient(cfg config.SquareConfig, log *logger.Logger) *Client {
	baseURL := liveURL
	if cfg.TestMode {
		baseURL = testURL
	}
	return &Client{
		baseURL: baseURL,
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log.WithComponent("square"),
	}
}

// do performs one API call with retries on transport errors and 5xx
// responses, decoding the body into out. 4xx responses fail immediately.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
	}

	operation := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Square-Version", c.cfg.Version)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("provider server error %d: %s", resp.StatusCode, string(raw))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("provider rejected %s %s: %d %s", method, path, resp.StatusCode, string(raw)))
		}
		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.cfg.MaxRetry
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		c.log.WithError(err).WithField("path", path).Warn("provider call failed")
		return err
	}
	return nil
}
