// Package assistant talks to the LLM gateway on behalf of the dashboard's
// chat feature. The store snapshot, flattened by llmctx, is supplied as
// grounding context with every request.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"store-insights-go/internal/config"
	"store-insights-go/internal/llmctx"
	"store-insights-go/internal/logger"
	"store-insights-go/internal/types"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat client over one LLM gateway.
type Client struct {
	cfg  config.LLMConfig
	http *http.Client
	log  *logger.Logger
}

func NewClient(cfg config.LLMConfig, log *logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

const systemContext = `You are an analyst for a small commerce store. Ground every answer in the store data below; do not invent records or numbers. Keep verdicts clear and brief.`

// Chat runs one completion over the conversation with the snapshot attached
// as context. Use USE_MOCK_LLM=true for a deterministic offline answer.
func (c *Client) Chat(ctx context.Context, messages []Message, snap types.Snapshot) (string, error) {
	if c.cfg.Mock {
		return "Mock analysis: revenue is concentrated in your most popular item; consider bundling slower movers with it.", nil
	}
	if c.cfg.GatewayURL == "" || c.cfg.APIKey == "" {
		return "", fmt.Errorf("llm gateway not configured")
	}

	log := c.log.WithComponent("assistant")

	prompt := []Message{{
		Role:    "system",
		Content: fmt.Sprintf("%s\n\nMy Store Data:\n%s\nRespond by acting on my store data.", systemContext, llmctx.Build(snap)),
	}}
	prompt = append(prompt, messages...)

	body, err := json.Marshal(map[string]interface{}{
		"model":       c.cfg.Model,
		"messages":    prompt,
		"temperature": 0.25,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var answer string
	operation := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("llm server error: %s", string(raw))
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("llm request rejected: %s", string(raw)))
		}

		var parsed struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("unexpected llm response: %s", string(raw)))
		}
		answer = parsed.Choices[0].Message.Content
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.cfg.MaxRetry
	start := time.Now()
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		log.WithError(err).Warn("chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("chat completion finished")
	return answer, nil
}
