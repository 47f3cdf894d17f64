// Package refine asks a prompt-completion service to correct and translate card details.
package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/config"
)

const generatePath = "/api/ai/generate"

// Refiner corrects card details. Client is the HTTP implementation.
type Refiner interface {
	Refine(ctx context.Context, in Input) (*Output, error)
}

type Client struct {
	config config.RefineConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient returns a Client for cfg. Deadlines come from the context and
// cfg.Timeout, not from the HTTP client.
func NewClient(cfg config.RefineConfig, logger *zap.Logger) *Client {
	return &Client{
		config: cfg,
		client: &http.Client{},
		logger: logger.With(zap.String("component", "refine")),
	}
}

// Refine sends the refinement prompt, retrying failed attempts with
// exponential backoff.
func (c *Client) Refine(ctx context.Context, in Input) (*Output, error) {
	if c.config.BaseURL == "" {
		return nil, apperr.New(apperr.CodeRefineNotConfigured, "refinement service is not configured")
	}
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Prompt:      buildPrompt(in),
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeRefineFailed, "encode request", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, timeoutError(ctx.Err())
			}
		}

		var text string
		text, lastErr = c.generate(ctx, body)
		if lastErr == nil {
			out, err := parseOutput(text)
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeRefineFailed, "invalid completion", err)
			}
			c.logger.Info("details refined", zap.Int("attempts", attempt+1))
			return out, nil
		}

		if ctx.Err() != nil {
			return nil, timeoutError(ctx.Err())
		}
		c.logger.Warn("refine attempt failed", zap.Int("attempt", attempt+1), zap.Error(lastErr))
	}

	return nil, apperr.Wrap(apperr.CodeRefineFailed, "refinement service failed", lastErr)
}

func (c *Client) generate(ctx context.Context, body []byte) (string, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + generatePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return gr.Text, nil
}

func timeoutError(err error) error {
	if errors.Is(err, context.Canceled) {
		return apperr.Wrap(apperr.CodeRefineFailed, "refinement cancelled", err)
	}
	return apperr.Wrap(apperr.CodeRefineTimeout, "refinement service timed out", err)
}
