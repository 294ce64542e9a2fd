// Package genai provides a client for the Gemini generateContent API
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultModel      = "gemini-2.0-flash"
	defaultTimeout    = 30 * time.Second
	maxRetryBackoff   = 10 * time.Second
	maxResponseLength = 4 << 20
)

// Config holds generative model client settings
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// APIError represents a non-2xx response from the model API
type APIError struct {
	StatusCode int
	Message    string
	retryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model API error (status %d): %s", e.StatusCode, e.Message)
}

// Client calls the Gemini generateContent endpoint
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new model client
//
// Empty config fields fall back to the public Gemini endpoint, gemini-2.0-flash and a 30 second timeout.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		maxRetries: maxRetries,
		backoff:    time.Second,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText sends a text prompt and returns the concatenated text of the first candidate
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

// GenerateTextWithImage sends a prompt together with an inline image
func (c *Client) GenerateTextWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	return c.generate(ctx, []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
	})
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Role: "user", Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	backoff := c.backoff
	for attempt := 0; ; attempt++ {
		text, err := c.doOnce(ctx, body)
		if err == nil {
			return text, nil
		}
		if attempt >= c.maxRetries || !isRetryable(err) || ctx.Err() != nil {
			return "", err
		}

		sleepFor := backoff
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.retryAfter > 0 {
			sleepFor = apiErr.retryAfter
		}
		if sleepFor > maxRetryBackoff {
			sleepFor = maxRetryBackoff
		}
		c.logger.Warn("model request retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries),
			zap.Duration("sleep", sleepFor),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
}

func (c *Client) doOnce(ctx context.Context, body []byte) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLength))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed generateResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		if decodeErr == nil && parsed.Error != nil {
			apiErr.Message = parsed.Error.Message
		}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			apiErr.retryAfter = time.Duration(secs) * time.Second
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response text")
	}
	return text, nil
}

// isRetryable reports whether a failed request may succeed when repeated
func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
