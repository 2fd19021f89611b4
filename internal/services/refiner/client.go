package refiner

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

	"vidsub/internal/services"
)

const (
	defaultBaseURL        = "https://api.openai.com/v1/chat/completions"
	defaultModel          = "gpt-4o"
	defaultHTTPTimeout    = 60 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
)

const systemPrompt = "You are a helpful assistant that refines subtitles. " +
	"You will need to refine the subtitle file based on the instruction. " +
	"Do not change the format of the subtitle data. " +
	"Do not add any other text to the output. " +
	"Respond with a JSON object of the form {\"refined_subtitle\": \"...\"}."

// Config captures the runtime settings required to talk to the refinement model.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the chat completion endpoint used for subtitle refinement.
type Client struct {
	cfg        Config
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the default retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a refinement client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:       &http.Client{Timeout: timeout},
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	return client
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("refiner request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Refine applies instruction to the supplied subtitle document and returns
// the rewritten text.
func (c *Client) Refine(ctx context.Context, subtitleText, instruction string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", services.Wrap(services.ErrAPIKeyMissing, "refiner", "refine", "api key required", nil)
	}
	if strings.TrimSpace(subtitleText) == "" {
		return "", services.Wrap(services.ErrRefinement, "refiner", "refine", "subtitle text required", nil)
	}
	if strings.TrimSpace(instruction) == "" {
		return "", services.Wrap(services.ErrRefinement, "refiner", "refine", "instruction required", nil)
	}

	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("###Instruction###\n %s\n\n###Subtitle###\n %s", instruction, subtitleText)},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	content, err := c.completeWithRetry(ctx, payload)
	if err != nil {
		return "", services.Wrap(services.ErrRefinement, "refiner", "refine", "completion failed", err)
	}

	var parsed struct {
		RefinedSubtitle string `json:"refined_subtitle"`
	}
	if err := decodeModelJSON(content, &parsed); err != nil {
		return "", services.Wrap(services.ErrRefinement, "refiner", "refine", "parse payload", err)
	}
	if strings.TrimSpace(parsed.RefinedSubtitle) == "" {
		return "", services.Wrap(services.ErrRefinement, "refiner", "refine", "model returned an empty document", nil)
	}
	return parsed.RefinedSubtitle, nil
}

func (c *Client) completeWithRetry(ctx context.Context, payload chatRequest) (string, error) {
	attempts := c.retryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := c.sendOnce(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if attempt == attempts || !retryable(err) || ctx.Err() != nil {
			return "", err
		}
		if err := c.sleep(ctx, c.backoffDelay(attempt)); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) sendOnce(ctx context.Context, payload chatRequest) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("refiner request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("refiner request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refiner request: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("refiner request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", &httpStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("refiner request: decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("refiner request: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
	}
	return "", errors.New("refiner request: empty content")
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusRequestTimeout ||
			statusErr.StatusCode == http.StatusTooManyRequests ||
			statusErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retryBaseDelay
	if delay <= 0 {
		return 0
	}
	for i := 1; i < attempt; i++ {
		if delay > defaultRetryMaxDelay/2 {
			return defaultRetryMaxDelay
		}
		delay *= 2
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// decodeModelJSON decodes a JSON payload from a model response, tolerating
// code fences and surrounding prose.
func decodeModelJSON(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}

	sanitized := stripCodeFence(trimmed)
	if start := strings.Index(sanitized, "{"); start >= 0 {
		if end := strings.LastIndex(sanitized, "}"); end > start {
			sanitized = sanitized[start : end+1]
		}
	}
	if err := json.Unmarshal([]byte(sanitized), target); err != nil {
		return fmt.Errorf("decode model payload: %w", err)
	}
	return nil
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
