package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vidsub/internal/services"
	"vidsub/internal/subtitle"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1/audio/transcriptions"
	defaultModel        = "whisper-1"
	defaultHTTPTimeout  = 120 * time.Second
	defaultMaxUploadMiB = 25

	// The API bills per minute of audio.
	costPerMinuteUSD = 0.006
)

// Config captures the runtime settings required to talk to the
// transcription API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	MaxUploadMiB   int
}

// Client wraps the Whisper transcription endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
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

// NewClient constructs a transcription client using the supplied configuration.
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
			MaxUploadMiB:   cfg.MaxUploadMiB,
		},
		httpClient: &http.Client{Timeout: timeout},
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
	if client.cfg.MaxUploadMiB <= 0 {
		client.cfg.MaxUploadMiB = defaultMaxUploadMiB
	}
	return client
}

// verboseResponse mirrors the fields of the verbose_json response format the
// pipeline consumes.
type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Transcribe uploads the audio file and returns the timed transcription.
// language is an ISO 639-1 hint passed straight through to the API.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (subtitle.Transcription, error) {
	var empty subtitle.Transcription
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, services.Wrap(services.ErrAPIKeyMissing, "whisper", "transcribe", "api key required", nil)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe", fmt.Sprintf("audio file not found: %s", audioPath), err)
	}
	maxBytes := int64(c.cfg.MaxUploadMiB) * 1024 * 1024
	if info.Size() > maxBytes {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe",
			fmt.Sprintf("audio file too large (%.1fMiB, limit %dMiB)", float64(info.Size())/(1024*1024), c.cfg.MaxUploadMiB), nil)
	}

	body, contentType, err := c.encodeRequestBody(audioPath, language)
	if err != nil {
		return empty, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, body)
	if err != nil {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe", "http error", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe", "read response", err)
	}

	var decoded verboseResponse
	decodeErr := json.Unmarshal(payload, &decoded)

	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(payload))
		if decodeErr == nil && decoded.Error != nil {
			message = decoded.Error.Message
		}
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe",
			fmt.Sprintf("http %d: %s", resp.StatusCode, message), nil)
	}
	if decodeErr != nil {
		return empty, services.Wrap(services.ErrTranscription, "whisper", "transcribe", "decode response", decodeErr)
	}

	return buildTranscription(decoded), nil
}

func (c *Client) encodeRequestBody(audioPath, language string) (*bytes.Buffer, string, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "open audio file", err)
	}
	defer audio.Close()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "encode upload", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "encode upload", err)
	}

	fields := [][2]string{
		{"model", c.cfg.Model},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "segment"},
	}
	if language = strings.TrimSpace(language); language != "" {
		fields = append(fields, [2]string{"language", language})
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "encode upload", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", services.Wrap(services.ErrTranscription, "whisper", "transcribe", "encode upload", err)
	}
	return buf, writer.FormDataContentType(), nil
}

func buildTranscription(decoded verboseResponse) subtitle.Transcription {
	tr := subtitle.Transcription{
		Text:     decoded.Text,
		Language: decoded.Language,
		Duration: decoded.Duration,
	}
	for _, segment := range decoded.Segments {
		tr.Segments = append(tr.Segments, subtitle.Segment{
			ID:    segment.ID,
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		})
	}
	// A response without segment timestamps still yields one cue spanning
	// the whole clip.
	if len(tr.Segments) == 0 && strings.TrimSpace(tr.Text) != "" {
		tr.Segments = []subtitle.Segment{{
			ID:    0,
			Start: 0,
			End:   tr.Duration,
			Text:  strings.TrimSpace(tr.Text),
		}}
	}
	return tr
}

// EstimateCost returns the expected API charge in USD for transcribing the
// given amount of audio.
func EstimateCost(durationSeconds float64) float64 {
	return durationSeconds / 60.0 * costPerMinuteUSD
}
