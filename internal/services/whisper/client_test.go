package whisper

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidsub/internal/services"
)

func writeAudioFixture(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.ogg")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeDecodesVerboseJSON(t *testing.T) {
	var gotAuth string
	var gotFields map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotFields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			gotFields[name] = values[0]
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "Hello world. This is a test.",
			"language": "english",
			"duration": 4.5,
			"segments": [
				{"id": 0, "start": 0.0, "end": 2.0, "text": " Hello world. "},
				{"id": 1, "start": 2.5, "end": 4.5, "text": "This is a test."}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	tr, err := client.Transcribe(context.Background(), writeAudioFixture(t, 64), "en")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	for field, want := range map[string]string{
		"model":                     "whisper-1",
		"response_format":           "verbose_json",
		"timestamp_granularities[]": "segment",
		"language":                  "en",
	} {
		if gotFields[field] != want {
			t.Errorf("form field %s = %q, want %q", field, gotFields[field], want)
		}
	}

	if tr.Duration != 4.5 || tr.Language != "english" {
		t.Errorf("unexpected transcription header: %+v", tr)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(tr.Segments))
	}
	if tr.Segments[0].Text != "Hello world." {
		t.Errorf("segment text must be trimmed: %q", tr.Segments[0].Text)
	}
}

func TestTranscribeSynthesizesSegmentWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": " Only text. ", "language": "en", "duration": 3.0}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	tr, err := client.Transcribe(context.Background(), writeAudioFixture(t, 16), "en")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(tr.Segments) != 1 {
		t.Fatalf("expected a synthesized segment, got %d", len(tr.Segments))
	}
	seg := tr.Segments[0]
	if seg.Start != 0 || seg.End != 3.0 || seg.Text != "Only text." {
		t.Errorf("unexpected synthesized segment: %+v", seg)
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, 16), "en")
	if !errors.Is(err, services.ErrAPIKeyMissing) {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestTranscribeRejectsOversizedUpload(t *testing.T) {
	client := NewClient(Config{APIKey: "sk-test", MaxUploadMiB: 1})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, 2*1024*1024), "en")
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size message, got %v", err)
	}
}

func TestTranscribeMissingAudioFile(t *testing.T) {
	client := NewClient(Config{APIKey: "sk-test"})
	_, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.ogg"), "en")
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
}

func TestTranscribeSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-bad", BaseURL: server.URL})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, 16), "en")
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Fatalf("API error message lost: %v", err)
	}
}

func TestTranscribeOmitsEmptyLanguage(t *testing.T) {
	var hadLanguage bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		_, hadLanguage = r.MultipartForm.Value["language"]
		_, _ = w.Write([]byte(`{"text": "x", "duration": 1.0}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	if _, err := client.Transcribe(context.Background(), writeAudioFixture(t, 16), "  "); err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if hadLanguage {
		t.Error("blank language hint must not be sent")
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		seconds float64
		want    float64
	}{
		{0, 0},
		{60, 0.006},
		{600, 0.06},
		{90, 0.009},
	}
	for _, tc := range tests {
		if got := EstimateCost(tc.seconds); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("EstimateCost(%v) = %v, want %v", tc.seconds, got, tc.want)
		}
	}
}
