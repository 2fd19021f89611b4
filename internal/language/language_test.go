package language

import (
	"sort"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"en", true},
		{"EN", true},
		{" es ", true},
		{"haw", true},
		{"jw", true},
		{"zh", true},
		{"xx", false},
		{"eng", false}, // only two-letter codes, except haw/jw
		{"", false},
		{"english", false},
	}
	for _, tc := range tests {
		if got := IsSupported(tc.input); got != tc.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != 99 {
		t.Fatalf("expected 99 supported languages, got %d", len(codes))
	}
	if !sort.StringsAreSorted(codes) {
		t.Error("codes must be sorted")
	}
	for _, code := range codes {
		if !IsSupported(code) {
			t.Errorf("listed code %q not reported as supported", code)
		}
	}

	// Mutating the returned slice must not affect later calls.
	codes[0] = "zz"
	if Codes()[0] != "af" {
		t.Error("Codes must return a copy")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"DE", "German"},
		{"ja", "Japanese"},
		{"haw", "Hawaiian"},
		{"", "Unknown"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayNameFallback(t *testing.T) {
	// Input that no CLDR table can resolve falls back to a title-cased copy.
	if got := DisplayName("zzzz-not-a-language"); got == "" {
		t.Error("fallback display name must not be empty")
	}
}
