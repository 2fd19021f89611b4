package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supported lists the ISO 639-1 codes the Whisper transcription API accepts.
// Kept sorted so Codes can return it directly.
var supported = []string{
	"af", "am", "ar", "as", "az", "ba", "be", "bg", "bn", "bo", "br", "bs",
	"ca", "cs", "cy", "da", "de", "el", "en", "es", "et", "eu", "fa", "fi",
	"fo", "fr", "gl", "gu", "ha", "haw", "he", "hi", "hr", "ht", "hu", "hy",
	"id", "is", "it", "ja", "jw", "ka", "kk", "km", "kn", "ko", "la", "lb",
	"ln", "lo", "lt", "lv", "mg", "mi", "mk", "ml", "mn", "mr", "ms", "mt",
	"my", "ne", "nl", "nn", "no", "oc", "pa", "pl", "ps", "pt", "ro", "ru",
	"sa", "sd", "si", "sk", "sl", "sn", "so", "sq", "sr", "su", "sv", "sw",
	"ta", "te", "tg", "th", "tk", "tl", "tr", "tt", "uk", "ur", "uz", "vi",
	"yi", "yo", "zh",
}

var supportedSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(supported))
	for _, code := range supported {
		set[code] = struct{}{}
	}
	return set
}()

// IsSupported reports whether code names a transcription language. Matching
// is case-insensitive.
func IsSupported(code string) bool {
	_, ok := supportedSet[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// Codes returns the supported language codes in lexical order.
func Codes() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// DisplayName resolves a language code to its English name. Codes the CLDR
// tables cannot resolve fall back to a title-cased copy of the code itself.
func DisplayName(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return "Unknown"
	}
	if tag, err := language.Parse(normalized); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return cases.Title(language.Und).String(normalized)
}
