package analytics

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// detectorLanguages is the candidate set for language detection. A small set
// keeps the lingua models cheap to load while covering the languages the
// tool realistically sees in uploaded documents.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage guesses the dominant language of text and returns its
// ISO-639-1 code (e.g. "en") with a 0-1 confidence. Empty text or an
// undecidable input returns ("", 0). The detector is built lazily and reused.
func DetectLanguage(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}
	confidence := detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
