// Package mapreduce aggregates per-document keyword frequencies into the
// single dashboard view. Each document is mapped to its own frequency map;
// the reduce step merges them in document order so tie-breaks stay
// deterministic across runs.
package mapreduce

import (
	"fmt"

	"docsight/models"
	"docsight/pkg/analytics"
)

// Map tokenizes and filters a single document's full raw text and returns
// its frequency map.
func Map(content string, a *analytics.Analyzer) *analytics.FreqMap {
	return analytics.Frequencies(a.Filter(analytics.Tokenize(content)))
}

// Reduce merges per-document frequency maps into one aggregate. Order
// matters: first-seen positions follow the order of the slice.
func Reduce(intermediate []*analytics.FreqMap) *analytics.FreqMap {
	final := analytics.NewFreqMap()
	for _, part := range intermediate {
		if part != nil {
			final.Merge(part)
		}
	}
	return final
}

// FormatKeywords renders ranking entries as "word:count" strings for
// compact display and serialization.
func FormatKeywords(entries []models.KeywordEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%s:%d", e.Word, e.Count)
	}
	return out
}
