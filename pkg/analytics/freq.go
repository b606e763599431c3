package analytics

import (
	"sort"

	"docsight/models"
)

// FreqMap holds exact occurrence counts for a token stream plus the position
// at which each token first appeared. First-seen positions are what make the
// top-N ordering deterministic when counts tie.
type FreqMap struct {
	Counts map[string]int
	First  map[string]int
	Total  int
}

// NewFreqMap returns an empty frequency map.
func NewFreqMap() *FreqMap {
	return &FreqMap{
		Counts: make(map[string]int),
		First:  make(map[string]int),
	}
}

// Frequencies counts a filtered token sequence.
func Frequencies(tokens []string) *FreqMap {
	f := NewFreqMap()
	f.Add(tokens)
	return f
}

// Add appends a token sequence to the stream and updates the counts.
func (f *FreqMap) Add(tokens []string) {
	for _, tok := range tokens {
		if _, seen := f.First[tok]; !seen {
			f.First[tok] = f.Total
		}
		f.Counts[tok]++
		f.Total++
	}
}

// Merge appends another frequency map as if its token stream followed this
// one, offsetting first-seen positions by the current stream length.
func (f *FreqMap) Merge(other *FreqMap) {
	for tok, first := range other.First {
		if _, seen := f.First[tok]; !seen {
			f.First[tok] = f.Total + first
		}
	}
	for tok, count := range other.Counts {
		f.Counts[tok] += count
	}
	f.Total += other.Total
}

// Unique returns the number of distinct tokens counted.
func (f *FreqMap) Unique() int {
	return len(f.Counts)
}

// Top returns the n most frequent tokens ordered by count descending,
// ties broken by first appearance in the token stream.
func (f *FreqMap) Top(n int) []models.KeywordEntry {
	if n <= 0 || len(f.Counts) == 0 {
		return nil
	}

	entries := make([]models.KeywordEntry, 0, len(f.Counts))
	for word, count := range f.Counts {
		entries = append(entries, models.KeywordEntry{Word: word, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return f.First[entries[i].Word] < f.First[entries[j].Word]
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
