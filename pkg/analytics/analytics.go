// Package analytics implements the deterministic keyword-frequency analysis
// behind the dashboard: tokenize, stop-word filter, length filter, exact
// counting and top-N selection. Everything here is a pure function of its
// inputs and safe to re-invoke.
package analytics

import (
	"regexp"
	"strings"

	"docsight/models"
)

// wordPattern matches maximal runs of alphanumeric/underscore characters.
// Non-word characters are separators and never produce tokens.
var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

func lower(s string) string { return strings.ToLower(s) }

// Analyzer bundles the configuration of a keyword analysis: the stop-word
// set and the token length cutoff. The zero value is not useful; use New.
type Analyzer struct {
	stopwords map[string]struct{}
	minLength int
}

// New returns an Analyzer with the given stop-word set and minimum token
// length. A nil stopwords map selects the built-in set. Tokens with length
// <= minLength are filtered, so minLength 3 keeps words of 4+ characters.
func New(stopwords map[string]struct{}, minLength int) *Analyzer {
	if stopwords == nil {
		stopwords = defaultStopwords
	}
	return &Analyzer{stopwords: stopwords, minLength: minLength}
}

// Tokenize lowercases text and extracts word tokens in left-to-right order.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(lower(text), -1)
}

// Filter removes stop-words (case-insensitive) and short tokens,
// preserving the order of the survivors.
func (a *Analyzer) Filter(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = lower(tok)
		if len(tok) <= a.minLength {
			continue
		}
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// Rank counts occurrences of each token and returns the topN most frequent,
// ordered by count descending. Ties break by first appearance in the token
// sequence, which makes the ranking reproducible for the same input.
func Rank(tokens []string, topN int) []models.KeywordEntry {
	if topN <= 0 || len(tokens) == 0 {
		return nil
	}
	freq := Frequencies(tokens)
	return freq.Top(topN)
}

// UniqueCount returns the number of distinct tokens in the sequence.
// It is independent of any top-N cutoff.
func UniqueCount(tokens []string) int {
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[tok] = struct{}{}
	}
	return len(seen)
}
