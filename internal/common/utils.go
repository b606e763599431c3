package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ContentHash computes the SHA256 hash of content and returns the hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SanitizeIdentifier cleans up a caller-supplied document identifier,
// typically an uploaded filename. Path separators and control characters are
// common copy-paste artifacts and get collapsed to underscores.
func SanitizeIdentifier(name string) string {
	cleaned := strings.TrimSpace(name)

	// Keep only the base name of anything that looks like a path.
	if idx := strings.LastIndexAny(cleaned, "/\\"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}

	var sb strings.Builder
	for _, r := range cleaned {
		if r < 0x20 || r == 0x7f {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(r)
	}
	cleaned = strings.TrimSpace(sb.String())

	if cleaned == "" {
		return "document"
	}
	return cleaned
}

// UniqueIdentifier returns name if unused and a suffixed variant otherwise:
// "report.pdf", "report.pdf (2)", "report.pdf (3)". The used map tracks how
// many times each base name has been handed out and must be reused across a
// batch.
func UniqueIdentifier(name string, used map[string]int) string {
	used[name]++
	if used[name] == 1 {
		return name
	}

	for {
		candidate := fmt.Sprintf("%s (%d)", name, used[name])
		if used[candidate] == 0 {
			used[candidate]++
			return candidate
		}
		used[name]++
	}
}

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SheetCSVURL rewrites a public Google Sheet URL to its CSV export endpoint.
// Already-exported CSV URLs pass through unchanged.
func SheetCSVURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid sheet URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("sheet URL must be http(s): %q", raw)
	}

	if strings.Contains(parsed.Path, "/export") {
		return cleaned, nil
	}

	matches := sheetIDPattern.FindStringSubmatch(parsed.Path)
	if matches == nil {
		return "", fmt.Errorf("not a Google Sheet URL: %q", raw)
	}

	exportURL := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", matches[1])
	if gid := parsed.Query().Get("gid"); gid != "" {
		exportURL += "&gid=" + gid
	}
	return exportURL, nil
}
