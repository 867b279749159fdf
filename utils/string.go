package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"strings"
)

// CacheKey derives the deterministic session key for a query or URL:
// trimmed, lower-cased, SHA-256, hex-encoded. Two inputs with the same
// normalized form always map to the same key.
func CacheKey(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// SanitizeTitle strips the "YouTube" suffix some extractors append and
// escapes the result for HTML-formatted messages.
func SanitizeTitle(title string) string {
	if title == "" {
		return ""
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(title, "YouTube", ""))
	return html.EscapeString(cleaned)
}

// Truncate cuts s to at most max runes. Button labels and audio metadata
// have hard length limits on the Telegram side.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// FormatDuration renders a duration in seconds as M:SS or H:MM:SS.
// Non-positive durations render as an empty string.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	rem := seconds % 3600
	m := rem / 60
	s := rem % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
