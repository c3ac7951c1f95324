// Package locator classifies raw input lines into direct URLs or search keywords.
package locator

import (
	"strings"

	"vidgrab/internal/model"
)

const directPrefix = "http"

// Classify decides whether s is a direct URL, a search keyword or invalid.
// Any non-blank string that does not start with "http" (case-insensitive)
// is a search, including provider pseudo-schemes such as "ytsearch:".
func Classify(s string) model.LocatorKind {
	t := strings.TrimSpace(s)
	if t == "" {
		return model.LocatorInvalid
	}
	if len(t) >= len(directPrefix) && strings.EqualFold(t[:len(directPrefix)], directPrefix) {
		return model.LocatorDirect
	}
	return model.LocatorSearch
}

// NormalizeURL strips tracking and playlist suffixes by truncating at the first '&'.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '&'); i >= 0 {
		return raw[:i]
	}
	return raw
}
