package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

// SanitizeRichText keeps safe formatting markup (product descriptions).
func SanitizeRichText(s string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(s))
}

// StripHTML removes all markup and returns plain text (contact messages).
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}
