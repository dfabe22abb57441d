package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every tag and attribute, leaving text content only.
var strict = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user-supplied text. Plain text passes
// through unchanged; entity escaping done by the policy is undone so the
// stored value is the literal text.
func SanitizeText(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// SanitizeDescription sanitizes an optional description. A nil input, or one
// that is empty once sanitized, stores as absent.
func SanitizeDescription(description *string) *string {
	if description == nil {
		return nil
	}

	clean := SanitizeText(*description)

	if strings.TrimSpace(clean) == "" {
		return nil
	}

	return &clean
}
