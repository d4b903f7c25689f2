// Package rendering interprets a TemplateSchema over ResumeData into a continuous HTML document tree.
package rendering

import "strings"

// SanitizeCSSValue strips characters that would let a schema value escape its declaration.
// Removed characters: ; { } < > " ' \ and control characters
func SanitizeCSSValue(value string) string {
	if value == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(value))

	for _, r := range value {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\':
			continue
		default:
			if r < 0x20 || r == 0x7f {
				continue
			}
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// JoinNonEmpty joins the non-blank items with sep, trimming each item.
func JoinNonEmpty(sep string, items ...string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}
