// Package htmlsanitize cleans strings that originated outside the process
// before they reach a template. Backend error details and user-entered notes
// both pass through here.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows basic formatting but nothing executable.
	ugc = bluemonday.UGCPolicy()

	// strict strips every tag, leaving text only.
	strict = bluemonday.StrictPolicy()
)

// Sanitize removes unsafe HTML, keeping common formatting tags.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result safe for template output.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// DetailText strips all markup from a message so it can be shown as plain
// text. Used for error details returned by the backend, which should never
// carry HTML.
func DetailText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph, turning
// newlines into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay converts a stored value to safe HTML. Plain text is
// escaped and paragraph-wrapped; anything with markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
