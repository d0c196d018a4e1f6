// Package strings provides small text helpers shared by adapters and services
package strings

import (
	std "strings"
	"unicode/utf8"
)

// IfEmpty returns def if in is empty, otherwise in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns the first argument with non-whitespace content, trimmed
func Or(vals ...string) string {
	for _, v := range vals {
		if t := std.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// Section renders "label: body" when body has content, "" otherwise
func Section(label, body string) string {
	body = std.TrimSpace(body)
	if body == "" {
		return ""
	}
	return label + ": " + body
}

// JoinLines joins the non-blank parts with newlines
func JoinLines(parts ...string) string {
	var b std.Builder
	for _, p := range parts {
		if std.TrimSpace(p) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
