package utils

import (
	"strings"
	"unicode/utf8"
)

const maxFilenamePart = 60

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fallback returns v trimmed, or fallback when v is blank.
func Fallback(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// SafeFilenamePart replaces whitespace runs and path characters with "_" and
// caps the result at 60 bytes without splitting a character.
func SafeFilenamePart(s, fallback string) string {
	s = strings.Join(strings.Fields(s), "_")
	if s == "" {
		return fallback
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > maxFilenamePart {
		s = s[:maxFilenamePart]
		for len(s) > 0 && !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
	}
	return s
}
