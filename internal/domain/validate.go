package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for record validation. Services wrap these with the
// offending field or value so callers can match with errors.Is and still
// surface a descriptive message.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidDate       = errors.New("invalid date value")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidListField  = errors.New("invalid list field")
	ErrInvalidEmail      = errors.New("invalid email address")
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)

	timePattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Accepted input layouts for date normalization, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2006/01/02",
	"01/02/2006",
}

// GenerateSlug derives a URL-safe identifier from a title: trim, lowercase,
// strip characters outside [a-z0-9\s-], collapse whitespace and dash runs to
// single dashes, and trim leading/trailing dashes. Always returns a string;
// a title with no valid characters yields an empty slug.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses a free-form date string and returns it as YYYY-MM-DD
// using UTC calendar fields. Returns ErrInvalidDate when no layout matches.
func NormalizeDate(value string) (string, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// NormalizeTime checks that the value is already HH:MM in 24-hour form and
// returns it trimmed. No conversion is attempted; "9:00 AM" is rejected.
func NormalizeTime(value string) (string, error) {
	v := strings.TrimSpace(value)
	if !timePattern.MatchString(v) {
		return "", fmt.Errorf("%w: %q (expected HH:MM, 24-hour)", ErrInvalidTimeFormat, value)
	}
	return v, nil
}

// IsNonEmptyString reports whether the value has non-whitespace content.
func IsNonEmptyString(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsNonEmptyStringSlice reports whether values is non-empty and every element
// is a non-empty string after trimming.
func IsNonEmptyStringSlice(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// IsValidEmail reports whether the value matches a basic local@domain.tld shape.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// NormalizeEmail lowercases and trims an email address. Validation is separate.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
