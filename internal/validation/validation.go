// Package validation holds the field rules applied to student data before it is
// persisted. Every function here is pure: no I/O, no shared state.
package validation

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ().\-]{7,20}$`)
)

// Result aggregates every violated rule of a payload.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func newResult(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateDate accepts an empty string, or a YYYY-MM-DD string naming a real calendar date.
func ValidateDate(s string) bool {
	if s == "" {
		return true
	}
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidateDateRange holds when either bound is missing or start is not after end.
func ValidateDateRange(start, end string) bool {
	if start == "" || end == "" {
		return true
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	return !s.After(e)
}

// ValidateURL accepts an empty string or an absolute URL with scheme and host.
func ValidateURL(u string) bool {
	if u == "" {
		return true
	}
	_, ok := parseAbsoluteURL(u)
	return ok
}

func parseAbsoluteURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}

// ValidateText checks the character count of t against [min, max].
// Empty text is only acceptable when min is zero.
func ValidateText(t string, min, max int) bool {
	if t == "" {
		return min == 0
	}
	n := utf8.RuneCountInString(t)
	return n >= min && n <= max
}

// ValidateNumber treats an empty string as an absent optional value.
func ValidateNumber(raw string, min, max int) bool {
	if raw == "" {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return n >= min && n <= max
}

func oneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
