package httpapi

import (
	"strconv"

	"pathways-backend-go/internal/validation"
)

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value < 1 {
		return fallback
	}
	return value
}

// optionalText collapses whitespace and turns an empty result into nil.
func optionalText(value string) *string {
	clean := validation.SanitizeText(value)
	if clean == "" {
		return nil
	}
	return &clean
}
