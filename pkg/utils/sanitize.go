package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// SanitizeString strips any HTML and trims whitespace from user input.
func SanitizeString(input string) string {
	return strings.TrimSpace(policy.Sanitize(input))
}
