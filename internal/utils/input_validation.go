package utils

import (
	"regexp"
	"strings"
)

var (
	nonNegativeDecimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	githubNamePattern         = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]{0,99})$`)
)

// ParseNonNegativeDecimal validates a user supplied amount such as a monthly fee or markup
// percentage. Invalid input is replaced with "0" and reported through ok.
func ParseNonNegativeDecimal(input string) (value string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if !nonNegativeDecimalPattern.MatchString(trimmed) {
		return "0", false
	}
	return trimmed, true
}

// IsValidGitHubName checks an owner or repository name against GitHub's naming rules.
func IsValidGitHubName(name string) bool {
	return githubNamePattern.MatchString(name)
}

// NormalizeCurrency uppercases a currency code, defaulting to USD when empty.
func NormalizeCurrency(input string) string {
	c := strings.ToUpper(strings.TrimSpace(input))
	if c == "" {
		return "USD"
	}
	return c
}
