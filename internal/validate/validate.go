package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reQ = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)

// Title validates a product title for the add/update forms.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Price parses a user-entered price; rejects non-numeric or negative input.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Credentials checks the login form has both fields filled in.
func Credentials(username, password string) bool {
	return strings.TrimSpace(username) != "" && password != ""
}

// ID parses a positive integer resource id.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
