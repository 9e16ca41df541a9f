package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone requires at least 10 digits; separators and a leading + are tolerated.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 20 {
		return "", false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", false
		}
	}
	return s, digits >= 10
}

// Name requires 2..100 characters after trimming.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 2 && len(s) <= 100
}

// Address requires 10..500 characters after trimming.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 10 && len(s) <= 500
}

func City(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 2 && len(s) <= 100
}

func PostalCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 4 && len(s) <= 10
}

// Notes is optional but capped.
func Notes(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 500
}

// Qty parses a quantity, clamping to 1..50.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// ID validates a simple resource identifier (product/category/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Slug validates a URL-safe slug.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 100 && reSlug.MatchString(s)
}

// Rating validates a review rating in 1..5.
func Rating(n int) bool { return n >= 1 && n <= 5 }

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
