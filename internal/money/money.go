// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package money recognizes and parses dollar amounts in price-list text.
// Only "$"-prefixed amounts count as prices; bare numbers never do.
package money

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches "$" followed by digits and thousands separators
// with an optional decimal part, e.g. "$1,234.56" or "$99".
var amountPattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// cleaner strips everything that is not part of the number itself.
var cleaner = regexp.MustCompile(`[$,\s]`)

// Find returns the first currency amount in text.
func Find(text string) (string, bool) {
	m := amountPattern.FindString(text)
	return m, m != ""
}

// Contains reports whether text holds a currency amount.
func Contains(text string) bool {
	return amountPattern.MatchString(text)
}

// Parse strips "$", commas, and whitespace from s and parses the rest as
// a decimal number.
func Parse(s string) (float64, error) {
	cleaned := cleaner.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return v, nil
}

// LooksPriced is the loose free-text test: a "$" and at least one digit
// anywhere on the line.
func LooksPriced(line string) bool {
	return strings.Contains(line, "$") && strings.ContainsAny(line, "0123456789")
}
