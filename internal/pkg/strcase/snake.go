// Package strcase converts Go identifier casing to wire casing.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts CamelCase and mixedCase identifiers to snake_case.
// Acronym runs stay together: "OwnerID" becomes "owner_id" and
// "HTTPServer" becomes "http_server".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				// wordEnd|Upper boundary, e.g. owner|ID
				b.WriteRune('_')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// acronym|Word boundary, e.g. HTTP|Server
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
