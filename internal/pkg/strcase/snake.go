package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a Go identifier to snake_case, keeping acronyms
// intact (HTTPServer becomes http_server, userID becomes user_id).
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)

	for i := range runes {
		r := runes[i]

		// Word boundaries: lower/digit followed by upper, or the last
		// capital of an acronym followed by a lowercase word.
		if i > 0 {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}

			if unicode.IsUpper(r) {
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					b.WriteRune('_')
				} else if unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next) {
					b.WriteRune('_')
				}
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
