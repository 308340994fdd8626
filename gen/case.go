package gen

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into words on separators, lower-to-upper
// boundaries, and acronym ends ("HTTPServer" splits as "HTTP", "Server").
// Unknown characters pass through inside the current word.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			afterLower := unicode.IsLower(prev) || unicode.IsDigit(prev)
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if afterLower || acronymEnd {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// ToUpperCamelCase converts a raw identifier to UpperCamelCase.
func ToUpperCamelCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToLowerCamelCase converts a raw identifier to lowerCamelCase.
func ToLowerCamelCase(s string) string {
	var b strings.Builder
	for i, w := range splitWords(s) {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
		} else {
			b.WriteString(capitalize(w))
		}
	}
	return b.String()
}

// ToShoutySnakeCase converts a raw identifier to UPPER_SNAKE_CASE.
func ToShoutySnakeCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}
