package preprocess

import (
	"strings"
	"unicode"
)

// CleanText collapses runs of horizontal whitespace, drops non-ASCII runes,
// and trims the result. Newlines survive so label-anchored extraction can
// stay line-scoped. Original casing is preserved; container numbers and
// similar identifiers are case-sensitive.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	space := false
	for _, r := range text {
		if r > unicode.MaxASCII {
			continue
		}
		switch r {
		case '\n', '\r':
			// drop pending spaces before a line break
			space = false
			if last := b.Len(); last > 0 && b.String()[last-1] != '\n' {
				b.WriteByte('\n')
			}
		case ' ', '\t', '\v', '\f':
			space = true
		default:
			if space && b.Len() > 0 {
				if last := b.String()[b.Len()-1]; last != '\n' {
					b.WriteByte(' ')
				}
			}
			space = false
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize lowercases text and splits it into alphanumeric word tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
