package report

import (
	"regexp"
	"strings"
)

// phoneNoise strips the formatting characters people type into phone fields.
var phoneNoise = strings.NewReplacer(
	" ", "",
	"\t", "",
	"-", "",
	"(", "",
	")", "",
)

// phoneLikeRe matches an optional leading +, then at least seven characters
// drawn from digits, spaces, hyphens and parentheses.
var phoneLikeRe = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)

// NormalizePhone turns a user-entered phone string into its comparable form:
// whitespace, hyphens, parentheses and the leading + are removed. Length is
// not validated here. Idempotent.
func NormalizePhone(raw string) string {
	cleaned := phoneNoise.Replace(raw)
	return strings.TrimPrefix(cleaned, "+")
}

// IsPhoneLike reports whether free text has the shape of a phone number, so a
// search query can additionally be tried as a phone lookup.
func IsPhoneLike(text string) bool {
	return phoneLikeRe.MatchString(text)
}

// EscapeLike escapes ILIKE pattern metacharacters so user input is always
// matched as a literal substring.
func EscapeLike(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `%`, `\%`)
	text = strings.ReplaceAll(text, `_`, `\_`)
	return text
}
