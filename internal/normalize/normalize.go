// Package normalize canonicalizes free-text company names and tickers
// so guess input and the curated list compare on the same form.
package normalize

import "strings"

// Normalize lowercases the input, spells out "&" as "and", collapses
// every run of non-alphanumeric characters to a single space and trims.
// Pure and total: any input (including empty) yields a valid result.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
