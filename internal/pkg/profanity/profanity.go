// Package profanity wraps go-away's static wordlist detector behind the
// core ProfanityFilter port. Detection is best-effort: leet-speak and
// spacing obfuscation are normalised, but no false-negative guarantee is
// made and the filter is not a security boundary.
package profanity

import (
	goaway "github.com/TwiN/go-away"
)

type Filter struct {
	detector *goaway.ProfanityDetector
}

// NewFilter builds the detector once; the wordlist is static for the
// lifetime of the process.
func NewFilter() *Filter {
	return &Filter{detector: goaway.NewProfanityDetector()}
}

func (f *Filter) IsProfane(text string) bool {
	return f.detector.IsProfane(text)
}
