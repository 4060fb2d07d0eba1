// Package validation decides whether pasted text looks like a full article
// before an analysis call is spent on it.
package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMinWords          = 50
	DefaultMinSentences      = 3
	DefaultMinSentenceLength = 20
)

type Policy struct {
	MinWords     int
	MinSentences int
	// A segment counts as a sentence only when its trimmed length in
	// characters exceeds this.
	MinSentenceLength int
}

func DefaultPolicy() Policy {
	return Policy{
		MinWords:          DefaultMinWords,
		MinSentences:      DefaultMinSentences,
		MinSentenceLength: DefaultMinSentenceLength,
	}
}

func (p Policy) IsSubmittable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if WordCount(trimmed) < p.MinWords {
		return false
	}

	return p.sentenceCount(text) >= p.MinSentences
}

func (p Policy) sentenceCount(text string) int {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	count := 0
	for _, s := range segments {
		if utf8.RuneCountInString(strings.TrimSpace(s)) > p.MinSentenceLength {
			count++
		}
	}
	return count
}

// IsSubmittable applies the default policy.
func IsSubmittable(text string) bool {
	return DefaultPolicy().IsSubmittable(text)
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}
