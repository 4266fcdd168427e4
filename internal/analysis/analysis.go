// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis computes lexical-weight profiles over a lyrics corpus and
// answers relevance queries against them.
//
// A corpus snapshot goes through three steps: a vocabulary is built once,
// a weighting pass attaches raw term counts and a TF-IDF vector to every
// song, and relevance queries then read those vectors to rank the tokens
// that characterize a selection of songs. Analyzer ties the steps together
// and enforces their order; the package-level functions are pure and can be
// used directly by callers that manage their own state.
//
// Tokens are normalized (trimmed, lower-cased) wherever they are compared or
// counted, so vocabulary entries and frequency tables always agree.
package analysis

import (
	"errors"
	"strings"
)

var (
	// ErrVocabularyNotBuilt is returned when a weighting pass or a relevance
	// query runs before a vocabulary exists for the corpus snapshot.
	ErrVocabularyNotBuilt = errors.New("vocabulary not built")

	// ErrNotWeighted is returned when a relevance query reads songs whose
	// weights were not computed against the current vocabulary.
	ErrNotWeighted = errors.New("corpus not weighted against current vocabulary")

	// ErrInvalidQuery is returned for relevance queries that cannot be
	// answered as stated, such as a non-positive token count.
	ErrInvalidQuery = errors.New("invalid relevance query")
)

// Normalize returns the canonical form of a token: surrounding whitespace
// removed and lower-cased. It returns "" for blank tokens.
func Normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// NormalizeTokens returns the normalized tokens in order, dropping blanks.
func NormalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
