// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"sort"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// Vocabulary is the ordered set of distinct tokens spanning a corpus
// snapshot. Its order is lexicographic and fixed once built; every weight
// vector computed against it is indexed by that order.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// BuildVocabulary collects the distinct normalized tokens of all songs and
// sorts them. An empty corpus yields an empty vocabulary.
func BuildVocabulary(songs []*types.Song) *Vocabulary {
	seen := make(map[string]struct{})
	for _, song := range songs {
		for _, t := range song.Tokens {
			if n := Normalize(t); n != "" {
				seen[n] = struct{}{}
			}
		}
	}

	tokens := make([]string, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	index := make(map[string]int, len(tokens))
	for i, t := range tokens {
		index[t] = i
	}
	return &Vocabulary{tokens: tokens, index: index}
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Token returns the token at position i.
func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

// Tokens returns a copy of the ordered tokens.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Index returns the vector position of token, or false if the token is not
// part of the vocabulary. The token is normalized before lookup.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[Normalize(token)]
	return i, ok
}
