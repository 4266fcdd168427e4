// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import "github.com/pdiddy/lyrics-engine/pkg/types"

// TermFrequencies counts every normalized token of a song and reports the
// highest count. maxCount is at least 1, even for an empty token sequence,
// so it is always a valid divisor.
func TermFrequencies(tokens []string) (counts map[string]int, maxCount int) {
	counts = make(map[string]int)
	maxCount = 1
	for _, t := range tokens {
		n := Normalize(t)
		if n == "" {
			continue
		}
		counts[n]++
		if c := counts[n]; c > maxCount {
			maxCount = c
		}
	}
	return counts, maxCount
}

// DocumentFrequencies counts, for every normalized token of the corpus, the
// number of distinct songs containing it at least once. The result is
// computed fresh on every call.
func DocumentFrequencies(songs []*types.Song) map[string]int {
	df := make(map[string]int)
	for _, song := range songs {
		seen := make(map[string]struct{}, len(song.Tokens))
		for _, t := range song.Tokens {
			n := Normalize(t)
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			df[n]++
		}
	}
	return df
}
