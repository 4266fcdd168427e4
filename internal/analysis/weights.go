// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"math"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// Weigh runs a TF-IDF weighting pass. For every song it overwrites TermFreqs
// with the raw token counts and Weights with a vector aligned to vocab:
//
//	weight(t, d) = count(t, d) / maxCount(d) * ln(N / df(t))
//
// Tokens absent from a song weigh 0. Document frequencies are recomputed on
// every call, so repeated passes over an unchanged corpus produce identical
// vectors. Weigh must not run concurrently with another pass or with a query
// over the same songs.
func Weigh(songs []*types.Song, vocab *Vocabulary) error {
	if vocab == nil {
		return ErrVocabularyNotBuilt
	}

	df := DocumentFrequencies(songs)
	n := float64(len(songs))

	for _, song := range songs {
		tf, maxCount := TermFrequencies(song.Tokens)
		vector := make([]float64, vocab.Len())
		for i, token := range vocab.tokens {
			count, ok := tf[token]
			if !ok {
				continue
			}
			ntf := float64(count) / float64(maxCount)
			idf := math.Log(n / float64(df[token]))
			vector[i] = ntf * idf
		}
		song.TermFreqs = tf
		song.Weights = vector
	}
	return nil
}

// IDF returns ln(N / df(token)) over songs, or 0 when no song contains the
// token.
func IDF(songs []*types.Song, token string) float64 {
	df := DocumentFrequencies(songs)[Normalize(token)]
	if df == 0 {
		return 0
	}
	return math.Log(float64(len(songs)) / float64(df))
}
