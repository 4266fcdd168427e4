// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"slices"
	"sort"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// ValidateQuery reports whether q can be answered.
func ValidateQuery(q types.RelevanceQuery) error {
	if q.TopN < 1 {
		return fmt.Errorf("%w: top %d tokens requested", ErrInvalidQuery, q.TopN)
	}
	if q.YearFrom > q.YearTo {
		return fmt.Errorf("%w: year range %d-%d is reversed", ErrInvalidQuery, q.YearFrom, q.YearTo)
	}
	return nil
}

// Select returns the songs matching the query's artists, inclusive year
// range and compilation policy, in corpus order.
func Select(songs []*types.Song, q types.RelevanceQuery) []*types.Song {
	var selected []*types.Song
	for _, song := range songs {
		if !q.IncludeCompilations && song.Compilation {
			continue
		}
		if !slices.Contains(q.Artists, song.Artist) {
			continue
		}
		if song.Year < q.YearFrom || song.Year > q.YearTo {
			continue
		}
		selected = append(selected, song)
	}
	return selected
}

// MostRelevantTokens ranks the vocabulary by mean weight over the songs the
// query selects, keeps the TopN tokens (ties broken lexicographically), and
// groups them by their summed raw frequency across the selection. Buckets
// are ordered by descending frequency. Tokens that never occur in the
// selection are left out. When nothing is selected the result is empty.
//
// The selected songs must have been weighed against vocab.
func MostRelevantTokens(songs []*types.Song, vocab *Vocabulary, q types.RelevanceQuery) (types.RelevanceResult, error) {
	result, _, err := relevance(songs, vocab, q)
	return result, err
}

// SectionRelevance splits the query's year range into consecutive sections
// of width years (the last one clipped to YearTo) and answers the query for
// each section. Sections without songs carry an empty result.
func SectionRelevance(songs []*types.Song, vocab *Vocabulary, q types.RelevanceQuery, width int) ([]types.SectionResult, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: section width %d", ErrInvalidQuery, width)
	}
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	var sections []types.SectionResult
	for from := q.YearFrom; ; from += width {
		to := q.YearTo
		if q.YearTo-from >= width {
			to = from + width - 1
		}
		sub := q
		sub.YearFrom, sub.YearTo = from, to

		buckets, n, err := relevance(songs, vocab, sub)
		if err != nil {
			return nil, fmt.Errorf("section %d-%d: %w", from, to, err)
		}
		sections = append(sections, types.SectionResult{
			From:    from,
			To:      to,
			Songs:   n,
			Buckets: buckets,
		})
		if to == q.YearTo {
			break
		}
	}
	return sections, nil
}

func relevance(songs []*types.Song, vocab *Vocabulary, q types.RelevanceQuery) (types.RelevanceResult, int, error) {
	if vocab == nil {
		return nil, 0, ErrVocabularyNotBuilt
	}
	if err := ValidateQuery(q); err != nil {
		return nil, 0, err
	}

	selected := Select(songs, q)
	if len(selected) == 0 {
		return types.RelevanceResult{}, 0, nil
	}

	size := vocab.Len()
	sum := make([]float64, size)
	for _, song := range selected {
		if len(song.Weights) != size || song.TermFreqs == nil {
			return nil, 0, fmt.Errorf("%w: song %s", ErrNotWeighted, song.ID)
		}
		for i, w := range song.Weights {
			sum[i] += w
		}
	}
	mean := make([]float64, size)
	for i := range sum {
		mean[i] = sum[i] / float64(len(selected))
	}

	order := make([]int, size)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if mean[ia] != mean[ib] {
			return mean[ia] > mean[ib]
		}
		return vocab.tokens[ia] < vocab.tokens[ib]
	})
	if len(order) > q.TopN {
		order = order[:q.TopN]
	}

	byFreq := make(map[int][]string)
	for _, i := range order {
		token := vocab.tokens[i]
		freq := 0
		for _, song := range selected {
			freq += song.TermFreqs[token]
		}
		if freq == 0 {
			continue
		}
		byFreq[freq] = append(byFreq[freq], token)
	}

	result := make(types.RelevanceResult, 0, len(byFreq))
	for freq, tokens := range byFreq {
		sort.Strings(tokens)
		result = append(result, types.RelevanceBucket{Frequency: freq, Tokens: tokens})
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Frequency > result[b].Frequency
	})
	return result, len(selected), nil
}
