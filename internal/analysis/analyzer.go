// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// Analyzer holds one corpus snapshot together with its vocabulary and the
// state of its last weighting pass. Weighting passes are exclusive; queries
// may run concurrently with each other once a pass has completed.
type Analyzer struct {
	mu       sync.RWMutex
	songs    []*types.Song
	vocab    *Vocabulary
	weighted *Vocabulary
	logger   *slog.Logger
}

// New creates an Analyzer over copies of songs with normalized tokens. The
// caller's songs are not modified.
func New(songs []types.Song) *Analyzer {
	snapshot := make([]*types.Song, len(songs))
	for i := range songs {
		s := songs[i]
		s.Tokens = NormalizeTokens(s.Tokens)
		s.TermFreqs = nil
		s.Weights = nil
		snapshot[i] = &s
	}
	return &Analyzer{
		songs:  snapshot,
		logger: slog.Default().With("component", "analysis"),
	}
}

// Songs returns copies of the analyzed songs. TermFreqs and Weights are
// populated after Weigh and reflect the pass current at the time of the call.
func (a *Analyzer) Songs() []*types.Song {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*types.Song, len(a.songs))
	for i, song := range a.songs {
		s := *song
		s.Tokens = slices.Clone(song.Tokens)
		s.TermFreqs = maps.Clone(song.TermFreqs)
		s.Weights = slices.Clone(song.Weights)
		out[i] = &s
	}
	return out
}

// BuildVocabulary builds the vocabulary of the snapshot and keeps it for
// later passes. Rebuilding invalidates previously computed weights.
func (a *Analyzer) BuildVocabulary() *Vocabulary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buildVocabulary()
}

// Vocabulary returns the current vocabulary or ErrVocabularyNotBuilt.
func (a *Analyzer) Vocabulary() (*Vocabulary, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.vocab == nil {
		return nil, ErrVocabularyNotBuilt
	}
	return a.vocab, nil
}

// Weigh runs a weighting pass over the snapshot against the current
// vocabulary.
func (a *Analyzer) Weigh() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weigh()
}

// Prepare builds the vocabulary if none exists yet and runs a weighting
// pass, leaving the Analyzer ready for queries.
func (a *Analyzer) Prepare() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.vocab == nil {
		a.buildVocabulary()
	}
	return a.weigh()
}

func (a *Analyzer) buildVocabulary() *Vocabulary {
	a.vocab = BuildVocabulary(a.songs)
	a.weighted = nil
	a.logger.Debug("vocabulary built", "songs", len(a.songs), "tokens", a.vocab.Len())
	return a.vocab
}

func (a *Analyzer) weigh() error {
	if err := Weigh(a.songs, a.vocab); err != nil {
		return err
	}
	a.weighted = a.vocab
	a.logger.Debug("weighting pass complete", "songs", len(a.songs), "tokens", a.vocab.Len())
	return nil
}

// MostRelevantTokens answers q over the snapshot. See the package-level
// MostRelevantTokens for the ranking rules.
func (a *Analyzer) MostRelevantTokens(q types.RelevanceQuery) (types.RelevanceResult, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if err := a.ready(); err != nil {
		return nil, err
	}
	return MostRelevantTokens(a.songs, a.vocab, q)
}

// SectionRelevance answers q per time section of width years.
func (a *Analyzer) SectionRelevance(q types.RelevanceQuery, width int) ([]types.SectionResult, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if err := a.ready(); err != nil {
		return nil, err
	}
	return SectionRelevance(a.songs, a.vocab, q, width)
}

func (a *Analyzer) ready() error {
	if a.vocab == nil {
		return ErrVocabularyNotBuilt
	}
	if a.weighted != a.vocab {
		return ErrNotWeighted
	}
	return nil
}
