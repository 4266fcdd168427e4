// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lyrics-engine:
// songs and albums as supplied by the corpus provider, relevance queries,
// and the results handed to reporting consumers.
package types

import "strconv"

// Song is a single document of the lyrics corpus. The corpus provider fills
// the descriptive fields; the analysis engine owns TermFreqs and Weights and
// overwrites them on every weighting pass.
type Song struct {
	// ID is a stable identifier, unique across the corpus.
	ID string `json:"id" yaml:"id"`

	// Artist is the author of the song. Relevance queries match it exactly.
	Artist string `json:"artist" yaml:"artist"`

	// Album is the title of the release the song appeared on.
	Album string `json:"album,omitempty" yaml:"album,omitempty"`

	// Title is the song title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Compilation marks songs from compilation releases, which queries may exclude.
	Compilation bool `json:"compilation" yaml:"compilation"`

	// Tokens is the lyrics text, tokenized upstream, in source order.
	Tokens []string `json:"tokens" yaml:"tokens"`

	// TermFreqs maps each token to its raw count within this song.
	TermFreqs map[string]int `json:"-" yaml:"-"`

	// Weights is the TF-IDF vector, positionally aligned to the vocabulary.
	Weights []float64 `json:"-" yaml:"-"`
}

// AlbumSong is one entry of an Album file.
type AlbumSong struct {
	ID     string   `json:"id" yaml:"id"`
	Title  string   `json:"title" yaml:"title"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// Album is the unit the corpus provider delivers: one file per release.
// Year and Compilation apply to every song on the album.
type Album struct {
	Artist      string      `json:"artist" yaml:"artist"`
	Title       string      `json:"album" yaml:"album"`
	Year        int         `json:"year" yaml:"year"`
	Compilation bool        `json:"compilation" yaml:"compilation"`
	Songs       []AlbumSong `json:"songs" yaml:"songs"`
}

// ToSongs flattens the album into corpus songs. Songs without an ID get
// "track-N" from their position. IDs are unique within an album only.
func (a Album) ToSongs() []Song {
	songs := make([]Song, 0, len(a.Songs))
	for i, s := range a.Songs {
		id := s.ID
		if id == "" {
			id = "track-" + strconv.Itoa(i+1)
		}
		songs = append(songs, Song{
			ID:          id,
			Artist:      a.Artist,
			Album:       a.Title,
			Title:       s.Title,
			Year:        a.Year,
			Compilation: a.Compilation,
			Tokens:      s.Tokens,
		})
	}
	return songs
}

