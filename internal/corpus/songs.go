// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// SongFilter holds structured filters for listing songs. Zero values
// disable a filter.
type SongFilter struct {
	// Artists restricts songs to the listed authors.
	Artists []string

	// YearFrom and YearTo bound the publication year, both inclusive.
	YearFrom int
	YearTo   int

	// ExcludeCompilations drops songs from compilation albums.
	ExcludeCompilations bool

	// Limit caps the number of songs returned.
	Limit int
}

// Songs returns the stored songs matching filter, ordered by album and
// track. Song IDs are qualified by album as "album/song".
func (s *Store) Songs(ctx context.Context, filter SongFilter) ([]types.Song, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT s.album_id || '/' || s.id, a.artist, a.title, s.title, a.year, a.compilation, s.tokens
		FROM songs s
		JOIN albums a ON a.id = s.album_id
		WHERE 1=1`)

	if len(filter.Artists) > 0 {
		qb.WriteString(` AND a.artist IN (?` + strings.Repeat(`, ?`, len(filter.Artists)-1) + `)`)
		for _, artist := range filter.Artists {
			args = append(args, artist)
		}
	}
	if filter.YearFrom != 0 {
		qb.WriteString(` AND a.year >= ?`)
		args = append(args, filter.YearFrom)
	}
	if filter.YearTo != 0 {
		qb.WriteString(` AND a.year <= ?`)
		args = append(args, filter.YearTo)
	}
	if filter.ExcludeCompilations {
		qb.WriteString(` AND a.compilation = 0`)
	}

	qb.WriteString(` ORDER BY s.album_id, s.track`)

	if filter.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []types.Song
	for rows.Next() {
		var (
			song       types.Song
			tokensJSON string
		)
		if err := rows.Scan(
			&song.ID, &song.Artist, &song.Album, &song.Title,
			&song.Year, &song.Compilation, &tokensJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(tokensJSON), &song.Tokens); err != nil {
			return nil, fmt.Errorf("decoding tokens of %s: %w", song.ID, err)
		}
		songs = append(songs, song)
	}

	return songs, rows.Err()
}

// Load returns the whole corpus snapshot in a deterministic order.
func (s *Store) Load(ctx context.Context) ([]types.Song, error) {
	return s.Songs(ctx, SongFilter{})
}

// Stats summarizes the stored corpus.
type Stats struct {
	Albums  int `json:"albums" yaml:"albums"`
	Songs   int `json:"songs" yaml:"songs"`
	Artists int `json:"artists" yaml:"artists"`
}

// Stats counts albums, songs and distinct artists.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT count(*) FROM albums),
			(SELECT count(*) FROM songs),
			(SELECT count(DISTINCT artist) FROM albums)`,
	).Scan(&st.Albums, &st.Songs, &st.Artists)
	if err != nil {
		return Stats{}, fmt.Errorf("counting corpus: %w", err)
	}
	return st, nil
}
