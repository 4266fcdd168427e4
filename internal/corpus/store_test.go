// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	songsDir := filepath.Join(tmpDir, "songs")
	require.NoError(t, os.MkdirAll(songsDir, 0o755))

	store, err := NewStore(types.CorpusConfig{
		SongsDir: songsDir,
		IndexDir: filepath.Join(tmpDir, "index"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, songsDir
}

func writeAlbumFile(t *testing.T, songsDir, name string, album types.Album) string {
	t.Helper()
	data, err := yaml.Marshal(&album)
	require.NoError(t, err)
	path := filepath.Join(songsDir, name+".yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func freewheelin() types.Album {
	return types.Album{
		Artist: "bob dylan",
		Title:  "The Freewheelin'",
		Year:   1963,
		Songs: []types.AlbumSong{
			{ID: "blowin", Title: "Blowin' in the Wind", Tokens: []string{"how", "many", "roads", "wind"}},
			{ID: "hard-rain", Title: "A Hard Rain's A-Gonna Fall", Tokens: []string{"rain", "hard", "rain"}},
		},
	}
}

func greatestHits() types.Album {
	return types.Album{
		Artist:      "bob dylan",
		Title:       "Greatest Hits",
		Year:        1967,
		Compilation: true,
		Songs: []types.AlbumSong{
			{Title: "Like a Rolling Stone", Tokens: []string{"how", "does", "it", "feel"}},
		},
	}
}

func hotRats() types.Album {
	return types.Album{
		Artist: "frank zappa",
		Title:  "Hot Rats",
		Year:   1969,
		Songs: []types.AlbumSong{
			{ID: "peaches", Title: "Peaches en Regalia", Tokens: []string{"peaches"}},
		},
	}
}

func ingest(t *testing.T, store *Store) (IngestSummary, string) {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	require.NoError(t, err)
	return summary, buf.String()
}

// --- schema ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	for _, table := range []string{"albums", "songs", "indexing_status"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err, "checking table %s", table)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	tmpDir := t.TempDir()
	indexDir := filepath.Join(tmpDir, "index")

	store, err := NewStore(types.CorpusConfig{SongsDir: tmpDir, IndexDir: indexDir})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(indexDir, dbFile))
	assert.NoError(t, err)
}

// --- ingest ---

func TestIngest(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "freewheelin", freewheelin())
	writeAlbumFile(t, songsDir, "greatest-hits", greatestHits())
	writeAlbumFile(t, songsDir, "hot-rats", hotRats())
	require.NoError(t, os.WriteFile(filepath.Join(songsDir, "notes.txt"), []byte("ignored"), 0o644))

	summary, out := ingest(t, store)
	assert.Equal(t, IngestSummary{Indexed: 3}, summary)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, out, "indexed freewheelin (2 songs)")

	st, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Albums: 3, Songs: 4, Artists: 2}, st)
}

func TestIngestSkipsUnchanged(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "freewheelin", freewheelin())

	ingest(t, store)
	summary, out := ingest(t, store)
	assert.Equal(t, IngestSummary{Skipped: 1}, summary)
	assert.Contains(t, out, "skipped freewheelin")
}

func TestIngestUpdatesChanged(t *testing.T) {
	store, songsDir := testSetup(t)
	path := writeAlbumFile(t, songsDir, "freewheelin", freewheelin())
	ingest(t, store)

	album := freewheelin()
	album.Songs = album.Songs[:1]
	writeAlbumFile(t, songsDir, "freewheelin", album)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	summary, _ := ingest(t, store)
	assert.Equal(t, IngestSummary{Updated: 1}, summary)

	songs, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "freewheelin/blowin", songs[0].ID)
}

func TestIngestReportsInvalidAlbums(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "no-artist", types.Album{Year: 1970})
	writeAlbumFile(t, songsDir, "no-year", types.Album{Artist: "someone"})
	require.NoError(t, os.WriteFile(filepath.Join(songsDir, "broken.yaml"), []byte("songs: [unclosed"), 0o644))
	writeAlbumFile(t, songsDir, "hot-rats", hotRats())

	summary, out := ingest(t, store)
	assert.Equal(t, IngestSummary{Indexed: 1, Failed: 3}, summary)
	assert.Contains(t, out, "failed  broken: parse error")
	assert.Contains(t, out, "failed  no-artist: album has no artist")
}

func TestIngestKeepsSongsSharedAcrossAlbums(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "a-freewheelin", freewheelin())
	reissue := greatestHits()
	reissue.Songs[0].ID = "blowin"
	writeAlbumFile(t, songsDir, "b-greatest", reissue)

	summary, _ := ingest(t, store)
	assert.Equal(t, IngestSummary{Indexed: 2}, summary)

	songs, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 3)

	original := songs[0]
	assert.Equal(t, "a-freewheelin/blowin", original.ID)
	assert.Equal(t, 1963, original.Year)
	assert.False(t, original.Compilation)
	assert.Equal(t, "b-greatest/blowin", songs[2].ID)
	assert.True(t, songs[2].Compilation)

	studio, err := store.Songs(context.Background(), SongFilter{ExcludeCompilations: true})
	require.NoError(t, err)
	var ids []string
	for _, s := range studio {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"a-freewheelin/blowin", "a-freewheelin/hard-rain"}, ids)
}

func TestIngestRejectsDuplicateSongIDs(t *testing.T) {
	store, songsDir := testSetup(t)
	album := freewheelin()
	album.Songs[1].ID = "blowin"
	writeAlbumFile(t, songsDir, "freewheelin", album)
	writeAlbumFile(t, songsDir, "unnamed", types.Album{
		Artist: "someone",
		Year:   1970,
		Songs: []types.AlbumSong{
			{Tokens: []string{"one"}},
			{ID: "track-1", Tokens: []string{"two"}},
		},
	})

	summary, out := ingest(t, store)
	assert.Equal(t, IngestSummary{Failed: 2}, summary)
	assert.Contains(t, out, `failed  freewheelin: duplicate song id "blowin" on tracks 1 and 2`)
	assert.Contains(t, out, `failed  unnamed: duplicate song id "track-1"`)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Songs)
}

func TestIngestMissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(types.CorpusConfig{
		SongsDir: filepath.Join(tmpDir, "missing"),
		IndexDir: filepath.Join(tmpDir, "index"),
	})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Ingest(context.Background(), &strings.Builder{})
	assert.Error(t, err)
}

func TestIngestCancelled(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "hot-rats", hotRats())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Ingest(ctx, &strings.Builder{})
	assert.ErrorIs(t, err, context.Canceled)
}

// --- songs ---

func TestLoadCarriesAlbumFields(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "freewheelin", freewheelin())
	writeAlbumFile(t, songsDir, "greatest-hits", greatestHits())
	ingest(t, store)

	songs, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 3)

	assert.Equal(t, types.Song{
		ID:     "freewheelin/blowin",
		Artist: "bob dylan",
		Album:  "The Freewheelin'",
		Title:  "Blowin' in the Wind",
		Year:   1963,
		Tokens: []string{"how", "many", "roads", "wind"},
	}, songs[0])
	assert.Equal(t, "greatest-hits/track-1", songs[2].ID)
	assert.True(t, songs[2].Compilation)
	assert.Equal(t, 1967, songs[2].Year)
}

func TestSongsFilter(t *testing.T) {
	store, songsDir := testSetup(t)
	writeAlbumFile(t, songsDir, "freewheelin", freewheelin())
	writeAlbumFile(t, songsDir, "greatest-hits", greatestHits())
	writeAlbumFile(t, songsDir, "hot-rats", hotRats())
	ingest(t, store)

	tests := []struct {
		name   string
		filter SongFilter
		want   []string
	}{
		{"no filter", SongFilter{}, []string{"freewheelin/blowin", "freewheelin/hard-rain", "greatest-hits/track-1", "hot-rats/peaches"}},
		{"artist", SongFilter{Artists: []string{"frank zappa"}}, []string{"hot-rats/peaches"}},
		{"several artists", SongFilter{Artists: []string{"frank zappa", "bob dylan"}}, []string{"freewheelin/blowin", "freewheelin/hard-rain", "greatest-hits/track-1", "hot-rats/peaches"}},
		{"year range", SongFilter{YearFrom: 1964, YearTo: 1968}, []string{"greatest-hits/track-1"}},
		{"exclude compilations", SongFilter{Artists: []string{"bob dylan"}, ExcludeCompilations: true}, []string{"freewheelin/blowin", "freewheelin/hard-rain"}},
		{"limit", SongFilter{Limit: 1}, []string{"freewheelin/blowin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs, err := store.Songs(context.Background(), tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, s := range songs {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// --- export ---

func TestExport(t *testing.T) {
	store, _ := testSetup(t)
	report := Report{
		Query:      types.RelevanceQuery{YearFrom: 2000, YearTo: 2001, TopN: 1, Artists: []string{"X"}},
		Songs:      2,
		Vocabulary: 3,
		Buckets:    types.RelevanceResult{{Frequency: 2, Tokens: []string{"a"}}},
	}

	yamlPath, err := store.ExportYAML(report)
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, report.Buckets, fromYAML.Buckets)

	jsonPath, err := store.ExportJSON(report)
	require.NoError(t, err)
	assert.Equal(t, "report.json", filepath.Base(jsonPath))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON Report
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, report.Query, fromJSON.Query)
}
