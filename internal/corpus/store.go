// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus is the corpus provider of the lyrics-engine. It ingests
// album files into a SQLite song store, loads corpus snapshots for
// analysis, fetches albums from remote providers, and exports reports.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

const dbFile = "lyrics.db"

// Store manages the corpus SQLite database.
type Store struct {
	db       *sql.DB
	songsDir string
	indexDir string
}

// NewStore opens or creates the corpus database at indexDir/lyrics.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:       db,
		songsDir: cfg.SongsDir,
		indexDir: cfg.IndexDir,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS albums (
			id TEXT PRIMARY KEY,
			artist TEXT NOT NULL,
			title TEXT,
			year INTEGER NOT NULL,
			compilation INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			album_id TEXT NOT NULL REFERENCES albums(id),
			track INTEGER NOT NULL,
			title TEXT,
			tokens TEXT NOT NULL,
			UNIQUE(album_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_songs_album_id ON songs(album_id)`,
		`CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist)`,
		`CREATE INDEX IF NOT EXISTS idx_albums_year ON albums(year)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			album_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an ingestion run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of album files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads album YAML files from the songs directory and stores their
// songs. Files whose modification time matches the last run are skipped;
// changed files replace the album's songs.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.songsDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading songs directory %s: %w", s.songsDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		albumID := strings.TrimSuffix(entry.Name(), ext)

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", albumID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE album_id = ?`, albumID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", albumID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		album, err := ReadAlbum(filepath.Join(s.songsDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", albumID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestAlbum(ctx, albumID, album, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", albumID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d songs)\n", albumID, len(album.Songs))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d songs)\n", albumID, len(album.Songs))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestAlbum(ctx context.Context, albumID string, album *types.Album, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE album_id = ?`, albumID); err != nil {
			return fmt.Errorf("deleting old songs: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO albums (id, artist, title, year, compilation)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			artist=excluded.artist, title=excluded.title,
			year=excluded.year, compilation=excluded.compilation`,
		albumID, album.Artist, album.Title, album.Year, album.Compilation,
	)
	if err != nil {
		return fmt.Errorf("upserting album: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO songs (id, album_id, track, title, tokens)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, song := range album.ToSongs() {
		tokensJSON, err := json.Marshal(song.Tokens)
		if err != nil {
			return fmt.Errorf("encoding tokens of %s: %w", song.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, song.ID, albumID, i+1, song.Title, string(tokensJSON)); err != nil {
			return fmt.Errorf("inserting song %s: %w", song.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (album_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(album_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		albumID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// ReadAlbum parses and validates an album YAML file.
func ReadAlbum(path string) (*types.Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var album types.Album
	if err := yaml.Unmarshal(data, &album); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if err := validateAlbum(&album); err != nil {
		return nil, err
	}
	return &album, nil
}

func validateAlbum(album *types.Album) error {
	if strings.TrimSpace(album.Artist) == "" {
		return fmt.Errorf("album has no artist")
	}
	if album.Year <= 0 {
		return fmt.Errorf("album has invalid year %d", album.Year)
	}
	seen := make(map[string]int, len(album.Songs))
	for i, song := range album.ToSongs() {
		if prev, ok := seen[song.ID]; ok {
			return fmt.Errorf("duplicate song id %q on tracks %d and %d", song.ID, prev, i+1)
		}
		seen[song.ID] = i + 1
	}
	return nil
}
