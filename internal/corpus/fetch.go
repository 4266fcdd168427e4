// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lyrics-engine/internal/httputil"
	"github.com/pdiddy/lyrics-engine/pkg/types"
)

// FetchResult holds the outcome of a batch fetch.
type FetchResult struct {
	Fetched int
	Failed  int
	Albums  []string
}

// HasFailures reports whether any album failed.
func (r FetchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchAlbum downloads one album in JSON form from a corpus provider and
// writes it as YAML into the songs directory. It returns the album slug.
func FetchAlbum(ctx context.Context, client *http.Client, url string, cfg types.FetchConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	var album types.Album
	if err := json.NewDecoder(resp.Body).Decode(&album); err != nil {
		return "", fmt.Errorf("parsing album: %w", err)
	}
	if err := validateAlbum(&album); err != nil {
		return "", err
	}

	slug := AlbumSlug(album)
	if err := writeAlbum(&album, filepath.Join(cfg.SongsDir, slug+".yaml")); err != nil {
		return "", err
	}
	return slug, nil
}

// FetchBatch fetches every URL, printing per-album status. It continues
// after individual failures.
func FetchBatch(ctx context.Context, client *http.Client, urls []string, cfg types.FetchConfig, w io.Writer) FetchResult {
	var result FetchResult
	for _, url := range urls {
		slug, err := FetchAlbum(ctx, client, url, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", url, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "fetched %s\n", slug)
		result.Fetched++
		result.Albums = append(result.Albums, slug)
	}
	fmt.Fprintf(w, "\nfetched: %d, failed: %d\n", result.Fetched, result.Failed)
	return result
}

// AlbumSlug derives a file name from artist, year and album title, e.g.
// "bob-dylan-1963-the-freewheelin".
func AlbumSlug(album types.Album) string {
	raw := fmt.Sprintf("%s %d %s", album.Artist, album.Year, album.Title)
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func writeAlbum(album *types.Album, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(album)
	if err != nil {
		return fmt.Errorf("marshaling album: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing album: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
