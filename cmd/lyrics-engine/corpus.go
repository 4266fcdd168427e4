// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lyrics-engine/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the song corpus (ingest, list, fetch)",
	Long: `Corpus manages the local SQLite song store built from album files.
Each album file under the songs directory lists an artist, a year, a
compilation flag, and the tokenized lyrics of its songs.`,
}

// --- ingest subcommand ---

var corpusIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest album files into the corpus store",
	Long: `Ingest reads album YAML files from the songs directory and stores their
songs. Unchanged files are skipped on subsequent runs; changed files
replace the album's songs.`,
	RunE: runCorpusIngest,
}

func runCorpusIngest(cmd *cobra.Command, args []string) error {
	store, err := corpus.NewStore(loadConfig().Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d album(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored songs",
	RunE:  runCorpusList,
}

func runCorpusList(cmd *cobra.Command, args []string) error {
	artists, _ := cmd.Flags().GetStringSlice("artist")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	noComp, _ := cmd.Flags().GetBool("no-compilations")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := corpus.NewStore(loadConfig().Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	songs, err := store.Songs(ctx, corpus.SongFilter{
		Artists:             artists,
		YearFrom:            from,
		YearTo:              to,
		ExcludeCompilations: noComp,
		Limit:               limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(songs)
	}

	if len(songs) == 0 {
		fmt.Println("No songs found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-20s  %-4s  %-30s  %s\n", "ID", "Artist", "Year", "Title", "Tokens")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, s := range songs {
		title := s.Title
		if s.Compilation {
			title += " (c)"
		}
		fmt.Fprintf(os.Stdout, "%-24s  %-20s  %-4d  %-30s  %d\n",
			truncate(s.ID, 24), truncate(s.Artist, 20), s.Year, truncate(title, 30), len(s.Tokens))
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d of %d songs (%d albums, %d artists)\n", len(songs), st.Songs, st.Albums, st.Artists)
	return nil
}

// --- fetch subcommand ---

var corpusFetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download album files from a corpus provider",
	Long: `Fetch downloads albums in JSON form from a corpus provider and writes
them as YAML into the songs directory, ready for ingest. Throttled
requests are retried with backoff.`,
	RunE: runCorpusFetch,
}

func runCorpusFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more album URLs")
	}

	cfg := loadConfig().Fetch
	client := &http.Client{Timeout: cfg.Timeout}

	result := corpus.FetchBatch(context.Background(), client, args, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d album(s) failed to download", result.Failed)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func init() {
	corpusListCmd.Flags().StringSlice("artist", nil, "filter by artist (repeatable)")
	corpusListCmd.Flags().Int("from", 0, "earliest year (inclusive)")
	corpusListCmd.Flags().Int("to", 0, "latest year (inclusive)")
	corpusListCmd.Flags().Bool("no-compilations", false, "exclude songs from compilations")
	corpusListCmd.Flags().Int("limit", 0, "maximum songs to list (0 = all)")
	corpusListCmd.Flags().Bool("json", false, "output songs as JSON")

	corpusFetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	corpusFetchCmd.Flags().Int("max-retries", 0, "retries on throttled responses (0 = default 5)")
	viper.BindPFlag("fetch.timeout", corpusFetchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("fetch.max_retries", corpusFetchCmd.Flags().Lookup("max-retries"))

	corpusCmd.AddCommand(corpusIngestCmd)
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusFetchCmd)

	rootCmd.AddCommand(corpusCmd)
}
