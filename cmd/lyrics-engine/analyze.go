// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lyrics-engine/internal/analysis"
	"github.com/pdiddy/lyrics-engine/internal/corpus"
	"github.com/pdiddy/lyrics-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the corpus (relevance)",
}

var analyzeRelevanceCmd = &cobra.Command{
	Use:   "relevance",
	Short: "Report the tokens that best characterize a selection of songs",
	Long: `Relevance weighs the whole corpus with TF-IDF, averages the weights of
the songs selected by year range and artist, and reports the top tokens
grouped by how often they occur in the selection.

With --section-width the year range is split into sections and each
section is reported separately.`,
	RunE: runAnalyzeRelevance,
}

func runAnalyzeRelevance(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	artists, _ := cmd.Flags().GetStringSlice("artist")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	exportFormat, _ := cmd.Flags().GetString("export")

	cfg := loadConfig()
	query := types.RelevanceQuery{
		YearFrom:            from,
		YearTo:              to,
		IncludeCompilations: cfg.Analysis.IncludeCompilations,
		TopN:                cfg.Analysis.TopN,
		Artists:             artists,
	}
	if err := analysis.ValidateQuery(query); err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg.Corpus)
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.Load(context.Background())
	if err != nil {
		return err
	}

	report, err := relevanceReport(songs, query, cfg.Analysis.SectionWidth)
	if err != nil {
		return err
	}

	if err := formatReport(os.Stdout, report, jsonOutput); err != nil {
		return err
	}

	var path string
	switch exportFormat {
	case "":
		return nil
	case "yaml":
		path, err = store.ExportYAML(report)
	case "json":
		path, err = store.ExportJSON(report)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", exportFormat)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Exported to", path)
	return nil
}

// relevanceReport weighs songs and answers query, per section when width
// is positive.
func relevanceReport(songs []types.Song, query types.RelevanceQuery, width int) (corpus.Report, error) {
	a := analysis.New(songs)
	if err := a.Prepare(); err != nil {
		return corpus.Report{}, err
	}
	vocab, err := a.Vocabulary()
	if err != nil {
		return corpus.Report{}, err
	}

	report := corpus.Report{
		GeneratedAt: time.Now().UTC(),
		Query:       query,
		Songs:       len(analysis.Select(a.Songs(), query)),
		Vocabulary:  vocab.Len(),
	}

	if width > 0 {
		report.SectionWidth = width
		report.Sections, err = a.SectionRelevance(query, width)
	} else {
		report.Buckets, err = a.MostRelevantTokens(query)
	}
	return report, err
}

func formatReport(w io.Writer, report corpus.Report, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	q := report.Query
	fmt.Fprintf(w, "Top %d tokens, %d-%d, artists: %s (vocabulary %d)\n",
		q.TopN, q.YearFrom, q.YearTo, strings.Join(q.Artists, ", "), report.Vocabulary)

	if report.SectionWidth > 0 {
		for _, s := range report.Sections {
			fmt.Fprintf(w, "\n%d-%d (%d songs)\n", s.From, s.To, s.Songs)
			writeBuckets(w, s.Songs, s.Buckets)
		}
		return nil
	}

	fmt.Fprintf(w, "\n%d songs selected\n", report.Songs)
	writeBuckets(w, report.Songs, report.Buckets)
	return nil
}

func writeBuckets(w io.Writer, songs int, buckets types.RelevanceResult) {
	switch {
	case songs == 0:
		fmt.Fprintln(w, "  no songs matched")
		return
	case len(buckets) == 0:
		fmt.Fprintln(w, "  top tokens do not occur in the selected songs")
		return
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "  %6d  %s\n", b.Frequency, strings.Join(b.Tokens, ", "))
	}
}

func init() {
	analyzeRelevanceCmd.Flags().Int("from", 0, "earliest year (inclusive)")
	analyzeRelevanceCmd.Flags().Int("to", 0, "latest year (inclusive)")
	analyzeRelevanceCmd.Flags().StringSlice("artist", nil, "artist to count in (repeatable)")
	analyzeRelevanceCmd.Flags().Int("top", defaultTopN, "number of tokens to report")
	analyzeRelevanceCmd.Flags().Bool("compilations", false, "count in songs from compilations")
	analyzeRelevanceCmd.Flags().Int("section-width", 0, "report per section of this many years (0 = whole range)")
	analyzeRelevanceCmd.Flags().Bool("json", false, "output the report as JSON")
	analyzeRelevanceCmd.Flags().String("export", "", "also write the report to the index directory: yaml or json")

	analyzeRelevanceCmd.MarkFlagRequired("from")
	analyzeRelevanceCmd.MarkFlagRequired("to")
	analyzeRelevanceCmd.MarkFlagRequired("artist")

	viper.BindPFlag("analysis.top_n", analyzeRelevanceCmd.Flags().Lookup("top"))
	viper.BindPFlag("analysis.include_compilations", analyzeRelevanceCmd.Flags().Lookup("compilations"))
	viper.BindPFlag("analysis.section_width", analyzeRelevanceCmd.Flags().Lookup("section-width"))

	analyzeCmd.AddCommand(analyzeRelevanceCmd)
	rootCmd.AddCommand(analyzeCmd)
}
