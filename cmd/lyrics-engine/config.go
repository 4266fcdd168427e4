// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/lyrics-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "lyrics-engine/0.1"
	defaultTopN      = 10
)

func init() {
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
	viper.SetDefault("analysis.top_n", defaultTopN)
}

// loadConfig assembles the typed configuration from flags, environment
// and config file, in that order of precedence.
func loadConfig() types.Config {
	return types.Config{
		Corpus: types.CorpusConfig{
			SongsDir: viper.GetString("corpus.songs_dir"),
			IndexDir: viper.GetString("corpus.index_dir"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			Token:      viper.GetString("fetch.token"),
			MaxRetries: viper.GetInt("fetch.max_retries"),
			SongsDir:   viper.GetString("corpus.songs_dir"),
		},
		Analysis: types.AnalysisConfig{
			TopN:                viper.GetInt("analysis.top_n"),
			IncludeCompilations: viper.GetBool("analysis.include_compilations"),
			SectionWidth:        viper.GetInt("analysis.section_width"),
		},
	}
}
