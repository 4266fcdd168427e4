package types

import "time"

// HTTPConfig holds shared HTTP settings used when talking to a corpus provider.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lyrics-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CorpusConfig holds settings for the corpus store.
type CorpusConfig struct {
	// SongsDir is the directory holding album YAML files (one album per file).
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`

	// IndexDir is the directory for the SQLite database and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`
}

// FetchConfig holds settings for downloading albums from a corpus provider.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Token is an optional bearer token for the corpus provider.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// MaxRetries is the number of retries on throttled responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// SongsDir is where fetched albums are written.
	SongsDir string `json:"songs_dir" yaml:"songs_dir"`
}

// AnalysisConfig holds defaults for relevance queries.
type AnalysisConfig struct {
	// TopN is the default number of tokens to report (default 10).
	TopN int `json:"top_n" yaml:"top_n"`

	// IncludeCompilations admits compilation songs by default.
	IncludeCompilations bool `json:"include_compilations" yaml:"include_compilations"`

	// SectionWidth splits the queried year range into sections of this many
	// years. Zero disables sectioning.
	SectionWidth int `json:"section_width" yaml:"section_width"`
}

// Config groups all configurations of the CLI.
type Config struct {
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}
