// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lyrics-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lyrics-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "lyrics-engine",
	Short: "Lexical-weight profiles for a corpus of song lyrics",
	Long: `lyrics-engine computes TF-IDF profiles over a corpus of tokenized song
lyrics and reports which tokens best characterize a selection of songs,
chosen by time window and artist.

The corpus subcommands ingest, list, and fetch album files; the analyze
subcommand weighs the corpus and answers relevance queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lyrics-engine.yaml or ~/.config/lyrics-engine/config.yaml)")
	rootCmd.PersistentFlags().String("songs-dir", "songs", "directory holding album YAML files")
	rootCmd.PersistentFlags().String("index-dir", "index", "directory for the corpus database and reports")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	viper.BindPFlag("corpus.songs_dir", rootCmd.PersistentFlags().Lookup("songs-dir"))
	viper.BindPFlag("corpus.index_dir", rootCmd.PersistentFlags().Lookup("index-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lyrics-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lyrics-engine"))
		}
	}

	viper.SetEnvPrefix("LYRICS_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
