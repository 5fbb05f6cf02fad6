package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Assets
		Database
		Matching
		Highlight
	}

	Assets struct {
		ClippingsDir string // Library of per-book clippings exports
		ProcessedDir string // Output directory for highlighted EPUBs
		LogsDir      string // Per-book relocation logs
	}
	Database struct {
		Path string
	}
	Matching struct {
		FuzzyThreshold    float64 // Minimum similarity for a fuzzy match (0..1)
		FuzzyWindowBudget int     // Max windows scored per fuzzy scan
		StripFootnotes    bool    // Strip trailing footnote digits during normalization
		MaxParallelDocs   int     // 0 means one goroutine per spine document
	}
	Highlight struct {
		Color string // Preset name or hex code
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("assets_dir", "./assets")
	v.SetDefault("clippings_dir", "")
	v.SetDefault("processed_dir", "")
	v.SetDefault("logs_dir", "./logs")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("fuzzy_threshold", DefaultFuzzyThreshold)
	v.SetDefault("fuzzy_window_budget", DefaultFuzzyWindowBudget)
	v.SetDefault("strip_footnotes", true)
	v.SetDefault("max_parallel_docs", 0)
	v.SetDefault("highlight_color", "")

	assetsDir := v.GetString("assets_dir")
	clippingsDir := v.GetString("clippings_dir")
	if clippingsDir == "" {
		clippingsDir = filepath.Join(assetsDir, "clippings")
	}
	processedDir := v.GetString("processed_dir")
	if processedDir == "" {
		processedDir = filepath.Join(assetsDir, "processed")
	}

	return &Config{
		Assets: Assets{
			ClippingsDir: clippingsDir,
			ProcessedDir: processedDir,
			LogsDir:      v.GetString("logs_dir"),
		},
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Matching: Matching{
			FuzzyThreshold:    v.GetFloat64("fuzzy_threshold"),
			FuzzyWindowBudget: v.GetInt("fuzzy_window_budget"),
			StripFootnotes:    v.GetBool("strip_footnotes"),
			MaxParallelDocs:   v.GetInt("max_parallel_docs"),
		},
		Highlight: Highlight{
			Color: v.GetString("highlight_color"),
		},
	}
}
