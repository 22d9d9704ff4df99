package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/clipworks/ecc/internal/errs"
)

//go:embed sample_config.toml
var sampleConfig string

// Config carries every tunable the pipeline accepts. Values are threaded
// explicitly through each stage call; nothing here becomes process-wide
// state.
type Config struct {
	OutputDir string `toml:"output_dir"`
	LogLevel  string `toml:"log_level"`

	Transcript TranscriptSettings `toml:"transcript"`
	Windowing  WindowSettings     `toml:"windowing"`
	Selection  SelectionSettings  `toml:"selection"`
}

// TranscriptSettings tunes transcript normalization.
type TranscriptSettings struct {
	MinSegmentMS int64 `toml:"min_segment_ms"`
	MaxGapMS     int64 `toml:"max_gap_ms"`
	MaxSegmentMS int64 `toml:"max_segment_ms"`
}

// WindowSettings tunes candidate chunking.
type WindowSettings struct {
	MinWindowMS int64 `toml:"min_window_ms"`
	MaxWindowMS int64 `toml:"max_window_ms"`
}

// SelectionSettings tunes the final greedy selection.
type SelectionSettings struct {
	TargetMinSec  int `toml:"target_min_sec"`
	TargetMaxSec  int `toml:"target_max_sec"`
	MaxCandidates int `toml:"max_candidates"`
}

// Default returns the documented defaults for every knob.
func Default() *Config {
	return &Config{
		OutputDir: "runs",
		LogLevel:  "info",
		Transcript: TranscriptSettings{
			MinSegmentMS: 600,
			MaxGapMS:     200,
			MaxSegmentMS: 8000,
		},
		Windowing: WindowSettings{
			MinWindowMS: 3000,
			MaxWindowMS: 8000,
		},
		Selection: SelectionSettings{
			TargetMinSec:  30,
			TargetMaxSec:  45,
			MaxCandidates: 12,
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns the
// defaults; a named but missing file is a configuration error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrConfiguration, "config", "load", path, err)
		}
		return nil, err
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "config", "parse", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field ordering.
func (c *Config) Validate() error {
	check := func(ok bool, msg string) error {
		if ok {
			return nil
		}
		return errs.Wrap(errs.ErrConfiguration, "config", "validate", msg, nil)
	}
	if err := check(c.Transcript.MinSegmentMS > 0, "min_segment_ms must be > 0"); err != nil {
		return err
	}
	if err := check(c.Transcript.MaxGapMS >= 0, "max_gap_ms must be >= 0"); err != nil {
		return err
	}
	if err := check(c.Transcript.MaxSegmentMS >= c.Transcript.MinSegmentMS, "max_segment_ms must be >= min_segment_ms"); err != nil {
		return err
	}
	if err := check(c.Windowing.MinWindowMS > 0, "min_window_ms must be > 0"); err != nil {
		return err
	}
	if err := check(c.Windowing.MaxWindowMS >= c.Windowing.MinWindowMS, "max_window_ms must be >= min_window_ms"); err != nil {
		return err
	}
	if err := check(c.Selection.TargetMinSec > 0, "target_min_sec must be > 0"); err != nil {
		return err
	}
	if err := check(c.Selection.TargetMaxSec >= c.Selection.TargetMinSec, "target_max_sec must be >= target_min_sec"); err != nil {
		return err
	}
	if err := check(c.Selection.MaxCandidates > 0, "max_candidates must be > 0"); err != nil {
		return err
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errs.Wrap(errs.ErrConfiguration, "config", "validate",
			fmt.Sprintf("unknown log_level %q", c.LogLevel), nil)
	}
	return nil
}

// Sample returns the embedded annotated sample config.
func Sample() string {
	return sampleConfig
}
