package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clipworks/ecc/internal/config"
	"github.com/clipworks/ecc/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ecc",
		Short:        "Turn a transcript and scene cuts into a short-clip selection",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "TOML config file (or ECC_CONFIG)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newRunCommand(),
		newCandidatesCommand(),
		newSelectCommand(),
		newConfigCommand(),
	)
	return root
}

// loadConfig resolves the config file, then lets tuning flags and environment
// override it per invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("ECC_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	applyTuningFlags(cmd, cfg)

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	} else if env := os.Getenv("ECC_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.LogLevel)
	return cfg, nil
}

// addTuningFlags exposes every pipeline threshold; defaults mirror the
// config defaults so --help documents them.
func addTuningFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().Int64("min-segment-ms", def.Transcript.MinSegmentMS, "Merge transcript segments shorter than this")
	cmd.Flags().Int64("max-gap-ms", def.Transcript.MaxGapMS, "Merge across gaps at most this wide")
	cmd.Flags().Int64("max-segment-ms", def.Transcript.MaxSegmentMS, "Split merged segments longer than this")
	cmd.Flags().Int64("min-window-ms", def.Windowing.MinWindowMS, "Drop candidate windows shorter than this")
	cmd.Flags().Int64("max-window-ms", def.Windowing.MaxWindowMS, "Cap candidate windows at this duration")
	cmd.Flags().Int("target-min-sec", def.Selection.TargetMinSec, "Total selected duration floor")
	cmd.Flags().Int("target-max-sec", def.Selection.TargetMaxSec, "Total selected duration ceiling")
	cmd.Flags().Int("max-candidates", def.Selection.MaxCandidates, "Cap on selected clip count")
}

func applyTuningFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("min-segment-ms") {
		cfg.Transcript.MinSegmentMS, _ = flags.GetInt64("min-segment-ms")
	}
	if flags.Changed("max-gap-ms") {
		cfg.Transcript.MaxGapMS, _ = flags.GetInt64("max-gap-ms")
	}
	if flags.Changed("max-segment-ms") {
		cfg.Transcript.MaxSegmentMS, _ = flags.GetInt64("max-segment-ms")
	}
	if flags.Changed("min-window-ms") {
		cfg.Windowing.MinWindowMS, _ = flags.GetInt64("min-window-ms")
	}
	if flags.Changed("max-window-ms") {
		cfg.Windowing.MaxWindowMS, _ = flags.GetInt64("max-window-ms")
	}
	if flags.Changed("target-min-sec") {
		cfg.Selection.TargetMinSec, _ = flags.GetInt("target-min-sec")
	}
	if flags.Changed("target-max-sec") {
		cfg.Selection.TargetMaxSec, _ = flags.GetInt("target-max-sec")
	}
	if flags.Changed("max-candidates") {
		cfg.Selection.MaxCandidates, _ = flags.GetInt("max-candidates")
	}
}
