package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/clipworks/ecc/internal/artifacts"
	"github.com/clipworks/ecc/internal/config"
	"github.com/clipworks/ecc/internal/domain/candidates"
	"github.com/clipworks/ecc/internal/domain/moments"
	"github.com/clipworks/ecc/internal/domain/transcript"
	"github.com/clipworks/ecc/internal/errs"
	"github.com/clipworks/ecc/internal/logging"
	"github.com/clipworks/ecc/internal/ports"
	"github.com/clipworks/ecc/internal/ports/adapters/jsonfile"
	"github.com/clipworks/ecc/internal/types"
)

// Config describes a single pipeline invocation. Every threshold is explicit;
// there are no process-wide defaults.
type Config struct {
	TranscriptPath string
	ScenesPath     string
	OutDir         string

	Normalize transcript.Options
	Window    candidates.Options
	Selection moments.SelectOptions
}

// FromAppConfig maps file/flag configuration onto per-call stage options.
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		OutDir: cfg.OutputDir,
		Normalize: transcript.Options{
			MinSegmentMS: cfg.Transcript.MinSegmentMS,
			MaxGapMS:     cfg.Transcript.MaxGapMS,
			MaxSegmentMS: cfg.Transcript.MaxSegmentMS,
		},
		Window: candidates.Options{
			MinWindowMS: cfg.Windowing.MinWindowMS,
			MaxWindowMS: cfg.Windowing.MaxWindowMS,
		},
		Selection: moments.SelectOptions{
			TargetMinSec:  cfg.Selection.TargetMinSec,
			TargetMaxSec:  cfg.Selection.TargetMaxSec,
			MaxCandidates: cfg.Selection.MaxCandidates,
		},
	}
}

func (c Config) Validate() error {
	if c.TranscriptPath == "" {
		return errs.Wrap(errs.ErrConfiguration, "pipeline", "validate", "transcript path is empty", nil)
	}
	if c.ScenesPath == "" {
		return errs.Wrap(errs.ErrConfiguration, "pipeline", "validate", "scenes path is empty", nil)
	}
	if c.Normalize.MinSegmentMS <= 0 || c.Normalize.MaxSegmentMS < c.Normalize.MinSegmentMS || c.Normalize.MaxGapMS < 0 {
		return errs.Wrap(errs.ErrConfiguration, "pipeline", "validate", "invalid transcript thresholds", nil)
	}
	if c.Window.MinWindowMS <= 0 || c.Window.MaxWindowMS < c.Window.MinWindowMS {
		return errs.Wrap(errs.ErrConfiguration, "pipeline", "validate", "invalid window thresholds", nil)
	}
	if c.Selection.TargetMinSec <= 0 || c.Selection.TargetMaxSec < c.Selection.TargetMinSec || c.Selection.MaxCandidates <= 0 {
		return errs.Wrap(errs.ErrConfiguration, "pipeline", "validate", "invalid selection targets", nil)
	}
	return nil
}

// Result carries the produced artifacts of a run.
type Result struct {
	RunDir     string
	Candidates []types.CandidateSegment
	Scored     []types.ScoredCandidate
	Selected   []types.ScoredCandidate
}

// Process runs the pure algorithmic core over in-memory inputs: normalize,
// build candidates, score, select. It does no I/O and holds no state, so
// fixed inputs always produce identical output.
func Process(tr types.Transcript, scenes []types.Scene, cfg Config) (Result, error) {
	normalized := transcript.Normalize(tr.Segments, cfg.Normalize)
	cands, err := candidates.Build(normalized, scenes, cfg.Window)
	if err != nil {
		return Result{}, err
	}
	scored := moments.ScoreAll(cands)
	selected := moments.Select(scored, cfg.Selection)
	return Result{Candidates: cands, Scored: scored, Selected: selected}, nil
}

// Run loads the consumed artifacts, executes the core, and writes the
// produced artifacts into a fresh run directory.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	logger := logging.WithComponent("pipeline")

	var (
		source ports.TranscriptSource = jsonfile.NewTranscriptFile(cfg.TranscriptPath)
		scenes ports.SceneSource      = jsonfile.NewSceneFile(cfg.ScenesPath)
	)

	tr, err := source.Transcript(ctx)
	if err != nil {
		return Result{}, err
	}
	sceneList, err := scenes.Scenes(ctx)
	if err != nil {
		return Result{}, err
	}
	logger.Info().
		Int("segments", len(tr.Segments)).
		Int("scenes", len(sceneList)).
		Msg("artifacts loaded")

	res, err := Process(tr, sceneList, cfg)
	if err != nil {
		return Result{}, err
	}

	runDir := buildRunDir(cfg.OutDir, time.Now().UTC())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return Result{}, err
	}
	res.RunDir = runDir

	if err := artifacts.WriteCandidates(filepath.Join(runDir, artifacts.CandidatesFile), res.Candidates); err != nil {
		return Result{}, err
	}
	if err := artifacts.WriteScored(filepath.Join(runDir, artifacts.ScoredFile), res.Scored); err != nil {
		return Result{}, err
	}
	var sink ports.ClipSink = jsonfile.NewSelectedWriter(filepath.Join(runDir, artifacts.SelectedFile))
	if err := sink.WriteSelected(ctx, res.Selected); err != nil {
		return Result{}, err
	}

	var totalMS int64
	for _, s := range res.Selected {
		totalMS += s.DurationMS
	}
	logger.Info().
		Int("candidates", len(res.Candidates)).
		Int("selected", len(res.Selected)).
		Int64("total_ms", totalMS).
		Str("run_dir", runDir).
		Msg("pipeline complete")
	return res, nil
}

func buildRunDir(outRoot string, now time.Time) string {
	if outRoot == "" {
		outRoot = "runs"
	}
	ts := now.UTC().Format("20060102-150405Z")
	suffix := uuid.NewString()[:8]
	return filepath.Join(outRoot, fmt.Sprintf("run-%s-%s", ts, suffix))
}

// ensure adapters implement ports
var (
	_ ports.TranscriptSource = (*jsonfile.TranscriptFile)(nil)
	_ ports.SceneSource      = (*jsonfile.SceneFile)(nil)
	_ ports.ClipSink         = (*jsonfile.SelectedWriter)(nil)
)
