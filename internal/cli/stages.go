package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipworks/ecc/internal/artifacts"
	"github.com/clipworks/ecc/internal/domain/candidates"
	"github.com/clipworks/ecc/internal/domain/moments"
	"github.com/clipworks/ecc/internal/domain/transcript"
	"github.com/clipworks/ecc/internal/logging"
	"github.com/clipworks/ecc/internal/pipeline"
)

func newCandidatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Normalize a transcript and build scene-aligned clip candidates",
		Args:  cobra.NoArgs,
		RunE:  runCandidates,
	}
	cmd.Flags().String("transcript", "", "Transcript artifact (JSON)")
	cmd.Flags().String("scenes", "", "Scenes artifact (JSON)")
	cmd.Flags().String("out", artifacts.CandidatesFile, "Candidates output file")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("scenes")
	addTuningFlags(cmd)
	return cmd
}

func runCandidates(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pcfg := pipeline.FromAppConfig(cfg)

	transcriptPath, _ := cmd.Flags().GetString("transcript")
	scenesPath, _ := cmd.Flags().GetString("scenes")
	outPath, _ := cmd.Flags().GetString("out")

	tr, err := artifacts.LoadTranscript(transcriptPath)
	if err != nil {
		return err
	}
	scenes, err := artifacts.LoadScenes(scenesPath)
	if err != nil {
		return err
	}

	normalized := transcript.Normalize(tr.Segments, pcfg.Normalize)
	cands, err := candidates.Build(normalized, scenes, pcfg.Window)
	if err != nil {
		return err
	}
	if err := artifacts.WriteCandidates(outPath, cands); err != nil {
		return err
	}

	log := logging.WithComponent("cli")
	log.Info().
		Int("segments", len(normalized)).
		Int("candidates", len(cands)).
		Msg("candidates built")
	fmt.Fprintf(cmd.OutOrStdout(), "%d candidates written to %s\n", len(cands), outPath)
	return nil
}

func newSelectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Score an existing candidates artifact and pick the final clip set",
		Args:  cobra.NoArgs,
		RunE:  runSelect,
	}
	cmd.Flags().String("candidates", "", "Candidates artifact (JSON)")
	cmd.Flags().String("out", artifacts.SelectedFile, "Selected output file")
	_ = cmd.MarkFlagRequired("candidates")
	addTuningFlags(cmd)
	return cmd
}

func runSelect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pcfg := pipeline.FromAppConfig(cfg)

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	outPath, _ := cmd.Flags().GetString("out")

	cands, err := artifacts.LoadCandidates(candidatesPath)
	if err != nil {
		return err
	}
	selected := moments.Select(moments.ScoreAll(cands), pcfg.Selection)
	if err := artifacts.WriteSelected(outPath, selected); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(selected) == 0 {
		fmt.Fprintln(out, "no clips selected")
	} else {
		fmt.Fprintln(out, renderSelectedTable(selected))
	}
	fmt.Fprintf(out, "%d clips written to %s\n", len(selected), outPath)
	return nil
}
