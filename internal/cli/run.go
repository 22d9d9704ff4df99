package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipworks/ecc/internal/pipeline"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline over transcript and scene artifacts",
		Args:  cobra.NoArgs,
		RunE:  runPipeline,
	}
	cmd.Flags().String("transcript", "", "Transcript artifact (JSON)")
	cmd.Flags().String("scenes", "", "Scenes artifact (JSON)")
	cmd.Flags().String("out", "", "Directory for run artifacts")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("scenes")
	addTuningFlags(cmd)
	return cmd
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pcfg := pipeline.FromAppConfig(cfg)
	pcfg.TranscriptPath, _ = cmd.Flags().GetString("transcript")
	pcfg.ScenesPath, _ = cmd.Flags().GetString("scenes")
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		pcfg.OutDir = out
	}

	res, err := pipeline.Run(cmd.Context(), pcfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(res.Selected) == 0 {
		fmt.Fprintln(out, "no clips selected")
	} else {
		fmt.Fprintln(out, renderSelectedTable(res.Selected))
	}
	fmt.Fprintf(out, "artifacts: %s\n", res.RunDir)
	return nil
}
