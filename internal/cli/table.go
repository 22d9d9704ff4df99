package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/clipworks/ecc/internal/types"
)

func renderSelectedTable(selected []types.ScoredCandidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Scene", "Start", "End", "Duration", "Score"})

	for _, clip := range selected {
		tw.AppendRow(table.Row{
			clip.CandidateID,
			clip.SceneID,
			formatMS(clip.StartMS),
			formatMS(clip.EndMS),
			formatMS(clip.DurationMS),
			fmt.Sprintf("%.2f", clip.Score),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func formatMS(ms int64) string {
	sec := float64(ms) / 1000.0
	if sec >= 60 {
		return fmt.Sprintf("%dm%04.1fs", int(sec)/60, sec-float64(int(sec)/60*60))
	}
	return fmt.Sprintf("%.1fs", sec)
}
