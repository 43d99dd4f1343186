package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prepress/internal/analysis"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Analyze multiple design files",
		Long: `Batch analyzes each file independently on a bounded worker pool.
A file that cannot be parsed yields a degraded report; it never aborts
the rest of the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			arts := make([]analysis.Artifact, 0, len(args))
			for _, path := range args {
				art, err := readArtifact(path)
				if err != nil {
					return err
				}
				arts = append(arts, art)
			}

			reports := pipeline.AnalyzeBatch(cmd.Context(), arts, nil)

			if jsonOut {
				return writeJSON(cmd, reports)
			}

			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				status := "ok"
				if report.Degraded {
					status = "unparseable"
				}
				rows = append(rows, []string{
					report.Filename,
					string(report.Metadata.Format),
					fmt.Sprintf("%d", report.PrintReadinessScore),
					fmt.Sprintf("%d (%s)", report.RiskScore, report.RiskLevel),
					fmt.Sprintf("%d", len(report.Issues)),
					status,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Format", "Readiness", "Risk", "Issues", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit all reports as JSON")
	return cmd
}
