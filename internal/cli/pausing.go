package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPausingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pausing",
		Short: "Pause recommendations",
	}

	cmd.AddCommand(newPausingReportCmd())

	return cmd
}

func newPausingReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Score tracked subscriptions and suggest pauses",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := apiClient.Pausing().Report(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(report)
			}

			if len(report.Recommendations) == 0 {
				fmt.Println("Nothing to recommend, track a subscription first")
				return nil
			}

			table := NewTable("ID", "NAME", "SCORE", "ACTION", "REASON")
			for _, rec := range report.Recommendations {
				table.AddRow(
					strconv.FormatInt(rec.SubscriptionID, 10),
					truncate(rec.Name, 30),
					strconv.Itoa(rec.UsageScore),
					formatStatus(rec.Action),
					rec.Reason,
				)
			}
			table.Render()

			fmt.Printf("\nPotential savings: %.2f\n", report.PotentialSavings)
			return nil
		},
	}
}
