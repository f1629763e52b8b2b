package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				if profile, err := apiClient.GetProfile(ctx); err == nil {
					summary["plan"] = profile.PlanTier
					summary["total_saved"] = profile.TotalSaved
				}
				if spend, err := apiClient.Subscriptions().Summary(ctx); err == nil {
					summary["monthly_spend"] = spend.MonthlyTotal
					summary["active"] = spend.ActiveCount
					summary["paused"] = spend.PausedCount
				}
				if unread, err := apiClient.Insights().UnreadCount(ctx); err == nil {
					summary["unread_insights"] = unread
				}
				return printOutput(summary)
			}

			fmt.Println("Pausely")
			fmt.Println(strings.Repeat("=", 40))

			profile, err := apiClient.GetProfile(ctx)
			if err != nil {
				fmt.Printf("  Plan:        (error: %v)\n", err)
			} else {
				fmt.Printf("  Plan:        %s\n", profile.PlanTier)
				fmt.Printf("  Total saved: %s\n", formatMoney(profile.TotalSaved, profile.CurrencyPreference))
			}

			spend, err := apiClient.Subscriptions().Summary(ctx)
			if err != nil {
				fmt.Printf("  Spend:       (error: %v)\n", err)
			} else {
				fmt.Printf("  Spend:       %.2f per month (%.2f per year)\n", spend.MonthlyTotal, spend.YearlyTotal)
				fmt.Printf("  Tracked:     %d active, %d paused\n", spend.ActiveCount, spend.PausedCount)
			}

			unread, err := apiClient.Insights().UnreadCount(ctx)
			if err == nil && unread > 0 {
				fmt.Printf("  Insights:    %d unread\n", unread)
			}

			return nil
		},
	}
}
