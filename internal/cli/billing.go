package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pausely/pausely/pkg/client"
	"github.com/spf13/cobra"
)

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Plans and checkout",
	}

	cmd.AddCommand(newBillingPlansCmd())
	cmd.AddCommand(newBillingInfoCmd())
	cmd.AddCommand(newBillingUpgradeCmd())

	return cmd
}

func newBillingInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show your current plan and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := apiClient.Billing().Info(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(info)
			}

			limit := "unlimited"
			if info.SubscriptionLimit > 0 {
				limit = strconv.Itoa(info.SubscriptionLimit)
			}
			fmt.Printf("Plan:          %s\n", info.Plan.Name)
			fmt.Printf("Tracked:       %d (limit %s)\n", info.SubscriptionCount, limit)
			fmt.Printf("Total saved:   %.2f\n", info.TotalSaved)
			if info.ProviderLinked {
				fmt.Println("Billing:       linked")
			}
			return nil
		},
	}
}

func newBillingPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Billing().Plans(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("TIER", "PRICE", "LIMIT", "FEATURES")
			for _, p := range plans {
				limit := "unlimited"
				if p.SubscriptionLimit > 0 {
					limit = strconv.Itoa(p.SubscriptionLimit)
				}
				price := "free"
				if p.PriceMonthly > 0 {
					price = fmt.Sprintf("%.2f/mo", p.PriceMonthly)
				}
				table.AddRow(p.Tier, price, limit, strings.Join(p.Features, ", "))
			}
			table.Render()
			return nil
		},
	}
}

func newBillingUpgradeCmd() *cobra.Command {
	var redirectURL, cancelURL string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Get a checkout URL for the pro plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := apiClient.Billing().Checkout(context.Background(), client.CheckoutRequest{
				RedirectURL: redirectURL,
				CancelURL:   cancelURL,
			})
			if err != nil {
				return err
			}

			fmt.Println("Open this URL to complete the upgrade:")
			fmt.Println(url)
			return nil
		},
	}

	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "where to land after checkout")
	cmd.Flags().StringVar(&cancelURL, "cancel-url", "", "where to land if checkout is abandoned")

	return cmd
}
