package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pausely/pausely/pkg/client"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub", "subs"},
		Short:   "Manage tracked subscriptions",
	}

	cmd.AddCommand(newSubscriptionListCmd())
	cmd.AddCommand(newSubscriptionAddCmd())
	cmd.AddCommand(newSubscriptionShowCmd())
	cmd.AddCommand(newSubscriptionRemoveCmd())
	cmd.AddCommand(newSubscriptionPauseCmd())
	cmd.AddCommand(newSubscriptionResumeCmd())
	cmd.AddCommand(newSubscriptionCancelCmd())
	cmd.AddCommand(newSubscriptionSummaryCmd())
	cmd.AddCommand(newSubscriptionHistoryCmd())

	return cmd
}

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subscription id: %s", arg)
	}
	return id, nil
}

func newSubscriptionListCmd() *cobra.Command {
	var status, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			subs, err := apiClient.Subscriptions().List(ctx, &client.ListOptions{
				Status:   status,
				Category: category,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(subs)
			}

			if len(subs) == 0 {
				fmt.Println("No subscriptions tracked yet")
				return nil
			}

			table := NewTable("ID", "NAME", "AMOUNT", "CYCLE", "CATEGORY", "STATUS")
			for _, s := range subs {
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					truncate(s.Name, 30),
					formatMoney(s.Amount, s.Currency),
					s.BillingCycle,
					s.Category,
					formatStatus(s.Status),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")

	return cmd
}

func newSubscriptionAddCmd() *cobra.Command {
	var (
		name, currency, category, cycle, renewal string
		amount                                   float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateSubscriptionRequest{
				Name:         name,
				Amount:       amount,
				Currency:     currency,
				Category:     category,
				BillingCycle: cycle,
			}
			if renewal != "" {
				t, err := time.Parse("2006-01-02", renewal)
				if err != nil {
					return fmt.Errorf("invalid renewal date, expected YYYY-MM-DD: %s", renewal)
				}
				req.RenewalDate = &t
			}

			sub, err := apiClient.Subscriptions().Create(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Printf("Tracking %s (%s per %s), id %d\n",
				sub.Name, formatMoney(sub.Amount, sub.Currency), sub.BillingCycle, sub.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "subscription name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount per billing cycle")
	cmd.Flags().StringVar(&cycle, "cycle", "monthly", "billing cycle: monthly, yearly, weekly")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code")
	cmd.Flags().StringVar(&category, "category", "", "category tag")
	cmd.Flags().StringVar(&renewal, "renewal", "", "next renewal date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newSubscriptionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			sub, err := apiClient.Subscriptions().Get(context.Background(), id)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(sub)
			}

			fmt.Printf("Name:     %s\n", sub.Name)
			fmt.Printf("Amount:   %s per %s\n", formatMoney(sub.Amount, sub.Currency), sub.BillingCycle)
			fmt.Printf("Category: %s\n", sub.Category)
			fmt.Printf("Status:   %s\n", formatStatus(sub.Status))
			if sub.RenewalDate != nil {
				fmt.Printf("Renews:   %s\n", sub.RenewalDate.Format("2006-01-02"))
			}
			if sub.Description != nil && *sub.Description != "" {
				fmt.Printf("Notes:    %s\n", *sub.Description)
			}
			return nil
		},
	}
}

func newSubscriptionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Stop tracking a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := apiClient.Subscriptions().Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Subscription %d removed\n", id)
			return nil
		},
	}
}

func newSubscriptionPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause an active subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			sub, err := apiClient.Subscriptions().Pause(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now paused\n", sub.Name)
			return nil
		},
	}
}

func newSubscriptionResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			sub, err := apiClient.Subscriptions().Resume(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s is active again\n", sub.Name)
			return nil
		},
	}
}

func newSubscriptionCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			sub, err := apiClient.Subscriptions().Cancel(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s cancelled\n", sub.Name)
			return nil
		},
	}
}

func newSubscriptionSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show normalized spend summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Subscriptions().Summary(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Monthly: %.2f\n", summary.MonthlyTotal)
			fmt.Printf("Yearly:  %.2f\n", summary.YearlyTotal)
			fmt.Printf("Active:  %d, paused: %d\n", summary.ActiveCount, summary.PausedCount)
			if len(summary.ByCategory) > 0 {
				table := NewTable("CATEGORY", "MONTHLY")
				for category, amount := range summary.ByCategory {
					table.AddRow(category, fmt.Sprintf("%.2f", amount))
				}
				table.Render()
			}
			return nil
		},
	}
}

func newSubscriptionHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show pause history",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := apiClient.Subscriptions().PauseHistory(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(events)
			}

			if len(events) == 0 {
				fmt.Println("No pause events yet")
				return nil
			}

			table := NewTable("SUBSCRIPTION", "PAUSED", "RESUMED", "SAVED")
			for _, e := range events {
				resumed := "still paused"
				if e.ResumedAt != nil {
					resumed = e.ResumedAt.Format("2006-01-02")
				}
				table.AddRow(
					strconv.FormatInt(e.SubscriptionID, 10),
					e.PausedAt.Format("2006-01-02"),
					resumed,
					fmt.Sprintf("%.2f", e.AmountSaved),
				)
			}
			table.Render()
			return nil
		},
	}
}
