package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pausely/pausely/pkg/client"
	"github.com/spf13/cobra"
)

func newInsightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insight",
		Aliases: []string{"insights", "briefing"},
		Short:   "Briefing insights",
	}

	cmd.AddCommand(newInsightListCmd())
	cmd.AddCommand(newInsightReadCmd())
	cmd.AddCommand(newInsightDismissCmd())

	return cmd
}

func newInsightListCmd() *cobra.Command {
	var insightType string
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List briefing insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			insights, err := apiClient.Insights().List(context.Background(), &client.InsightListOptions{
				Type:       insightType,
				UnreadOnly: unreadOnly,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(insights)
			}

			if len(insights) == 0 {
				fmt.Println("No insights yet, the next briefing will add some")
				return nil
			}

			table := NewTable("ID", "TYPE", "TITLE", "READ")
			for _, ins := range insights {
				read := ""
				if ins.IsRead {
					read = "yes"
				}
				table.AddRow(
					strconv.FormatInt(ins.ID, 10),
					ins.Type,
					truncate(ins.Title, 50),
					read,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&insightType, "type", "", "filter by type")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread insights")

	return cmd
}

func newInsightReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Read an insight and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			ins, err := apiClient.Insights().MarkRead(context.Background(), id)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n\n%s\n", ins.Title, ins.Body)
			return nil
		},
	}
}

func newInsightDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss an insight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := apiClient.Insights().Dismiss(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Insight %d dismissed\n", id)
			return nil
		},
	}
}
