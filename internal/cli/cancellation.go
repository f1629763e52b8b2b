package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pausely/pausely/pkg/client"
	"github.com/spf13/cobra"
)

func newCancellationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cancellation",
		Aliases: []string{"cancel-flow"},
		Short:   "Cancellation workflows",
	}

	cmd.AddCommand(newCancellationStartCmd())
	cmd.AddCommand(newCancellationListCmd())
	cmd.AddCommand(newCancellationShowCmd())
	cmd.AddCommand(newCancellationSendCmd())
	cmd.AddCommand(newCancellationReplyCmd())
	cmd.AddCommand(newCancellationResolveCmd())

	return cmd
}

func newCancellationStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <subscription-id>",
		Short: "Draft a cancellation email for a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			request, err := apiClient.Cancellations().Start(context.Background(), id)
			if err != nil {
				return err
			}

			fmt.Printf("Drafted request %d for %s\n\n", request.ID, request.Provider)
			fmt.Printf("Subject: %s\n\n%s\n", request.DraftSubject, request.DraftBody)
			fmt.Printf("\nReview the draft, then run 'pausely cancellation send %d'\n", request.ID)
			return nil
		},
	}
}

func newCancellationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cancellation requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := apiClient.Cancellations().List(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(requests)
			}

			if len(requests) == 0 {
				fmt.Println("No cancellation requests yet")
				return nil
			}

			table := NewTable("ID", "PROVIDER", "STATUS", "OUTCOME", "SAVED")
			for _, r := range requests {
				table.AddRow(
					strconv.FormatInt(r.ID, 10),
					r.Provider,
					formatStatus(r.Status),
					r.Outcome,
					fmt.Sprintf("%.2f", r.SavedAmount),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newCancellationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a request and its conversation log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			request, err := apiClient.Cancellations().Get(ctx, id)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(request)
			}

			fmt.Printf("Provider: %s\n", request.Provider)
			fmt.Printf("Status:   %s\n", formatStatus(request.Status))
			if request.Outcome != "" {
				fmt.Printf("Outcome:  %s\n", request.Outcome)
			}

			messages, err := apiClient.Cancellations().Messages(ctx, id)
			if err != nil {
				return err
			}
			for _, m := range messages {
				fmt.Printf("\n[%s] %s (%s)\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Role, m.Kind)
				if m.Subject != "" {
					fmt.Printf("Subject: %s\n", m.Subject)
				}
				fmt.Println(m.Body)
			}
			return nil
		},
	}
}

func newCancellationSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <id>",
		Short: "Mark the drafted email as sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			request, err := apiClient.Cancellations().Send(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Request %d marked as sent to %s\n", request.ID, request.Provider)
			return nil
		},
	}
}

func newCancellationReplyCmd() *cobra.Command {
	var kind, subject, body string

	cmd := &cobra.Command{
		Use:   "reply <id>",
		Short: "Record a reply from the provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if body == "" {
				body = promptInput("Reply body: ")
			}

			request, err := apiClient.Cancellations().Reply(context.Background(), id, client.ReplyRequest{
				Kind:    kind,
				Subject: subject,
				Body:    body,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Reply recorded, request is now %s\n", request.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "email", "message kind: email, chat, suggestion")
	cmd.Flags().StringVar(&subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&body, "body", "", "message body")

	return cmd
}

func newCancellationResolveCmd() *cobra.Command {
	var outcome string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Close a request as cancelled or saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			request, err := apiClient.Cancellations().Resolve(context.Background(), id, outcome)
			if err != nil {
				return err
			}

			if request.Outcome == "cancelled" {
				fmt.Printf("Subscription cancelled, %.2f per month back in your pocket\n", request.SavedAmount)
			} else {
				fmt.Println("Kept the subscription, workflow closed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outcome, "outcome", "", "outcome: cancelled or saved")
	_ = cmd.MarkFlagRequired("outcome")

	return cmd
}
