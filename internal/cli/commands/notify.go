package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Push ticket summaries to the chat webhook",
	Long: `Fetches every ticket and posts one summary line per ticket to the
configured chat webhook, batched below the platform's message size
limit with a pause between batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.cfg.Notify.WebhookURL == "" {
			return fmt.Errorf("NOTIFY_WEBHOOK_URL is not configured")
		}

		tickets, err := rt.tickets.ListAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			fmt.Println("No tickets to notify about")
			return nil
		}

		notifier := service.NewNotifier(rt.cfg.Notify, rt.logger)
		sent, err := notifier.NotifyTickets(cmd.Context(), tickets)
		if err != nil {
			return err
		}
		fmt.Printf("Sent %d batches covering %d tickets\n", sent, len(tickets))
		return nil
	},
}
