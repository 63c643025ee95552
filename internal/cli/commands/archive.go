package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [ticket-id ...]",
	Short: "Archive tickets in bulk",
	Long: `Sets each named ticket to the lowest priority level and marks it
archived. Unknown ticket IDs fail the run before any ticket changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		tickets := service.NewTicketService(service.TicketDependencies{
			TicketRepo:   rt.tickets,
			TaxonomyRepo: rt.taxonomy,
			Dispatcher:   rt.dispatcher,
		})
		archived, err := tickets.ArchiveTickets(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("Archived %d tickets\n", archived)
		return nil
	},
}
