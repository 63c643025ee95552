package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

var fixesCmd = &cobra.Command{
	Use:   "assign-fixes",
	Short: "Batch-assign recommended fixes to all tickets",
	Long: `Matches every ticket's issue text against the fix catalog and
stores the recommended fix. Tickets with no matching catalog entry get
a "no fix available" label. Repeated labels within one run receive an
occurrence suffix so every stored label is distinct.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		fixes := service.NewFixService(rt.tickets, rt.dispatcher, rt.logger)
		assignments, err := fixes.AssignFixes(cmd.Context())
		if err != nil {
			return err
		}

		matched := 0
		for _, a := range assignments {
			if a.Matched {
				matched++
			}
			if viperVerbose() {
				fmt.Printf("%s  %s\n", a.TicketID, a.Fix)
			}
		}
		fmt.Printf("Assigned fixes to %d tickets (%d matched the catalog)\n", len(assignments), matched)
		return nil
	},
}
