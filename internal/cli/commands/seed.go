package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

var seedDryRun bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the department and priority-level taxonomy",
	Long: `Seeds priority levels, departments and sub-departments.

The seeder is idempotent: rows that already exist are left untouched,
so the command is safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), seedDryRun)
		if err != nil {
			return err
		}
		defer rt.Close()

		seeder := service.NewSeeder(rt.taxonomy, rt.logger)
		report, err := seeder.Run(cmd.Context(), service.DefaultSeedSpec())
		if err != nil {
			return err
		}

		fmt.Printf("Priority levels created:  %d\n", report.LevelsCreated)
		fmt.Printf("Departments created:      %d\n", report.DepartmentsCreated)
		fmt.Printf("Sub-departments created:  %d\n", report.SubDepartmentsCreated)
		for _, skipped := range report.Skipped {
			fmt.Printf("Skipped %q: priority level %d not found\n", skipped.Name, skipped.Level)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Seed an in-memory store instead of the database")
}
