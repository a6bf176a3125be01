package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swingmatch/internal/preflight"
	"swingmatch/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the pose extractor and the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := preflight.RunAll(cmd.Context(), ctx.configValue())
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, yesNo(r.Passed), r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "OK", "Detail"}, rows))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "doctor", fmt.Sprintf("%d check(s) failed", len(failed)), nil)
			}
			return nil
		},
	}
}
