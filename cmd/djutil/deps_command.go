package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"djutil/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				required := "required"
				if status.Optional {
					required = "optional"
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					required,
					yesNo(status.Available),
					status.Detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Kind", "Available", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if !deps.AllRequiredAvailable(statuses) {
				return errors.New("one or more required dependencies are missing")
			}
			return nil
		},
	}
}
