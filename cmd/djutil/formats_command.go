package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"djutil/internal/convert"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List supported conversion formats",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, format := range convert.SupportedFormats() {
				rows = append(rows, []string{format.Name, format.Codec, format.Container, format.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Codec", "Container", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
