package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/bioalign/export"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported output formats:")
			for _, info := range export.AllFormats() {
				fmt.Fprintf(out, "  %-9s %-11s %s\n", info.Name, info.Extension, info.Description)
			}
		},
	}
}
