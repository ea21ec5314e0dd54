package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/c360studio/bioalign/vocabulary/ontologies"
)

func newOntologiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ontologies",
		Short: "List known ontologies and recommended combinations",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			codes := make([]string, 0, len(ontologies.Registry))
			for code := range ontologies.Registry {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			fmt.Fprintln(out, "Ontologies:")
			for _, code := range codes {
				fmt.Fprintf(out, "  %-9s %s\n", code, ontologies.Registry[code])
			}

			names := make([]string, 0, len(ontologies.Combinations))
			for name := range ontologies.Combinations {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(out, "\nRecommended combinations:")
			for _, name := range names {
				fmt.Fprintf(out, "  %-18s %s\n", name, ontologies.Combinations[name])
			}

			fmt.Fprintf(out, "\nDefault filter: %s\n", ontologies.DefaultOntologies)
		},
	}
}
