package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/bioalign/cache"
)

func newCacheCommand(r *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the lookup cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache location and entry count",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cache.Open(r.cfg.Cache.Dir, r.cfg.Cache.TTL)
			if err != nil {
				return err
			}
			defer c.Close()

			entries, err := c.Len()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache dir: %s\n", r.cfg.Cache.Dir)
			fmt.Fprintf(out, "TTL:       %s\n", r.cfg.Cache.TTL)
			fmt.Fprintf(out, "Entries:   %d\n", entries)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cache.Open(r.cfg.Cache.Dir, r.cfg.Cache.TTL)
			if err != nil {
				return err
			}
			defer c.Close()

			removed, err := c.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached lookups\n", removed)
			return nil
		},
	})

	return cmd
}
