package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the section cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached section listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Section cache is disabled; set cache.enabled to use it"))
				return nil
			}
			if err := ctx.store.InvalidateAll(); err != nil {
				return err
			}
			ctx.logger.Info("section cache cleared", "path", ctx.config.CachePath())
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Section cache cleared"))
			return nil
		},
	})

	return cacheCmd
}
