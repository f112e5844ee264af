package main

import (
	"fmt"
	"time"

	"github.com/mmcdole/plexapi/internal/plex"
	"github.com/spf13/cobra"
)

type sectionView struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
	UUID  string `json:"uuid"`
}

func newSectionsCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the library sections of the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.library(cmd.Context())
			if err != nil {
				return err
			}

			var sections []*plex.SectionHandle
			if refresh {
				sections, err = lib.Refresh(cmd.Context())
			} else {
				sections, err = lib.Sections(cmd.Context())
			}
			if err != nil {
				return err
			}

			views := make([]sectionView, 0, len(sections))
			for _, s := range sections {
				views = append(views, sectionView{
					Key:   s.Key(),
					Title: s.Title(),
					Type:  s.Type().String(),
					UUID:  s.Section.UUID,
				})
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			printHeading(cmd, lib.Server().Info.FriendlyName, len(views))
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Key, v.Title, v.Type, v.UUID})
			}
			fmt.Fprintln(out, renderTable([]string{"Key", "Title", "Type", "UUID"}, rows, []columnAlignment{alignRight}))

			if ctx.store != nil {
				if at, ok := ctx.store.SavedAt(lib.Server().Info.MachineIdentifier); ok {
					fmt.Fprintln(out, dimStyle.Render("Cached "+time.Since(at).Round(time.Second).String()+" ago; --refresh to update"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch sections from the server even when cached")
	return cmd
}
