package main

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/mmcdole/plexapi/internal/plex"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const overviewConcurrency = 4

func newOnDeckCommand(ctx *commandContext) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "ondeck",
		Short: "List the in-progress items of a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ctx.section(cmd.Context(), section, plex.SectionMovie)
			if err != nil {
				return err
			}
			items, err := onDeckItems(cmd.Context(), h)
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), h.Title()+" · On Deck", items)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section title (default: first movie section)")
	return cmd
}

type sectionDeck struct {
	Section string        `json:"section"`
	Type    string        `json:"type"`
	Items   []domain.Item `json:"items"`
}

func newOverviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show what is on deck in every section",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.library(cmd.Context())
			if err != nil {
				return err
			}
			sections, err := lib.Sections(cmd.Context())
			if err != nil {
				return err
			}

			var handles []*plex.SectionHandle
			for _, h := range sections {
				switch h.Type() {
				case plex.SectionMovie, plex.SectionShow, plex.SectionMusic:
					handles = append(handles, h)
				}
			}

			decks := make([]sectionDeck, len(handles))
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(overviewConcurrency)
			for i, h := range handles {
				i, h := i, h
				g.Go(func() error {
					items, err := onDeckItems(gctx, h)
					if err != nil {
						return fmt.Errorf("section %q: %w", h.Title(), err)
					}
					decks[i] = sectionDeck{Section: h.Title(), Type: h.Type().String(), Items: items}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, decks)
			}
			for _, d := range decks {
				if err := printItems(cmd, false, d.Section, d.Items); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// onDeckItems fetches and maps the on-deck records of any content section
func onDeckItems(ctx context.Context, h *plex.SectionHandle) ([]domain.Item, error) {
	switch h.Type() {
	case plex.SectionMovie:
		s, err := h.AsMovie()
		if err != nil {
			return nil, err
		}
		videos, err := s.OnDeck(ctx)
		return plex.MapVideos(videos), err
	case plex.SectionShow:
		s, err := h.AsShow()
		if err != nil {
			return nil, err
		}
		episodes, err := s.OnDeck(ctx)
		return plex.MapVideos(episodes), err
	case plex.SectionMusic:
		s, err := h.AsMusic()
		if err != nil {
			return nil, err
		}
		tracks, err := s.OnDeck(ctx)
		return plex.MapTracks(tracks), err
	default:
		return nil, fmt.Errorf("%w: %s sections have no on-deck listing", domain.ErrSectionTypeMismatch, h.Type())
	}
}
