package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/mmcdole/plexapi/internal/plex"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newMoviesCommand(ctx *commandContext) *cobra.Command {
	var (
		section     string
		limit       int
		unwatched   bool
		years       []int
		decades     []int
		genres      []string
		actors      []string
		directors   []string
		collections []string
		resolution  string
		rating      string
		label       string
	)

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List or search the movies of a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ctx.section(cmd.Context(), section, plex.SectionMovie)
			if err != nil {
				return err
			}
			movies, err := h.AsMovie()
			if err != nil {
				return err
			}

			var filters []plex.MovieFilter
			if cmd.Flags().Changed("unwatched") {
				filters = append(filters, plex.MovieUnwatched(unwatched))
			}
			if len(years) > 0 {
				filters = append(filters, plex.MovieYear(years...))
			}
			if len(decades) > 0 {
				filters = append(filters, plex.MovieDecade(decades...))
			}
			if len(genres) > 0 {
				filters = append(filters, plex.MovieGenre(genres...))
			}
			if len(actors) > 0 {
				filters = append(filters, plex.MovieActor(actors...))
			}
			if len(directors) > 0 {
				filters = append(filters, plex.MovieDirector(directors...))
			}
			if len(collections) > 0 {
				filters = append(filters, plex.MovieCollection(collections...))
			}
			if resolution != "" {
				filters = append(filters, plex.MovieResolution(resolution))
			}
			if rating != "" {
				filters = append(filters, plex.MovieContentRating(rating))
			}
			if label != "" {
				filters = append(filters, plex.MovieLabel(label))
			}

			var videos []plex.Video
			if len(filters) == 0 && limit == 0 {
				onProgress, done := interactiveProgress(cmd, ctx)
				videos, err = movies.AllWithProgress(cmd.Context(), onProgress)
				done()
			} else {
				videos, err = movies.Search(cmd.Context(), filters, limit)
			}
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), movies.Title(), plex.MapVideos(videos))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&section, "section", "s", "", "Section title (default: first movie section)")
	f.IntVarP(&limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	f.BoolVar(&unwatched, "unwatched", false, "Only unwatched (or, with =false, watched) movies")
	f.IntSliceVar(&years, "year", nil, "Release year, repeatable")
	f.IntSliceVar(&decades, "decade", nil, "Release decade such as 1990, repeatable")
	f.StringSliceVar(&genres, "genre", nil, "Genre, repeatable")
	f.StringSliceVar(&actors, "actor", nil, "Actor, repeatable")
	f.StringSliceVar(&directors, "director", nil, "Director, repeatable")
	f.StringSliceVar(&collections, "collection", nil, "Collection, repeatable")
	f.StringVar(&resolution, "resolution", "", "Video resolution such as 1080 or 4k")
	f.StringVar(&rating, "content-rating", "", "Content rating such as PG-13")
	f.StringVar(&label, "label", "", "Label")
	return cmd
}

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	var (
		section     string
		limit       int
		genres      []string
		collections []string
		mood        string
		country     string
	)

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List or search the albums of a music section",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ctx.section(cmd.Context(), section, plex.SectionMusic)
			if err != nil {
				return err
			}
			music, err := h.AsMusic()
			if err != nil {
				return err
			}

			var filters []plex.MusicFilter
			if len(genres) > 0 {
				filters = append(filters, plex.MusicGenre(genres...))
			}
			if len(collections) > 0 {
				filters = append(filters, plex.MusicCollection(collections...))
			}
			if mood != "" {
				filters = append(filters, plex.MusicMood(mood))
			}
			if country != "" {
				filters = append(filters, plex.MusicCountry(country))
			}

			albums, err := music.Search(cmd.Context(), filters, limit)
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), music.Title(), plex.MapAlbums(albums))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&section, "section", "s", "", "Section title (default: first music section)")
	f.IntVarP(&limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	f.StringSliceVar(&genres, "genre", nil, "Genre, repeatable")
	f.StringSliceVar(&collections, "collection", nil, "Collection, repeatable")
	f.StringVar(&mood, "mood", "", "Mood")
	f.StringVar(&country, "country", "", "Country")
	return cmd
}

func newShowsCommand(ctx *commandContext) *cobra.Command {
	var (
		section   string
		limit     int
		unwatched bool
		years     []int
		genres    []string
		network   string
		rating    string
	)

	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List or search the shows of a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ctx.section(cmd.Context(), section, plex.SectionShow)
			if err != nil {
				return err
			}
			shows, err := h.AsShow()
			if err != nil {
				return err
			}

			var filters []plex.ShowFilter
			if cmd.Flags().Changed("unwatched") {
				filters = append(filters, plex.ShowUnwatched(unwatched))
			}
			if len(years) > 0 {
				filters = append(filters, plex.ShowYear(years...))
			}
			if len(genres) > 0 {
				filters = append(filters, plex.ShowGenre(genres...))
			}
			if network != "" {
				filters = append(filters, plex.ShowNetwork(network))
			}
			if rating != "" {
				filters = append(filters, plex.ShowContentRating(rating))
			}

			result, err := shows.Search(cmd.Context(), filters, limit)
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), shows.Title(), plex.MapShows(result))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&section, "section", "s", "", "Section title (default: first show section)")
	f.IntVarP(&limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	f.BoolVar(&unwatched, "unwatched", false, "Only shows with unwatched episodes")
	f.IntSliceVar(&years, "year", nil, "First aired year, repeatable")
	f.StringSliceVar(&genres, "genre", nil, "Genre, repeatable")
	f.StringVar(&network, "network", "", "Network")
	f.StringVar(&rating, "content-rating", "", "Content rating such as TV-MA")
	return cmd
}

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks ALBUM_RATING_KEY",
		Short: "List the tracks of an album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := ctx.server(cmd.Context())
			if err != nil {
				return err
			}
			tracks, err := server.Tracks(cmd.Context(), plex.Album{RatingKey: args[0]})
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), "Tracks", plex.MapTracks(tracks))
		},
	}
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons SHOW_RATING_KEY",
		Short: "List the seasons of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := ctx.server(cmd.Context())
			if err != nil {
				return err
			}
			seasons, err := server.Seasons(cmd.Context(), plex.Show{RatingKey: args[0]})
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), "Seasons", plex.MapSeasons(seasons))
		},
	}
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes SEASON_RATING_KEY",
		Short: "List the episodes of a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := ctx.server(cmd.Context())
			if err != nil {
				return err
			}
			episodes, err := server.Episodes(cmd.Context(), plex.Season{RatingKey: args[0]})
			if err != nil {
				return err
			}
			return printItems(cmd, ctx.jsonOutput(), "Episodes", plex.MapVideos(episodes))
		},
	}
}

// interactiveProgress reports page progress on an interactive stderr and
// is silent otherwise.
func interactiveProgress(cmd *cobra.Command, ctx *commandContext) (domain.ProgressFunc, func()) {
	if ctx.jsonOutput() || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil, func() {}
	}
	return progressPrinter(cmd.ErrOrStderr())
}

// progressPrinter writes a self-overwriting "Loading n/total" line to w.
// done erases it; call it once the fetch returns, whatever the outcome,
// since a fetch cut short by a result cap or an error never reports a
// final page.
func progressPrinter(w io.Writer) (onProgress domain.ProgressFunc, done func()) {
	printed := false
	onProgress = func(loaded, total int) {
		printed = true
		fmt.Fprint(w, dimStyle.Render(fmt.Sprintf("\rLoading %d/%d", loaded, total)))
	}
	done = func() {
		if printed {
			fmt.Fprint(w, clearLine)
			printed = false
		}
	}
	return onProgress, done
}

const clearLine = "\r                                    \r"
