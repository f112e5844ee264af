package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHeading(cmd *cobra.Command, title string, count int) {
	fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render(title)+" "+dimStyle.Render(fmt.Sprintf("(%d)", count)))
}

// printItems renders mapped content as JSON or a table
func printItems(cmd *cobra.Command, jsonOut bool, title string, items []domain.Item) error {
	if jsonOut {
		return writeJSON(cmd, items)
	}
	printHeading(cmd, title, len(items))
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Nothing found"))
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			statusMarker(item.WatchStatus()),
			item.ID,
			item.Title,
			year(item.Year),
			details(item),
		})
	}
	headers := []string{"", "ID", "Title", "Year", "Details"}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func statusMarker(s domain.WatchStatus) string {
	switch s {
	case domain.WatchStatusWatched:
		return successStyle.Render(playedChar)
	case domain.WatchStatusInProgress:
		return headingStyle.Render(inProgressChar)
	default:
		return dimStyle.Render(unplayedChar)
	}
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// details is the type-specific summary column
func details(item domain.Item) string {
	switch item.Type {
	case domain.MediaTypeMovie:
		return joinNonEmpty(item.FormattedDuration(), item.Resolution(), item.VideoCodec, item.FormattedFileSize())
	case domain.MediaTypeEpisode:
		return joinNonEmpty(item.ParentName, fmt.Sprintf("E%02d", item.Index), item.FormattedDuration())
	case domain.MediaTypeAlbum:
		return joinNonEmpty(item.ParentName, fmt.Sprintf("%d tracks", item.ChildCount))
	case domain.MediaTypeTrack:
		return joinNonEmpty(fmt.Sprintf("#%d", item.Index), item.FormattedDuration(), item.AudioCodec)
	case domain.MediaTypeShow:
		return fmt.Sprintf("%d seasons", item.ChildCount)
	case domain.MediaTypeSeason:
		return fmt.Sprintf("%d episodes", item.ChildCount)
	default:
		return ""
	}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " · "
		}
		out += p
	}
	return out
}
