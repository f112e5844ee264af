package domain

import (
	"fmt"
	"time"
)

// MediaType distinguishes content types
type MediaType int

const (
	MediaTypeMovie MediaType = iota
	MediaTypeShow
	MediaTypeSeason
	MediaTypeEpisode
	MediaTypeAlbum
	MediaTypeTrack
)

// String returns the Plex type tag for the media type
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "movie"
	case MediaTypeShow:
		return "show"
	case MediaTypeSeason:
		return "season"
	case MediaTypeEpisode:
		return "episode"
	case MediaTypeAlbum:
		return "album"
	case MediaTypeTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Item is a flattened, display-oriented view of any decoded content record.
// Produced by the plex mapper; never sent back to the server.
type Item struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Type       MediaType     `json:"type"`
	ParentName string        `json:"parent,omitempty"` // Artist for albums/tracks, show for seasons/episodes
	Year       int           `json:"year,omitempty"`
	Index      int           `json:"index,omitempty"` // Track, season or episode number
	ChildCount int           `json:"children,omitempty"`
	AddedAt    int64         `json:"addedAt,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	ViewOffset time.Duration `json:"viewOffset,omitempty"`
	IsPlayed   bool          `json:"played,omitempty"`

	// Technical metadata (first Media/Part only)
	Height     int    `json:"height,omitempty"`
	VideoCodec string `json:"videoCodec,omitempty"`
	AudioCodec string `json:"audioCodec,omitempty"`
	Container  string `json:"container,omitempty"`
	FileSize   int64  `json:"fileSize,omitempty"`
}

// WatchStatus returns the watch status of the item
func (m Item) WatchStatus() WatchStatus {
	if m.IsPlayed {
		return WatchStatusWatched
	}
	if m.ViewOffset > 0 {
		return WatchStatusInProgress
	}
	return WatchStatusUnwatched
}

// FormattedDuration returns the duration in a human-readable format
func (m Item) FormattedDuration() string {
	if m.Duration <= 0 {
		return ""
	}
	h := int(m.Duration.Hours())
	mins := int(m.Duration.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%ds", int(m.Duration.Seconds()))
	}
	return fmt.Sprintf("%dm", mins)
}

// Resolution returns a human-readable resolution string based on video height
func (m Item) Resolution() string {
	switch {
	case m.Height >= 2160:
		return "4K"
	case m.Height >= 1080:
		return "1080p"
	case m.Height >= 720:
		return "720p"
	case m.Height >= 480:
		return "480p"
	case m.Height > 0:
		return fmt.Sprintf("%dp", m.Height)
	default:
		return ""
	}
}

// FormattedFileSize returns the file size in a human-readable format
func (m Item) FormattedFileSize() string {
	if m.FileSize <= 0 {
		return ""
	}
	const (
		gb = 1024 * 1024 * 1024
		mb = 1024 * 1024
	)
	switch {
	case m.FileSize >= gb:
		return fmt.Sprintf("%.1f GB", float64(m.FileSize)/float64(gb))
	default:
		return fmt.Sprintf("%d MB", m.FileSize/mb)
	}
}

// WatchStatus represents the viewing state of media
type WatchStatus int

const (
	WatchStatusUnwatched WatchStatus = iota
	WatchStatusInProgress
	WatchStatusWatched
)

// String returns a human-readable representation of the watch status
func (w WatchStatus) String() string {
	switch w {
	case WatchStatusUnwatched:
		return "Unwatched"
	case WatchStatusInProgress:
		return "In Progress"
	case WatchStatusWatched:
		return "Watched"
	default:
		return "Unknown"
	}
}
