package plex

import (
	"strings"
	"time"

	"github.com/mmcdole/plexapi/internal/domain"
)

// MapVideos converts movies and episodes to display items
func MapVideos(videos []Video) []domain.Item {
	items := make([]domain.Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, mapVideo(v))
	}
	return items
}

func mapVideo(v Video) domain.Item {
	item := domain.Item{
		ID:         v.RatingKey,
		Title:      v.Title,
		Type:       domain.MediaTypeMovie,
		Year:       v.Year,
		AddedAt:    v.AddedAt,
		Duration:   time.Duration(v.Duration) * time.Millisecond,
		ViewOffset: time.Duration(v.ViewOffset) * time.Millisecond,
		IsPlayed:   v.ViewCount > 0,
	}
	if v.Type == "episode" {
		item.Type = domain.MediaTypeEpisode
		item.ParentName = v.GrandparentTitle
		item.Index = v.Index
	}

	if len(v.Media) > 0 {
		media := v.Media[0]
		item.Height = media.Height
		item.VideoCodec = normalizeCodec(media.VideoCodec)
		item.AudioCodec = normalizeAudioCodec(media.AudioCodec)
		item.Container = normalizeContainer(media.Container)
		if len(media.Parts) > 0 {
			item.FileSize = media.Parts[0].Size
		}
	}
	return item
}

// MapAlbums converts albums to display items
func MapAlbums(albums []Album) []domain.Item {
	items := make([]domain.Item, 0, len(albums))
	for _, a := range albums {
		items = append(items, domain.Item{
			ID:         a.RatingKey,
			Title:      a.Title,
			Type:       domain.MediaTypeAlbum,
			ParentName: a.ParentTitle,
			Year:       a.Year,
			ChildCount: a.LeafCount,
			AddedAt:    a.AddedAt,
			IsPlayed:   a.LeafCount > 0 && a.ViewedLeafCount >= a.LeafCount,
		})
	}
	return items
}

// MapTracks converts tracks to display items
func MapTracks(tracks []Track) []domain.Item {
	items := make([]domain.Item, 0, len(tracks))
	for _, t := range tracks {
		item := domain.Item{
			ID:         t.RatingKey,
			Title:      t.Title,
			Type:       domain.MediaTypeTrack,
			ParentName: t.GrandparentTitle,
			Year:       t.Year,
			Index:      t.Index,
			AddedAt:    t.AddedAt,
			Duration:   time.Duration(t.Duration) * time.Millisecond,
			IsPlayed:   t.ViewCount > 0,
		}
		if len(t.Media) > 0 {
			media := t.Media[0]
			item.AudioCodec = normalizeAudioCodec(media.AudioCodec)
			item.Container = normalizeContainer(media.Container)
			if len(media.Parts) > 0 {
				item.FileSize = media.Parts[0].Size
			}
		}
		items = append(items, item)
	}
	return items
}

// MapShows converts shows to display items
func MapShows(shows []Show) []domain.Item {
	items := make([]domain.Item, 0, len(shows))
	for _, s := range shows {
		items = append(items, domain.Item{
			ID:         s.RatingKey,
			Title:      s.Title,
			Type:       domain.MediaTypeShow,
			Year:       s.Year,
			ChildCount: s.ChildCount,
			AddedAt:    s.AddedAt,
			IsPlayed:   s.LeafCount > 0 && s.ViewedLeafCount >= s.LeafCount,
		})
	}
	return items
}

// MapSeasons converts seasons to display items
func MapSeasons(seasons []Season) []domain.Item {
	items := make([]domain.Item, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, domain.Item{
			ID:         s.RatingKey,
			Title:      s.Title,
			Type:       domain.MediaTypeSeason,
			ParentName: s.ParentTitle,
			Index:      s.Index,
			ChildCount: s.LeafCount,
			AddedAt:    s.AddedAt,
			IsPlayed:   s.LeafCount > 0 && s.ViewedLeafCount >= s.LeafCount,
		})
	}
	return items
}

// normalizeContainer keeps the first entry of lists like "mov,mp4,m4a"
func normalizeContainer(container string) string {
	if i := strings.Index(container, ","); i >= 0 {
		container = container[:i]
	}
	return strings.ToLower(container)
}

func normalizeCodec(codec string) string {
	switch strings.ToLower(codec) {
	case "hevc", "h265":
		return "HEVC"
	case "h264", "avc":
		return "H.264"
	case "vc1":
		return "VC-1"
	default:
		return strings.ToUpper(codec)
	}
}

func normalizeAudioCodec(codec string) string {
	switch strings.ToLower(codec) {
	case "dca", "dts":
		return "DTS"
	case "truehd":
		return "TrueHD"
	case "opus":
		return "Opus"
	case "vorbis":
		return "Vorbis"
	default:
		return strings.ToUpper(codec)
	}
}
