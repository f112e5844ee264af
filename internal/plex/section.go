package plex

import (
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
)

// SectionType is the content type of a library section
type SectionType int

const (
	SectionUnknown SectionType = iota
	SectionMovie
	SectionPhoto
	SectionMusic
	SectionShow
)

// ParseSectionType maps a section's type attribute to a SectionType.
// Plex reports music sections as "artist".
func ParseSectionType(s string) SectionType {
	switch s {
	case "movie":
		return SectionMovie
	case "photo":
		return SectionPhoto
	case "artist", "music":
		return SectionMusic
	case "show":
		return SectionShow
	default:
		return SectionUnknown
	}
}

// String returns the wire tag of the type.
func (t SectionType) String() string {
	switch t {
	case SectionMovie:
		return "movie"
	case SectionPhoto:
		return "photo"
	case SectionMusic:
		return "artist"
	case SectionShow:
		return "show"
	default:
		return "unknown"
	}
}

// SectionHandle is an untyped section bound to the server it was listed
// from. Convert it with AsMovie, AsMusic or AsShow to fetch content.
type SectionHandle struct {
	Section Section
	server  *Server
}

// Key returns the section key used in /library/sections/{key} paths.
func (h *SectionHandle) Key() string { return h.Section.Key }

// Title returns the section title.
func (h *SectionHandle) Title() string { return h.Section.Title }

// Type returns the parsed section type.
func (h *SectionHandle) Type() SectionType { return ParseSectionType(h.Section.Type) }

// Connection returns the connection the section is reached over.
func (h *SectionHandle) Connection() Connection { return h.server.conn }

// Server returns the owning server.
func (h *SectionHandle) Server() *Server { return h.server }

// AsMovie converts the handle to a movie section.
func (h *SectionHandle) AsMovie() (*MovieSection, error) {
	if err := h.expect(SectionMovie); err != nil {
		return nil, err
	}
	return newContentSection[Video, MovieFilter, Video](h, movieStrategy), nil
}

// AsMusic converts the handle to a music section.
func (h *SectionHandle) AsMusic() (*MusicSection, error) {
	if err := h.expect(SectionMusic); err != nil {
		return nil, err
	}
	return newContentSection[Album, MusicFilter, Track](h, musicStrategy), nil
}

// AsShow converts the handle to a show section.
func (h *SectionHandle) AsShow() (*ShowSection, error) {
	if err := h.expect(SectionShow); err != nil {
		return nil, err
	}
	return newContentSection[Show, ShowFilter, Video](h, showStrategy), nil
}

func (h *SectionHandle) expect(want SectionType) error {
	got := h.Type()
	if got == want {
		return nil
	}
	h.server.client.logger.Error("plex section type mismatch",
		"section", h.Section.Title,
		"key", h.Section.Key,
		"want", want.String(),
		"got", h.Section.Type,
	)
	return fmt.Errorf("%w: section %q is %q, not %q",
		domain.ErrSectionTypeMismatch, h.Section.Title, h.Section.Type, want.String())
}
