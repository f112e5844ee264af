package plex

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/mmcdole/plexapi/internal/search"
)

// SectionCache stores section listings per server machine identifier.
// Entries stay valid until InvalidateSections or a Library.Refresh.
type SectionCache interface {
	GetSections(serverID string) ([]Section, bool)
	SaveSections(serverID string, sections []Section) error
	InvalidateSections(serverID string) error
}

// Library is the content root of a server
type Library struct {
	Info   LibraryInfo
	server *Server
}

// Server returns the server the library belongs to.
func (l *Library) Server() *Server { return l.server }

// Sections lists the library's sections. Without a section cache every
// call is a fresh request; with one, the cached list is served until
// Refresh or Invalidate.
func (l *Library) Sections(ctx context.Context) ([]*SectionHandle, error) {
	c := l.server.client
	if c.cache != nil {
		if cached, ok := c.cache.GetSections(l.serverID()); ok {
			c.logger.Debug("plex sections served from cache", "server", l.serverID(), "count", len(cached))
			return l.wrap(cached), nil
		}
	}
	return l.Refresh(ctx)
}

// Refresh fetches the section list from the server, replacing any cached copy.
func (l *Library) Refresh(ctx context.Context) ([]*SectionHandle, error) {
	c := l.server.client
	req, err := c.sectionsRequest(l.server.conn.Endpoint())
	if err != nil {
		return nil, err
	}
	container, err := Execute(ctx, c, req)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SaveSections(l.serverID(), container.Sections); err != nil {
			c.logger.Warn("failed to cache sections", "server", l.serverID(), "error", err)
		}
	}
	return l.wrap(container.Sections), nil
}

// Invalidate drops the cached section list so the next lookup refetches.
func (l *Library) Invalidate() error {
	c := l.server.client
	if c.cache == nil {
		return nil
	}
	return c.cache.InvalidateSections(l.serverID())
}

// SectionByTitle returns the section titled exactly title.
func (l *Library) SectionByTitle(ctx context.Context, title string) (*SectionHandle, error) {
	sections, err := l.Sections(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sections {
		if s.Section.Title == title {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: title %q", domain.ErrSectionNotFound, title)
}

// SectionByID returns the section whose uuid is id.
func (l *Library) SectionByID(ctx context.Context, id string) (*SectionHandle, error) {
	sections, err := l.Sections(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sections {
		if s.Section.UUID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: uuid %q", domain.ErrSectionNotFound, id)
}

// SectionsByType returns the sections of type t, in server order.
func (l *Library) SectionsByType(ctx context.Context, t SectionType) ([]*SectionHandle, error) {
	sections, err := l.Sections(ctx)
	if err != nil {
		return nil, err
	}
	var out []*SectionHandle
	for _, s := range sections {
		if s.Type() == t {
			out = append(out, s)
		}
	}
	return out, nil
}

// SectionsMatching returns sections whose title fuzzily matches query, best match first.
func (l *Library) SectionsMatching(ctx context.Context, query string) ([]*SectionHandle, error) {
	sections, err := l.Sections(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Section.Title
	}
	matches := search.Filter(query, titles)
	out := make([]*SectionHandle, len(matches))
	for i, m := range matches {
		out[i] = sections[m.Index]
	}
	return out, nil
}

func (l *Library) serverID() string {
	return l.server.Info.MachineIdentifier
}

func (l *Library) wrap(sections []Section) []*SectionHandle {
	handles := make([]*SectionHandle, len(sections))
	for i, s := range sections {
		handles[i] = &SectionHandle{Section: s, server: l.server}
	}
	return handles
}
