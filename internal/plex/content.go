package plex

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
)

// strategy holds the only per-content-type pieces of a section fetch: the
// path listing every record, the decoder for its container and the decoder
// for the section's on-deck container. On-deck lists hold playable leaves
// (episodes, tracks), so D differs from C for shows and music.
type strategy[C, D any] struct {
	allPath      string
	decode       itemsDecoder[C]
	decodeOnDeck itemsDecoder[D]
}

var (
	movieStrategy = strategy[Video, Video]{
		allPath:      "all",
		decode:       decodeItems[videoContainer, Video],
		decodeOnDeck: decodeItems[videoContainer, Video],
	}
	musicStrategy = strategy[Album, Track]{
		allPath:      "albums",
		decode:       decodeItems[albumContainer, Album],
		decodeOnDeck: decodeItems[trackContainer, Track],
	}
	showStrategy = strategy[Show, Video]{
		allPath:      "all",
		decode:       decodeItems[showContainer, Show],
		decodeOnDeck: decodeItems[videoContainer, Video],
	}
)

// ContentSection is a section whose records decode to C, whose searches
// accept filters of type F and whose on-deck entries decode to D. Obtain
// one from SectionHandle.AsMovie, AsMusic or AsShow.
type ContentSection[C any, F Filter, D any] struct {
	handle   *SectionHandle
	strategy strategy[C, D]
}

type (
	MovieSection = ContentSection[Video, MovieFilter, Video]
	MusicSection = ContentSection[Album, MusicFilter, Track]
	ShowSection  = ContentSection[Show, ShowFilter, Video]
)

func newContentSection[C any, F Filter, D any](h *SectionHandle, s strategy[C, D]) *ContentSection[C, F, D] {
	return &ContentSection[C, F, D]{handle: h, strategy: s}
}

func (s *ContentSection[C, F, D]) Key() string { return s.handle.Key() }
func (s *ContentSection[C, F, D]) Title() string { return s.handle.Title() }
func (s *ContentSection[C, F, D]) Type() SectionType { return s.handle.Type() }
func (s *ContentSection[C, F, D]) Connection() Connection { return s.handle.Connection() }
func (s *ContentSection[C, F, D]) Server() *Server { return s.handle.server }

// All fetches every record of the section, page by page.
func (s *ContentSection[C, F, D]) All(ctx context.Context) ([]C, error) {
	return s.AllWithProgress(ctx, nil)
}

// AllWithProgress is All with onProgress called after every page.
func (s *ContentSection[C, F, D]) AllWithProgress(ctx context.Context, onProgress domain.ProgressFunc) ([]C, error) {
	u, err := s.sectionURL(s.strategy.allPath, "")
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, u, 0, onProgress)
}

// OnDeck fetches the section's in-progress records in a single request:
// movies for movie sections, episodes for show sections and tracks for
// music sections.
func (s *ContentSection[C, F, D]) OnDeck(ctx context.Context) ([]D, error) {
	u, err := s.sectionURL("onDeck", "")
	if err != nil {
		return nil, err
	}
	c := s.handle.server.client
	return Execute(ctx, c, collectionRequest(c, s.resourceName()+" on deck", u, s.strategy.decodeOnDeck))
}

// Get fetches every record of the section and keeps those for which keep
// returns true, in server order.
func (s *ContentSection[C, F, D]) Get(ctx context.Context, keep func(C) bool) ([]C, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]C, 0, len(all))
	for _, item := range all {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// Search fetches the records matching every filter, in filter order, up to
// maxResults records (0 for no cap). Invalid filters fail before any
// request is sent.
func (s *ContentSection[C, F, D]) Search(ctx context.Context, filters []F, maxResults int) ([]C, error) {
	query, err := renderFilters(filters)
	if err != nil {
		return nil, err
	}
	u, err := s.sectionURL(s.strategy.allPath, query)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, u, maxResults, nil)
}

// Fetch decodes every record served at rawURL in one request.
func (s *ContentSection[C, F, D]) Fetch(ctx context.Context, rawURL string) ([]C, error) {
	c := s.handle.server.client
	return Execute(ctx, c, collectionRequest(c, s.resourceName(), rawURL, s.strategy.decode))
}

// FetchPage decodes size records of rawURL starting at offset start.
func (s *ContentSection[C, F, D]) FetchPage(ctx context.Context, rawURL string, start, size int) ([]C, error) {
	p, err := s.fetchPage(ctx, rawURL, start, size)
	return p.items, err
}

func (s *ContentSection[C, F, D]) fetchPage(ctx context.Context, rawURL string, start, size int) (page[C], error) {
	c := s.handle.server.client
	return Execute(ctx, c, pageRequest(c, s.resourceName(), rawURL, start, size, s.strategy.decode))
}

func (s *ContentSection[C, F, D]) collect(ctx context.Context, rawURL string, maxResults int, onProgress domain.ProgressFunc) ([]C, error) {
	c := s.handle.server.client
	var fetch pageFetcher[C] = func(ctx context.Context, start, size int) ([]C, int, error) {
		p, err := s.fetchPage(ctx, rawURL, start, size)
		return p.items, p.total, err
	}

	items, err := paginate(ctx, fetch, c.pageSize, maxResults, onProgress)
	if err != nil {
		c.logger.Error("plex section fetch failed", "section", s.handle.Section.Title, "url", rawURL, "error", err)
		return nil, err
	}
	c.logger.Debug("plex section fetch complete", "section", s.handle.Section.Title, "count", len(items))
	return items, nil
}

func (s *ContentSection[C, F, D]) sectionURL(path, rawQuery string) (string, error) {
	p := fmt.Sprintf("%s/%s/%s", sectionsPath, s.handle.Section.Key, path)
	return joinURL(s.handle.server.conn.Endpoint(), p, rawQuery)
}

func (s *ContentSection[C, F, D]) resourceName() string {
	return "section " + s.handle.Section.Key
}
