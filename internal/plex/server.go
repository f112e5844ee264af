package plex

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
)

// Server is a Plex Media Server reached over a fixed connection
type Server struct {
	Info   ServerInfo
	client *Client
	conn   Connection
}

// Connection returns the connection the server was reached over.
func (s *Server) Connection() Connection { return s.conn }

// Client returns the client shared by everything reached through this server.
func (s *Server) Client() *Client { return s.client }

// Library fetches the server's library root.
func (s *Server) Library(ctx context.Context) (*Library, error) {
	req, err := s.client.libraryRequest(s.conn.Endpoint())
	if err != nil {
		return nil, err
	}
	info, err := Execute(ctx, s.client, req)
	if err != nil {
		return nil, err
	}
	return &Library{Info: info, server: s}, nil
}

// Tracks fetches the tracks of album.
func (s *Server) Tracks(ctx context.Context, album Album) ([]Track, error) {
	return fetchChildren[Track](ctx, s, "tracks", album.RatingKey, decodeItems[trackContainer, Track])
}

// Seasons fetches the seasons of show, skipping the "All episodes" entry.
func (s *Server) Seasons(ctx context.Context, show Show) ([]Season, error) {
	all, err := fetchChildren[Season](ctx, s, "seasons", show.RatingKey, decodeItems[seasonContainer, Season])
	if err != nil {
		return nil, err
	}
	seasons := make([]Season, 0, len(all))
	for _, season := range all {
		if season.RatingKey != "" {
			seasons = append(seasons, season)
		}
	}
	return seasons, nil
}

// Episodes fetches the episodes of season.
func (s *Server) Episodes(ctx context.Context, season Season) ([]Video, error) {
	return fetchChildren[Video](ctx, s, "episodes", season.RatingKey, decodeItems[videoContainer, Video])
}

// fetchChildren fetches /library/metadata/{ratingKey}/children
func fetchChildren[C any](ctx context.Context, s *Server, name, ratingKey string, dec itemsDecoder[C]) ([]C, error) {
	if ratingKey == "" {
		return nil, fmt.Errorf("%w: %s: empty rating key", domain.ErrInvalidArgument, name)
	}
	u, err := joinURL(s.conn.Endpoint(), fmt.Sprintf("%s/%s/children", metadataPath, ratingKey), "")
	if err != nil {
		return nil, err
	}
	return Execute(ctx, s.client, collectionRequest(s.client, name, u, dec))
}
