package plex

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T, opts ...Option) (*fakePlex, *Library) {
	t.Helper()
	f := newFakePlex(t)
	f.serveFixture("/library", "library.xml")
	f.serveFixture("/library/sections", "sections.xml")

	lib, err := f.connect(opts...).Library(context.Background())
	require.NoError(t, err)
	return f, lib
}

func TestLibrary_Sections(t *testing.T) {
	_, lib := testLibrary(t)
	assert.Equal(t, "Plex Library", lib.Info.Title1)

	sections, err := lib.Sections(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, "Movies", sections[0].Title())
	assert.Equal(t, SectionMovie, sections[0].Type())
	assert.Equal(t, SectionMusic, sections[1].Type())
	assert.Equal(t, SectionShow, sections[2].Type())
	assert.Equal(t, SectionPhoto, sections[3].Type())
	assert.Equal(t, lib.Server().Connection(), sections[0].Connection())
}

func TestLibrary_Lookups(t *testing.T) {
	ctx := context.Background()
	_, lib := testLibrary(t)

	h, err := lib.SectionByTitle(ctx, "TV Shows")
	require.NoError(t, err)
	assert.Equal(t, "3", h.Key())

	h, err = lib.SectionByID(ctx, "d4069239-bad6-41d3-ab69-0f4e5d3c1a22")
	require.NoError(t, err)
	assert.Equal(t, "Music", h.Title())

	music, err := lib.SectionsByType(ctx, SectionMusic)
	require.NoError(t, err)
	require.Len(t, music, 1)
	assert.Equal(t, "2", music[0].Key())

	none, err := lib.SectionsByType(ctx, SectionUnknown)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = lib.SectionByTitle(ctx, "movies")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)

	_, err = lib.SectionByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestLibrary_SectionsMatching(t *testing.T) {
	_, lib := testLibrary(t)

	got, err := lib.SectionsMatching(context.Background(), "tv")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "TV Shows", got[0].Title())
}

func TestLibrary_NoCacheRefetchesEveryCall(t *testing.T) {
	ctx := context.Background()
	f, lib := testLibrary(t)

	_, err := lib.Sections(ctx)
	require.NoError(t, err)
	_, err = lib.SectionByTitle(ctx, "Movies")
	require.NoError(t, err)
	_, err = lib.SectionsByType(ctx, SectionShow)
	require.NoError(t, err)

	assert.Equal(t, 3, f.hitCount("/library/sections"))
}

func TestLibrary_CacheServesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	f, lib := testLibrary(t, WithSectionCache(cache))

	_, err := lib.Sections(ctx)
	require.NoError(t, err)
	_, err = lib.SectionByTitle(ctx, "Movies")
	require.NoError(t, err)
	assert.Equal(t, 1, f.hitCount("/library/sections"))

	cached, ok := cache.GetSections("asdasdasdasdas")
	require.True(t, ok)
	assert.Len(t, cached, 4)

	require.NoError(t, lib.Invalidate())
	_, ok = cache.GetSections("asdasdasdasdas")
	assert.False(t, ok)

	_, err = lib.Sections(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/library/sections"))

	// Refresh always goes to the server and replaces the cached copy
	_, err = lib.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, f.hitCount("/library/sections"))
}

func TestLibrary_InvalidateReportsCacheFailure(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	_, lib := testLibrary(t, WithSectionCache(cache))
	_, err := lib.Sections(ctx)
	require.NoError(t, err)

	cache.invalidateErr = errors.New("disk full")
	assert.EqualError(t, lib.Invalidate(), "disk full")

	_, uncached := testLibrary(t)
	assert.NoError(t, uncached.Invalidate())
}

func TestLibrary_CachedHandlesBindToServer(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	require.NoError(t, cache.SaveSections("asdasdasdasdas", []Section{{Key: "9", Type: "movie", Title: "Cached"}}))

	f, lib := testLibrary(t, WithSectionCache(cache))
	f.handle("/library/sections/9/onDeck", func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, videoPage(0, 1, 1))
	})

	h, err := lib.SectionByTitle(ctx, "Cached")
	require.NoError(t, err)
	assert.Equal(t, 0, f.hitCount("/library/sections"))

	movies, err := h.AsMovie()
	require.NoError(t, err)
	items, err := movies.OnDeck(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
