package plex

import (
	"testing"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionType(t *testing.T) {
	tests := []struct {
		in   string
		want SectionType
	}{
		{"movie", SectionMovie},
		{"photo", SectionPhoto},
		{"artist", SectionMusic},
		{"music", SectionMusic},
		{"show", SectionShow},
		{"", SectionUnknown},
		{"Movie", SectionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSectionType(tt.in))
		})
	}

	assert.Equal(t, "artist", SectionMusic.String())
	assert.Equal(t, "movie", SectionMovie.String())
	assert.Equal(t, "unknown", SectionUnknown.String())
}

func TestSectionHandle_ShowIsNotMovie(t *testing.T) {
	f := newFakePlex(t)
	h := f.section("TV Shows")

	movies, err := h.AsMovie()
	assert.Nil(t, movies)
	assert.ErrorIs(t, err, domain.ErrSectionTypeMismatch)

	music, err := h.AsMusic()
	assert.Nil(t, music)
	assert.ErrorIs(t, err, domain.ErrSectionTypeMismatch)

	shows, err := h.AsShow()
	require.NoError(t, err)
	assert.Equal(t, "3", shows.Key())
	assert.Equal(t, SectionShow, shows.Type())
}

func TestSectionHandle_PhotoHasNoTypedHandle(t *testing.T) {
	f := newFakePlex(t)
	h := f.section("Photos")

	_, err := h.AsMovie()
	assert.ErrorIs(t, err, domain.ErrSectionTypeMismatch)
	_, err = h.AsMusic()
	assert.ErrorIs(t, err, domain.ErrSectionTypeMismatch)
	_, err = h.AsShow()
	assert.ErrorIs(t, err, domain.ErrSectionTypeMismatch)
}

func TestSectionHandle_ArtistIsMusic(t *testing.T) {
	f := newFakePlex(t)

	music, err := f.section("Music").AsMusic()
	require.NoError(t, err)
	assert.Equal(t, "Music", music.Title())
	assert.Equal(t, f.srv.URL, music.Connection().Endpoint())
}
