package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_OrdersByDistance(t *testing.T) {
	titles := []string{"Kids Movies", "TV Shows", "Movies"}

	matches := Filter("movies", titles)

	require.Len(t, matches, 2)
	assert.Equal(t, "Movies", matches[0].Title)
	assert.Equal(t, 2, matches[0].Index)
	assert.Equal(t, "Kids Movies", matches[1].Title)
	assert.Less(t, matches[0].Score, matches[1].Score)
}

func TestFilter_FoldsCaseAndDiacritics(t *testing.T) {
	matches := Filter("amelie", []string{"Amélie", "Heat"})

	require.Len(t, matches, 1)
	assert.Equal(t, "Amélie", matches[0].Title)
}

func TestFilter_EmptyQuery(t *testing.T) {
	assert.Nil(t, Filter("  ", []string{"Movies"}))
}

func TestRank_BestFirstWithHighlights(t *testing.T) {
	titles := []string{"Living Room TV", "Office Server", "Basement Server"}

	matches := Rank("server", titles)

	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Contains(t, m.Title, "Server")
		assert.Len(t, m.MatchedIndexes, len("server"))
	}
}

func TestSuggest_Limit(t *testing.T) {
	titles := []string{"Office Server", "Basement Server", "Attic Server"}

	got := Suggest("server", titles, 2)

	assert.Len(t, got, 2)
}

func TestSuggest_NoMatch(t *testing.T) {
	assert.Empty(t, Suggest("zzz", []string{"Office Server"}, 3))
}
