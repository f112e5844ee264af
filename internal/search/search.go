package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is a title that matched a query
type Match struct {
	Index          int    // Index in source slice
	Title          string // Source title, original case
	Score          int    // Lower is better for Filter, higher is better for Rank
	MatchedIndexes []int  // Only set by Rank
}

// Filter returns the titles containing every character of query in order,
// ignoring case and diacritics. Closer matches (by edit distance) come
// first; ties keep source order.
func Filter(query string, titles []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	matches := make([]Match, len(ranks))
	for i, r := range ranks {
		matches[i] = Match{Index: r.OriginalIndex, Title: r.Target, Score: r.Distance}
	}
	return matches
}

// Rank scores titles against query the way editor pickers do, favouring
// matches at word starts and consecutive runs. Best match first.
func Rank(query string, titles []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lower := make([]string, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}

	found := sfuzzy.Find(strings.ToLower(query), lower)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Index:          m.Index,
			Title:          titles[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return matches
}

// Suggest returns up to limit titles resembling query, for "did you mean"
// hints after a failed exact lookup.
func Suggest(query string, titles []string, limit int) []string {
	matches := Rank(query, titles)
	if len(matches) == 0 {
		matches = Filter(query, titles)
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Title
	}
	return out
}
