package plex

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/plexapi/internal/domain"
)

// Filter renders to one key=value pair of a section query string.
type Filter interface {
	Render() (string, error)
}

// filter is the shared representation of every typed filter. Construction
// errors are kept and reported by Render so constructors stay chainable.
type filter struct {
	key    string
	values []string
	err    error
}

// Render returns key=value with each value query-escaped and list values
// joined by commas.
func (f filter) Render() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(f.values) == 0 {
		return "", fmt.Errorf("%w: %s: no values", domain.ErrInvalidFilter, f.key)
	}
	escaped := make([]string, len(f.values))
	for i, v := range f.values {
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("%w: %s: empty value", domain.ErrInvalidFilter, f.key)
		}
		escaped[i] = url.QueryEscape(v)
	}
	return f.key + "=" + strings.Join(escaped, ","), nil
}

func stringsFilter(key string, values []string) filter {
	return filter{key: key, values: values}
}

func intsFilter(key string, values []int) filter {
	f := filter{key: key, values: make([]string, len(values))}
	for i, v := range values {
		if v <= 0 {
			f.err = fmt.Errorf("%w: %s: %d is not positive", domain.ErrInvalidFilter, key, v)
		}
		f.values[i] = strconv.Itoa(v)
	}
	return f
}

func boolFilter(key string, v bool) filter {
	if v {
		return filter{key: key, values: []string{"1"}}
	}
	return filter{key: key, values: []string{"0"}}
}

// renderFilters joins filters with '&' in the order given. No filters
// render to the empty string.
func renderFilters[F Filter](filters []F) (string, error) {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		s, err := f.Render()
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "&"), nil
}

// MovieFilter narrows a movie section search
type MovieFilter struct{ filter }

func MovieUnwatched(v bool) MovieFilter { return MovieFilter{boolFilter("unwatched", v)} }
func MovieDuplicate(v bool) MovieFilter { return MovieFilter{boolFilter("duplicate", v)} }
func MovieYear(years ...int) MovieFilter {
	return MovieFilter{intsFilter("year", years)}
}

// MovieDecade matches movies released in the given decades, e.g. 1990.
func MovieDecade(decades ...int) MovieFilter {
	f := intsFilter("decade", decades)
	for _, d := range decades {
		if d%10 != 0 {
			f.err = fmt.Errorf("%w: decade: %d is not a multiple of 10", domain.ErrInvalidFilter, d)
			break
		}
	}
	return MovieFilter{f}
}

func MovieGenre(genres ...string) MovieFilter {
	return MovieFilter{stringsFilter("genre", genres)}
}
func MovieContentRating(rating string) MovieFilter {
	return MovieFilter{stringsFilter("contentRating", []string{rating})}
}
func MovieCollection(collections ...string) MovieFilter {
	return MovieFilter{stringsFilter("collection", collections)}
}
func MovieDirector(directors ...string) MovieFilter {
	return MovieFilter{stringsFilter("director", directors)}
}
func MovieActor(actors ...string) MovieFilter {
	return MovieFilter{stringsFilter("actor", actors)}
}
func MovieCountry(country string) MovieFilter {
	return MovieFilter{stringsFilter("country", []string{country})}
}
func MovieStudio(studios ...string) MovieFilter {
	return MovieFilter{stringsFilter("studio", studios)}
}

// MovieResolution matches a video resolution tag such as "1080" or "4k".
func MovieResolution(resolution string) MovieFilter {
	return MovieFilter{stringsFilter("resolution", []string{resolution})}
}
func MovieGUID(guid string) MovieFilter {
	return MovieFilter{stringsFilter("guid", []string{guid})}
}
func MovieLabel(label string) MovieFilter {
	return MovieFilter{stringsFilter("label", []string{label})}
}

// MusicFilter narrows a music section search
type MusicFilter struct{ filter }

func MusicGenre(genres ...string) MusicFilter {
	return MusicFilter{stringsFilter("genre", genres)}
}
func MusicCountry(country string) MusicFilter {
	return MusicFilter{stringsFilter("country", []string{country})}
}
func MusicCollection(collections ...string) MusicFilter {
	return MusicFilter{stringsFilter("collection", collections)}
}
func MusicMood(mood string) MusicFilter {
	return MusicFilter{stringsFilter("mood", []string{mood})}
}

// ShowFilter narrows a show section search
type ShowFilter struct{ filter }

func ShowUnwatched(v bool) ShowFilter { return ShowFilter{boolFilter("unwatched", v)} }
func ShowYear(years ...int) ShowFilter {
	return ShowFilter{intsFilter("year", years)}
}
func ShowGenre(genres ...string) ShowFilter {
	return ShowFilter{stringsFilter("genre", genres)}
}
func ShowContentRating(rating string) ShowFilter {
	return ShowFilter{stringsFilter("contentRating", []string{rating})}
}
func ShowCollection(collections ...string) ShowFilter {
	return ShowFilter{stringsFilter("collection", collections)}
}
func ShowNetwork(network string) ShowFilter {
	return ShowFilter{stringsFilter("network", []string{network})}
}
func ShowLabel(label string) ShowFilter {
	return ShowFilter{stringsFilter("label", []string{label})}
}
