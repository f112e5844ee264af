package plex

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/plexapi/internal/domain"
)

// Resource describes one request against Plex and how to decode its
// response into T. Every operation in this package is built from one.
type Resource[T any] struct {
	Name   string // used in logs and DecodeError
	Method string
	URL    string
	Header http.Header
	Body   []byte
	Decode func(raw []byte) (T, error)
}

// Execute sends r through the client's transport and decodes the response.
// Transport failures surface as *TransportError, decode failures as *DecodeError.
func Execute[T any](ctx context.Context, c *Client, r Resource[T]) (T, error) {
	var zero T
	raw, err := c.transport.execute(ctx, r.Method, r.URL, r.Header, r.Body)
	if err != nil {
		return zero, err
	}
	return r.Decode(raw)
}

// newResource builds an authenticated GET that decodes into T
func newResource[T any](c *Client, name, rawURL string) Resource[T] {
	return Resource[T]{
		Name:   name,
		Method: http.MethodGet,
		URL:    rawURL,
		Header: c.headers(),
		Decode: func(raw []byte) (T, error) { return decode[T](name, raw) },
	}
}

func (c *Client) signInRequest(username, password string) Resource[user] {
	header := c.identity.Headers("")
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
	return Resource[user]{
		Name:   "sign in",
		Method: http.MethodPost,
		URL:    c.accountURL + signInPath,
		Header: header,
		Decode: func(raw []byte) (user, error) { return decode[user]("sign in", raw) },
	}
}

func (c *Client) devicesRequest() Resource[deviceContainer] {
	return newResource[deviceContainer](c, "devices", c.accountURL+resourcesPath)
}

func (c *Client) connectRequest(endpoint string) (Resource[ServerInfo], error) {
	u, err := joinURL(endpoint, "/", "")
	if err != nil {
		return Resource[ServerInfo]{}, err
	}
	return newResource[ServerInfo](c, "server", u), nil
}

func (c *Client) libraryRequest(endpoint string) (Resource[LibraryInfo], error) {
	u, err := joinURL(endpoint, libraryPath, "")
	if err != nil {
		return Resource[LibraryInfo]{}, err
	}
	return newResource[LibraryInfo](c, "library", u), nil
}

func (c *Client) sectionsRequest(endpoint string) (Resource[sectionContainer], error) {
	u, err := joinURL(endpoint, sectionsPath, "")
	if err != nil {
		return Resource[sectionContainer]{}, err
	}
	return newResource[sectionContainer](c, "sections", u), nil
}

// page is one decoded slice of a paginated collection
type page[C any] struct {
	items []C
	total int
}

// itemsDecoder turns a raw collection body into records and the reported total
type itemsDecoder[C any] func(resource string, raw []byte) ([]C, int, error)

// pageRequest fetches size records starting at start. Pagination travels in
// headers, leaving the URL's query string to the caller's filters.
func pageRequest[C any](c *Client, name, rawURL string, start, size int, dec itemsDecoder[C]) Resource[page[C]] {
	header := c.headers()
	header.Set(HeaderContainerStart, strconv.Itoa(start))
	header.Set(HeaderContainerSize, strconv.Itoa(size))
	return Resource[page[C]]{
		Name:   name,
		Method: http.MethodGet,
		URL:    rawURL,
		Header: header,
		Decode: func(raw []byte) (page[C], error) {
			items, total, err := dec(name, raw)
			return page[C]{items: items, total: total}, err
		},
	}
}

// collectionRequest fetches a whole collection in one call (no page headers)
func collectionRequest[C any](c *Client, name, rawURL string, dec itemsDecoder[C]) Resource[[]C] {
	return Resource[[]C]{
		Name:   name,
		Method: http.MethodGet,
		URL:    rawURL,
		Header: c.headers(),
		Decode: func(raw []byte) ([]C, error) {
			items, _, err := dec(name, raw)
			return items, err
		},
	}
}

// joinURL appends path and an optional raw query to endpoint
func joinURL(endpoint, path, rawQuery string) (string, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrInvalidURL, endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute url", domain.ErrInvalidURL, endpoint)
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = rawQuery
	return u.String(), nil
}
