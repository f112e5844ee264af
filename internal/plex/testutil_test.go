package plex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testIdentity() Identity {
	return Identity{
		Platform:         "Linux",
		PlatformVersion:  "6.1.0",
		Product:          "plexapi-test",
		Version:          "0.0.1",
		Device:           "testhost",
		ClientIdentifier: "test-client-id",
		Provides:         "controller",
	}
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(body)
}

// pageCall is one paginated request as seen by the fake server
type pageCall struct {
	Path  string
	Query string
	Start int
	Size  int
}

// fakePlex is a Plex Media Server stand-in. "/" serves the server root;
// other paths go to routes, or 404.
type fakePlex struct {
	t    *testing.T
	srv  *httptest.Server
	root []byte

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	pages  []pageCall
}

func newFakePlex(t *testing.T) *fakePlex {
	t.Helper()
	f := &fakePlex{
		t:      t,
		root:   fixture(t, "server.xml"),
		routes: map[string]http.HandlerFunc{},
		hits:   map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePlex) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	if start := r.Header.Get(HeaderContainerStart); start != "" {
		s, _ := strconv.Atoi(start)
		n, _ := strconv.Atoi(r.Header.Get(HeaderContainerSize))
		f.pages = append(f.pages, pageCall{Path: r.URL.Path, Query: r.URL.RawQuery, Start: s, Size: n})
	}
	h, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if r.Header.Get(HeaderToken) != "test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if r.URL.Path == "/" {
		writeXML(w, f.root)
		return
	}
	if ok {
		h(w, r)
		return
	}
	http.NotFound(w, r)
}

func (f *fakePlex) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakePlex) serveFixture(path, name string) {
	body := fixture(f.t, name)
	f.handle(path, func(w http.ResponseWriter, r *http.Request) { writeXML(w, body) })
}

func (f *fakePlex) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakePlex) pageCalls() []pageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pageCall(nil), f.pages...)
}

func (f *fakePlex) client(opts ...Option) *Client {
	base := []Option{WithAccountURL(f.srv.URL), WithLogger(discardLogger)}
	return NewClient(testIdentity(), "test-token", append(base, opts...)...)
}

// connect reaches the fake server directly and returns the bound Server
func (f *fakePlex) connect(opts ...Option) *Server {
	f.t.Helper()
	server, err := f.client(opts...).ConnectURL(context.Background(), f.srv.URL)
	require.NoError(f.t, err)
	return server
}

// section connects and returns the section handle titled title from sections.xml
func (f *fakePlex) section(title string, opts ...Option) *SectionHandle {
	f.t.Helper()
	f.serveFixture("/library", "library.xml")
	f.serveFixture("/library/sections", "sections.xml")

	lib, err := f.connect(opts...).Library(context.Background())
	require.NoError(f.t, err)
	h, err := lib.SectionByTitle(context.Background(), title)
	require.NoError(f.t, err)
	return h
}

// videoPage renders n movies numbered from start
func videoPage(start, n, total int) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<MediaContainer size="%d" totalSize="%d" offset="%d">`, n, total, start)
	for i := start; i < start+n; i++ {
		fmt.Fprintf(&b, `<Video ratingKey="%d" type="movie" title="Movie %d"/>`, i+1, i+1)
	}
	b.WriteString(`</MediaContainer>`)
	return []byte(b.String())
}

// pagedVideos serves total movies, honouring the page headers
func pagedVideos(total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.Header.Get(HeaderContainerStart))
		size, err := strconv.Atoi(r.Header.Get(HeaderContainerSize))
		if err != nil {
			size = total
		}
		n := min(size, max(total-start, 0))
		writeXML(w, videoPage(start, n, total))
	}
}

// fakeCache is an in-memory SectionCache
type fakeCache struct {
	mu            sync.Mutex
	entries       map[string][]Section
	invalidateErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]Section{}}
}

func (c *fakeCache) GetSections(serverID string) ([]Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[serverID]
	return s, ok
}

func (c *fakeCache) SaveSections(serverID string, sections []Section) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[serverID] = sections
	return nil
}

func (c *fakeCache) InvalidateSections(serverID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	delete(c.entries, serverID)
	return nil
}
