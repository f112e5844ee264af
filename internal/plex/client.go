package plex

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	DefaultAccountURL = "https://plex.tv"

	// MaxPageSize is the largest container size Plex serves in one page
	MaxPageSize = 100

	signInPath    = "/users/sign_in.xml"
	resourcesPath = "/api/resources?includeHttps=1&includeRelay=1"
	libraryPath   = "/library"
	sectionsPath  = "/library/sections"
	metadataPath  = "/library/metadata"
)

// Client is an authenticated Plex API client. It is immutable once built and
// safe to share between goroutines; servers, libraries and section handles
// all hold a pointer to the same Client.
type Client struct {
	identity   Identity
	token      string
	header     http.Header // identity + token, computed once
	accountURL string
	pageSize   int
	transport  *transport
	cache      SectionCache
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	doer            HTTPDoer
	timeout         time.Duration
	accountURL      string
	pageSize        int
	rps             float64
	burst           int
	breakerName     string
	breakerFailures uint32
	breakerCooldown time.Duration
	cache           SectionCache
	logger          *slog.Logger
}

// WithHTTPClient sets the HTTP client (or any HTTPDoer) used for requests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(o *clientOptions) {
		o.doer = doer
	}
}

// WithTimeout bounds every request when the default HTTP client is used.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithAccountURL points account operations (sign in, devices) at url (for testing).
func WithAccountURL(url string) Option {
	return func(o *clientOptions) {
		o.accountURL = url
	}
}

// WithPageSize sets the page size for paginated fetches, clamped to [1, MaxPageSize].
func WithPageSize(n int) Option {
	return func(o *clientOptions) {
		o.pageSize = n
	}
}

// WithRateLimit makes each request wait for a token from a limiter
// allowing rps requests per second. Requests are delayed, never retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) {
		o.rps = rps
		o.burst = burst
	}
}

// WithCircuitBreaker fails requests fast after failures consecutive
// transport errors, until cooldown has passed.
func WithCircuitBreaker(name string, failures uint32, cooldown time.Duration) Option {
	return func(o *clientOptions) {
		o.breakerName = name
		o.breakerFailures = failures
		o.breakerCooldown = cooldown
	}
}

// WithSectionCache serves section listings from cache until they are
// explicitly refreshed or invalidated.
func WithSectionCache(cache SectionCache) Option {
	return func(o *clientOptions) {
		o.cache = cache
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a client for identity. token may be empty for
// unauthenticated use such as SignIn.
func NewClient(identity Identity, token string, opts ...Option) *Client {
	o := clientOptions{
		timeout:    defaultTimeout,
		accountURL: DefaultAccountURL,
		pageSize:   MaxPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.doer == nil {
		o.doer = &http.Client{Timeout: o.timeout}
	}

	t := &transport{doer: o.doer, logger: o.logger}
	if o.rps > 0 {
		burst := o.burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(o.rps), burst)
	}
	if o.breakerFailures > 0 {
		t.breaker = newBreaker(o.breakerName, o.breakerFailures, o.breakerCooldown, o.logger)
	}

	return &Client{
		identity:   identity,
		token:      token,
		header:     identity.Headers(token),
		accountURL: o.accountURL,
		pageSize:   clampPageSize(o.pageSize),
		transport:  t,
		cache:      o.cache,
		logger:     o.logger,
	}
}

// WithToken returns a new client sharing this client's transport and
// settings but authenticated with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	clone.header = c.identity.Headers(token)
	return &clone
}

// Identity returns the identification values sent with every request.
func (c *Client) Identity() Identity { return c.identity }

// Token returns the authentication token, empty for unauthenticated clients.
func (c *Client) Token() string { return c.token }

// PageSize returns the page size used for paginated fetches.
func (c *Client) PageSize() int { return c.pageSize }

// headers returns a copy of the precomputed request headers
func (c *Client) headers() http.Header {
	return c.header.Clone()
}

func clampPageSize(n int) int {
	if n <= 0 || n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
