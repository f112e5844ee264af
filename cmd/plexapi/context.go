package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/plexapi/internal/config"
	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/mmcdole/plexapi/internal/log"
	"github.com/mmcdole/plexapi/internal/plex"
	"github.com/mmcdole/plexapi/internal/search"
	"github.com/mmcdole/plexapi/internal/store"
)

type commandContext struct {
	configFlag string
	jsonFlag   bool
	verbose    bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger  *slog.Logger
	closers []io.Closer
	store   *store.SectionStore
}

func newCommandContext() *commandContext {
	return &commandContext{logger: log.NullLogger()}
}

// ensureConfig loads the config once and sets up logging and the section cache
func (c *commandContext) ensureConfig() error {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.configFlag)
		if path == "" {
			path = config.DefaultFile()
		}
		cfg, err := config.LoadConfigFrom(path)
		if err != nil {
			c.configErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		c.config = cfg

		if c.verbose {
			c.logger = log.NewStderrLogger("DEBUG")
		} else if logger, closer, err := log.SetupLogger(&cfg.Logging); err == nil {
			c.logger = logger
			c.closers = append(c.closers, closer)
		}
		slog.SetDefault(c.logger)

		if cfg.Cache.Enabled {
			s, err := store.NewSectionStore(cfg.CachePath())
			if err != nil {
				// Carry on uncached rather than fail every command
				c.logger.Warn("section cache unavailable", "path", cfg.CachePath(), "error", err)
				return
			}
			c.store = s
			c.closers = append(c.closers, s)
		}
	})
	return c.configErr
}

func (c *commandContext) jsonOutput() bool { return c.jsonFlag }

// close releases the log file and the section cache. It runs once the
// command returns, whether or not it failed.
func (c *commandContext) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i].Close()
	}
	c.closers = nil
}

func (c *commandContext) identity() (plex.Identity, error) {
	version := c.config.Client.Version
	if version == "" {
		version = Version
	}
	id, err := plex.NewIdentity(c.config.Client.Product, version)
	if err != nil {
		return plex.Identity{}, err
	}
	if c.config.Account.ClientIdentifier != "" {
		id = id.WithClientIdentifier(c.config.Account.ClientIdentifier)
	}
	return id, nil
}

// newClient builds a client from the config, authenticated with token
func (c *commandContext) newClient(token string) (*plex.Client, error) {
	id, err := c.identity()
	if err != nil {
		return nil, err
	}

	cc := c.config.Client
	opts := []plex.Option{
		plex.WithLogger(c.logger),
		plex.WithTimeout(cc.Timeout),
		plex.WithPageSize(cc.PageSize),
		plex.WithRateLimit(cc.RateLimit, cc.Burst),
		plex.WithCircuitBreaker("plex", cc.BreakerFailures, cc.BreakerCooldown),
	}
	if c.store != nil {
		opts = append(opts, plex.WithSectionCache(c.store))
	}
	return plex.NewClient(id, token, opts...), nil
}

func (c *commandContext) accountClient() (*plex.Client, error) {
	if c.config.Account.Token == "" {
		return nil, errors.New("not signed in; run `plexapi login` first")
	}
	return c.newClient(c.config.Account.Token)
}

// server connects to the configured server: the URL when set, else the
// named device from the account's device list.
func (c *commandContext) server(ctx context.Context) (*plex.Server, error) {
	if !c.config.IsConfigured() {
		return nil, fmt.Errorf("no server configured; set server.url or server.name in %s", c.config.Path())
	}
	client, err := c.accountClient()
	if err != nil {
		return nil, err
	}
	if c.config.Server.URL != "" {
		return client.ConnectURL(ctx, c.config.Server.URL)
	}

	devices, err := client.Devices(ctx)
	if err != nil {
		return nil, err
	}
	device, err := devices.Select(c.config.Server.Name)
	if err != nil {
		return nil, withSuggestions(err, c.config.Server.Name, devices.Servers().Names())
	}
	// Shared servers only accept the device's own access token
	if device.AccessToken != "" && device.AccessToken != client.Token() {
		client = client.WithToken(device.AccessToken)
	}
	return client.Connect(ctx, device)
}

func (c *commandContext) library(ctx context.Context) (*plex.Library, error) {
	server, err := c.server(ctx)
	if err != nil {
		return nil, err
	}
	return server.Library(ctx)
}

// section returns the section titled title, or the first section of type t
// when title is empty
func (c *commandContext) section(ctx context.Context, title string, t plex.SectionType) (*plex.SectionHandle, error) {
	lib, err := c.library(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		sections, err := lib.SectionsByType(ctx, t)
		if err != nil {
			return nil, err
		}
		if len(sections) == 0 {
			return nil, fmt.Errorf("%w: no %s section", domain.ErrSectionNotFound, t)
		}
		return sections[0], nil
	}

	h, err := lib.SectionByTitle(ctx, title)
	if errors.Is(err, domain.ErrSectionNotFound) {
		sections, lerr := lib.Sections(ctx)
		if lerr != nil {
			return nil, err
		}
		titles := make([]string, len(sections))
		for i, s := range sections {
			titles[i] = s.Title()
		}
		return nil, withSuggestions(err, title, titles)
	}
	return h, err
}

func withSuggestions(err error, query string, candidates []string) error {
	suggestions := search.Suggest(query, candidates, 3)
	if len(suggestions) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
}
