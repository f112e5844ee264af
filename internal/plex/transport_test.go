package plex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/plexapi/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_Unauthorized(t *testing.T) {
	f := newFakePlex(t)
	c := NewClient(testIdentity(), "wrong-token", WithLogger(discardLogger))

	_, err := c.ConnectURL(context.Background(), f.srv.URL)

	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	assert.Equal(t, http.MethodGet, transportErr.Method)
}

func TestTransport_ServerError(t *testing.T) {
	f := newFakePlex(t)
	f.handle("/library", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := f.connect().Library(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrAuthFailed)

	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestTransport_DecodeErrorIsDistinct(t *testing.T) {
	f := newFakePlex(t)
	f.handle("/library", func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, []byte(`<MediaContainer`))
	})

	_, err := f.connect().Library(context.Background())

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "library", decodeErr.Resource)
	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
}

func TestTransport_ServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := NewClient(testIdentity(), "test-token", WithLogger(discardLogger))
	_, err := c.ConnectURL(context.Background(), endpoint)

	assert.ErrorIs(t, err, domain.ErrServerOffline)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
}

func TestTransport_ContextDeadline(t *testing.T) {
	f := newFakePlex(t)
	f.handle("/library", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	server := f.connect()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := server.Library(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestTransport_NoRetry(t *testing.T) {
	f := newFakePlex(t)
	f.handle("/library", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := f.connect().Library(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, f.hitCount("/library"))
}

func TestTransport_CircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testIdentity(), "test-token",
		WithLogger(discardLogger),
		WithCircuitBreaker("test", 2, time.Minute),
	)

	for i := 0; i < 2; i++ {
		_, err := c.ConnectURL(context.Background(), srv.URL)
		require.Error(t, err)
	}

	_, err := c.ConnectURL(context.Background(), srv.URL)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Equal(t, int32(2), hits.Load())
}

func TestTransport_CircuitBreakerIgnoresAuthFailures(t *testing.T) {
	f := newFakePlex(t)
	c := NewClient(testIdentity(), "wrong-token",
		WithLogger(discardLogger),
		WithCircuitBreaker("test", 1, time.Minute),
	)

	for i := 0; i < 3; i++ {
		_, err := c.ConnectURL(context.Background(), f.srv.URL)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	}
	assert.Equal(t, 3, f.hitCount("/"))
}

func TestTransport_RateLimitHonoursContext(t *testing.T) {
	f := newFakePlex(t)
	c := f.client(WithRateLimit(0.01, 1))

	_, err := c.ConnectURL(context.Background(), f.srv.URL)
	require.NoError(t, err)

	// The burst is spent; the next token is 100s away
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.ConnectURL(ctx, f.srv.URL)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 1, f.hitCount("/"))
}
