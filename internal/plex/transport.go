package plex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/plexapi/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it; tests can
// substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// transport issues requests and returns raw bodies. It knows nothing about
// Plex resources and never retries; retrying is the caller's decision.
type transport struct {
	doer    HTTPDoer
	limiter *rate.Limiter                    // optional
	breaker *gobreaker.CircuitBreaker[[]byte] // optional
	logger  *slog.Logger
}

// execute performs one request. body may be nil.
func (t *transport) execute(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, URL: rawURL, Err: err}
		}
	}

	if t.breaker == nil {
		return t.do(ctx, method, rawURL, header, body)
	}

	resp, err := t.breaker.Execute(func() ([]byte, error) {
		return t.do(ctx, method, rawURL, header, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &TransportError{Method: method, URL: rawURL, Err: fmt.Errorf("%w: %w", domain.ErrServerOffline, err)}
	}
	return resp, err
}

func (t *transport) do(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	req.Header = header.Clone()

	t.logger.Debug("plex request", "method", method, "url", rawURL)

	resp, err := t.doer.Do(req)
	if err != nil {
		t.logger.Error("plex request failed", "method", method, "url", rawURL, "error", err)
		return nil, &TransportError{Method: method, URL: rawURL, Err: fmt.Errorf("%w: %w", domain.ErrServerOffline, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &TransportError{Method: method, URL: rawURL, StatusCode: resp.StatusCode, Err: domain.ErrAuthFailed}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Error("plex request error", "status", resp.StatusCode, "url", rawURL, "bodyLen", len(respBody))
		return nil, &TransportError{Method: method, URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	return respBody, nil
}

// newBreaker trips after failures consecutive transport failures and stays
// open for cooldown. Auth rejections and caller cancellations do not count.
func newBreaker(name string, failures uint32, cooldown time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrAuthFailed) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("plex circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})
}
