package plex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/plexapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_BasicAuth(t *testing.T) {
	var gotToken, gotClientID string
	srv := accountServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, signInPath, r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret:with:colons", pass)

		gotToken = r.Header.Get(HeaderToken)
		gotClientID = r.Header.Get(HeaderClientIdentifier)
		writeXML(w, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<user id="1" uuid="u" username="alice" title="Alice &amp; Co" authToken="abc123"/>`))
	})

	anon := NewClient(testIdentity(), "", WithAccountURL(srv.URL), WithLogger(discardLogger))
	token, err := anon.SignIn(context.Background(), "alice", "s3cret:with:colons")
	require.NoError(t, err)

	assert.Equal(t, "abc123", token)
	assert.Empty(t, gotToken)
	assert.Equal(t, "test-client-id", gotClientID)
	assert.Equal(t, "abc123", anon.WithToken(token).Token())
}

func TestSignIn_AuthenticationTokenFallback(t *testing.T) {
	srv := accountServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, []byte(`<user username="bob" authenticationToken="legacy"/>`))
	})

	c := NewClient(testIdentity(), "", WithAccountURL(srv.URL), WithLogger(discardLogger))
	token, err := c.SignIn(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "legacy", token)
}

func TestSignIn_NoTokenInResponse(t *testing.T) {
	srv := accountServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, []byte(`<user username="bob"/>`))
	})

	c := NewClient(testIdentity(), "", WithAccountURL(srv.URL), WithLogger(discardLogger))
	_, err := c.SignIn(context.Background(), "bob", "pw")

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestSignIn_Rejected(t *testing.T) {
	srv := accountServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := NewClient(testIdentity(), "", WithAccountURL(srv.URL), WithLogger(discardLogger))
	_, err := c.SignIn(context.Background(), "bob", "wrong")

	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestSignIn_EmptyCredentials(t *testing.T) {
	c := NewClient(testIdentity(), "", WithLogger(discardLogger))

	_, err := c.SignIn(context.Background(), "", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = c.SignIn(context.Background(), "bob", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func accountServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}
