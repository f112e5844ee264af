package plex

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
)

// SignIn exchanges a plex.tv username and password for an authentication
// token. It works on unauthenticated clients; pair it with WithToken:
//
//	token, err := anon.SignIn(ctx, user, pass)
//	client := anon.WithToken(token)
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrInvalidArgument)
	}

	u, err := Execute(ctx, c, c.signInRequest(username, password))
	if err != nil {
		c.logger.Error("plex sign in failed", "username", username, "error", err)
		return "", err
	}

	token := u.AuthToken
	if token == "" {
		token = u.AuthenticationToken
	}
	if token == "" {
		return "", &DecodeError{Resource: "sign in", Err: fmt.Errorf("response carries no auth token")}
	}

	c.logger.Info("plex sign in succeeded", "username", username)
	return token, nil
}
