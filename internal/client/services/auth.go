// Package services contains application services for the taskkeeper CLI.
// This file defines the authentication service: register, login, logout,
// profile access and a liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
)

// ErrNotAuthenticated is returned by calls that need a session when nobody
// is signed in.
var ErrNotAuthenticated = errors.New("not signed in")

// AuthService defines the account operations of the CLI.
type AuthService interface {
	Register(ctx context.Context, fullName, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, fullName, email *string) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  api.Client
	session *session.Session
}

func NewAuthService(client api.Client, s *session.Session) AuthService {
	return &authService{client: client, session: s}
}

// Register creates the account and signs straight into it.
func (a *authService) Register(ctx context.Context, fullName, email string, password []byte) (*models.User, error) {
	if _, err := a.client.Register(ctx, strings.TrimSpace(fullName), strings.TrimSpace(email), password); err != nil {
		return nil, err
	}
	return a.Login(ctx, email, password)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	if err := a.session.Login(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}
	return &res.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// Profile fetches the current user and refreshes the cached copy.
func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	return withToken(ctx, a.session, func(token string) (*models.User, error) {
		u, err := a.client.Profile(ctx, token)
		if err != nil {
			return nil, err
		}
		return u, a.session.SetUser(ctx, *u)
	})
}

func (a *authService) UpdateProfile(ctx context.Context, fullName, email *string) (*models.User, error) {
	return withToken(ctx, a.session, func(token string) (*models.User, error) {
		u, err := a.client.UpdateProfile(ctx, token, fullName, email)
		if err != nil {
			return nil, err
		}
		return u, a.session.SetUser(ctx, *u)
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// withToken runs fn with the session token. A 401 from the server means the
// token is no longer good, so the session is dropped.
func withToken[T any](ctx context.Context, s *session.Session, fn func(token string) (T, error)) (T, error) {
	var zero T

	token := s.Token()
	if token == "" {
		return zero, ErrNotAuthenticated
	}

	res, err := fn(token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			_ = s.Logout(ctx)
		}
		return zero, err
	}
	return res, nil
}
