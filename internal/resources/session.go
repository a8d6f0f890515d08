package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

// CredentialStore is the writable side of the session token store.
type CredentialStore interface {
	Set(token string) error
	Clear()
}

// Session runs the sign-in and sign-out flows, the only writers of the
// session credential.
type Session struct {
	client ports.HTTPClient
	store  CredentialStore
	cache  asyncdata.Source
}

// NewSession wires the flows. cache may be nil; when set, entries that
// depend on who is signed in are dropped on every login and logout.
func NewSession(client ports.HTTPClient, store CredentialStore, cache asyncdata.Source) *Session {
	return &Session{client: client, store: store, cache: cache}
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	req, err := domain.NewRequest("/auth/login").
		Method(http.MethodPost).
		Form(url.Values{
			"username": {username},
			"password": {password},
		}).
		Build()
	if err != nil {
		return err
	}

	var token domain.Token
	if err := s.client.Do(ctx, req, &token); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if token.AccessToken == "" {
		return &domain.DecodeError{URL: req.Path(), Err: errors.New("response has no access_token")}
	}

	if err := s.store.Set(token.AccessToken); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	s.dropPrivate()
	return nil
}

func (s *Session) Logout() {
	s.store.Clear()
	s.dropPrivate()
}

func (s *Session) dropPrivate() {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(KeyStats)
	s.cache.Invalidate(KeyRequests)
}
