package api

import (
	"context"

	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

var _ ports.HTTPClient = (*BrowserClient)(nil)

// BrowserClient is the fetch client of an interactive session. It attaches
// the session's bearer credential to every request.
type BrowserClient struct {
	transport
	credentials ports.CredentialSource
}

func NewBrowserClient(cfg config.APIConfig, credentials ports.CredentialSource, opts ...Option) (*BrowserClient, error) {
	t, err := newTransport(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &BrowserClient{transport: t, credentials: credentials}, nil
}

// Do sends exactly one request. A stored credential overrides any
// caller-supplied Authorization header. A 401 answer to an authenticated
// request means the credential it carried expired; it is dropped from the
// session unless a newer one replaced it meanwhile.
func (c *BrowserClient) Do(ctx context.Context, req domain.RequestDescriptor, out any) error {
	header := req.Header()

	token, authenticated := "", false
	if c.credentials != nil {
		token, authenticated = c.credentials.Get()
	}

	if authenticated {
		header.Set(domain.HeaderAuthorization, "Bearer "+token)
	} else if req.RequireAuth() {
		c.logger.Warn("sending request without credential",
			"request", req.String(),
			"error", domain.ErrAuthMissing,
		)
	}

	err := c.send(ctx, req, header, out)
	if authenticated && domain.IsUnauthorized(err) {
		if c.credentials.ClearIf(token) {
			c.logger.Info("credential rejected, session cleared", "request", req.String())
		}
	}
	return err
}
