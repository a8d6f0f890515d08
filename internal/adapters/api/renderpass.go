package api

import (
	"context"

	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
	"github.com/google/uuid"
)

var _ ports.HTTPClient = (*RenderPassClient)(nil)

// RenderPassClient serves a single server-side render pass and is discarded
// with it. It never consults the session credential store; a render that
// needs authentication must pass an explicit Authorization header.
type RenderPassClient struct {
	transport
	passID uuid.UUID
}

func NewRenderPassClient(cfg config.APIConfig, passID uuid.UUID, opts ...Option) (*RenderPassClient, error) {
	t, err := newTransport(cfg, opts...)
	if err != nil {
		return nil, err
	}
	t.logger = t.logger.With("render_pass", passID.String())
	return &RenderPassClient{transport: t, passID: passID}, nil
}

func (c *RenderPassClient) PassID() uuid.UUID {
	return c.passID
}

func (c *RenderPassClient) Do(ctx context.Context, req domain.RequestDescriptor, out any) error {
	header := req.Header()
	header.Set(domain.HeaderRenderPass, c.passID.String())
	return c.send(ctx, req, header, out)
}
