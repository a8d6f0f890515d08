package ports

import (
	"context"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

// HTTPClient performs one call against the shelter API and decodes a 2xx
// body into out. A nil out discards the body.
type HTTPClient interface {
	Do(ctx context.Context, req domain.RequestDescriptor, out any) error
}
