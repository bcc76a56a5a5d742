package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// AuthEventPublisher hands audit events to the background writer. Publish
// must not block the request path.
type AuthEventPublisher interface {
	Publish(event domain.AuthEvent)
}

// AuthEventRepository stores audit events.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
