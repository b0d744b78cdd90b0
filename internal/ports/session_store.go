package ports

import (
	"context"

	"glowcart-marketing-core/internal/domain"
)

// SessionStore holds browser sessions keyed by their opaque token. Get
// returns (nil, nil) for unknown or expired tokens.
type SessionStore interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, token string) error
}
