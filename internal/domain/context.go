package domain

import "context"

type contextKey string

const (
	sessionContextKey contextKey = "session"
	shopContextKey    contextKey = "shop"
	userContextKey    contextKey = "user"
)

// WithSession attaches the request session to the context.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the request session, or nil when the session
// middleware did not run.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// WithShop attaches the resolved shop to the context.
func WithShop(ctx context.Context, shop *Shop) context.Context {
	return context.WithValue(ctx, shopContextKey, shop)
}

// ShopFromContext returns the shop resolved by the shop guard, or nil.
func ShopFromContext(ctx context.Context) *Shop {
	shop, _ := ctx.Value(shopContextKey).(*Shop)
	return shop
}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user resolved by the user guard, or nil.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}
