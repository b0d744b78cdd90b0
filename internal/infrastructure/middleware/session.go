package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// SessionCookieName is the browser cookie carrying the opaque session token.
const SessionCookieName = "glowcart_session"

// SessionMiddleware loads the session for the request cookie, creating a
// fresh anonymous session when the cookie is missing or stale. The session is
// placed on the request context for handlers and guards downstream.
func SessionMiddleware(store ports.SessionStore, ttl time.Duration, secure bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var session *domain.Session
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				session, err = store.Get(ctx, cookie.Value)
				if err != nil {
					logger.Error().Err(err).Msg("Failed to load session")
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
			}

			if session == nil {
				token, err := newSessionToken()
				if err != nil {
					logger.Error().Err(err).Msg("Failed to generate session token")
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}

				session = &domain.Session{
					Token:     token,
					ExpiresAt: time.Now().Add(ttl),
					CreatedAt: time.Now(),
				}
				if err := store.Save(ctx, session); err != nil {
					logger.Error().Err(err).Msg("Failed to save session")
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					Expires:  session.ExpiresAt,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(domain.WithSession(ctx, session)))
		})
	}
}

// RequireShop guards routes that operate on a connected shop. It resolves the
// session's shop, rejects sessions without one, and rejects shops whose
// stored token is gone (uninstalled). The shop lands on the context.
func RequireShop(shops ports.ShopRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session := domain.SessionFromContext(ctx)
			if session == nil || !session.ShopBound() {
				http.Error(w, "no shop connected", http.StatusUnauthorized)
				return
			}

			shop, err := shops.GetByID(ctx, session.ShopID)
			if err != nil {
				logger.Error().Err(err).Str("shop_id", session.ShopID).Msg("Failed to load shop")
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if shop == nil || !shop.Connected() {
				http.Error(w, "no shop connected", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithShop(ctx, shop)))
		})
	}
}

// RequireUser guards routes that need an authenticated dashboard user.
func RequireUser(users ports.UserRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session := domain.SessionFromContext(ctx)
			if session == nil || session.UserID == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(ctx, session.UserID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to load user")
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithUser(ctx, user)))
		})
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
