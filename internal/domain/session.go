package domain

import "time"

// Session is the server-owned state behind an opaque browser cookie token.
// OAuthNonce and OAuthShop are transient: written by the OAuth initiation and
// cleared when the callback consumes them, so a stale callback cannot replay
// the same nonce.
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"user_id,omitempty"`
	ShopID     string    `json:"shop_id,omitempty"`
	OAuthNonce string    `json:"oauth_nonce,omitempty"`
	OAuthShop  string    `json:"oauth_shop,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShopBound reports whether the session is bound to a connected shop.
func (s *Session) ShopBound() bool {
	return s.ShopID != ""
}

// BeginOAuth records the nonce and the domain it was issued for. A second
// initiation overwrites the first; only the most recent flow's callback will
// pass validation.
func (s *Session) BeginOAuth(nonce, shop string) {
	s.OAuthNonce = nonce
	s.OAuthShop = shop
}

// ClearOAuth invalidates the in-flight nonce after the callback consumes it.
func (s *Session) ClearOAuth() {
	s.OAuthNonce = ""
	s.OAuthShop = ""
}
