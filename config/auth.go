package config

import "strings"

// AuthConfig controls verification of the identity token issued by the account service.
type AuthConfig struct {
	// JWTSecret is the HS256 signing key shared with the token issuer.
	JWTSecret string `env:"JWT_SECRET"`

	// CookieName is the cookie that carries the token for browser clients.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"token"`

	// UserClaim names the claim holding the user id.
	UserClaim string `env:"AUTH_USER_CLAIM" envDefault:"user_id"`
}

// Sanitize trims values and restores defaults for blank names.
func (a *AuthConfig) Sanitize() {
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	if a.CookieName = strings.TrimSpace(a.CookieName); a.CookieName == "" {
		a.CookieName = "token"
	}
	if a.UserClaim = strings.TrimSpace(a.UserClaim); a.UserClaim == "" {
		a.UserClaim = "user_id"
	}
}
