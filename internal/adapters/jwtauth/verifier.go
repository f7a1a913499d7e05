// Package jwtauth verifies HS256 identity tokens issued by the account service.
package jwtauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/Sakshamyadav19/HireMe-Backend/internal/domain/auth"
)

const defaultUserClaim = "user_id"

// VerifierConfig holds configuration for the token verifier.
type VerifierConfig struct {
	Secret    string
	UserClaim string           // Optional: claim holding the user id (default "user_id")
	Leeway    time.Duration    // Optional: clock skew tolerance for exp/nbf
	Now       func() time.Time // Optional: clock override for tests
}

// Verifier validates signed tokens and maps their claims into a domain identity.
type Verifier struct {
	secret    []byte
	userClaim string
	parser    *jwt.Parser
}

// NewVerifier creates a new Verifier.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	claim := strings.TrimSpace(cfg.UserClaim)
	if claim == "" {
		claim = defaultUserClaim
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(cfg.Now))
	}

	return &Verifier{
		secret:    []byte(cfg.Secret),
		userClaim: claim,
		parser:    jwt.NewParser(opts...),
	}, nil
}

// Verify parses raw, checks its signature and registered claims, and returns the
// identity it names. Every failure wraps domainauth.ErrInvalidToken.
func (v *Verifier) Verify(raw string) (*domainauth.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: token is empty", domainauth.ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainauth.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domainauth.ErrInvalidToken
	}

	userID, err := claimString(claims, v.userClaim)
	if err != nil {
		return nil, err
	}

	id := &domainauth.Identity{UserID: userID}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}

// Sign issues a token for userID. It is used by tooling and tests; production
// tokens come from the account service.
func (v *Verifier) Sign(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		v.userClaim: userID,
		"iat":       jwt.NewNumericDate(time.Now()),
	}
	if ttl > 0 {
		claims["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// claimString reads a user id claim. Numeric ids are accepted since some issuers
// encode them as JSON numbers.
func claimString(claims jwt.MapClaims, name string) (string, error) {
	switch v := claims[name].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s, nil
		}
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	}
	return "", fmt.Errorf("%w: missing %s claim", domainauth.ErrInvalidToken, name)
}
