package bootstrap

import (
	"fmt"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/jwtauth"
)

// identityLeeway tolerates clock skew between this service and the token issuer.
const identityLeeway = 30 * time.Second

// BuildIdentityVerifier creates the verifier for identity tokens issued by the
// account service. Returns nil when no secret is configured; config validation
// rejects that combination whenever the http service is enabled.
func BuildIdentityVerifier(cfg config.AuthConfig) (*jwtauth.Verifier, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	v, err := jwtauth.NewVerifier(jwtauth.VerifierConfig{
		Secret:    cfg.JWTSecret,
		UserClaim: cfg.UserClaim,
		Leeway:    identityLeeway,
	})
	if err != nil {
		return nil, fmt.Errorf("create identity verifier: %w", err)
	}
	return v, nil
}
