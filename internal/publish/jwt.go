package publish

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// appJWTLifetime stays under GitHub's ten-minute maximum.
const appJWTLifetime = 9 * time.Minute

// AppJWT signs a short-lived GitHub App JWT. The result is exchanged
// for an installation token, which is what GitHubPublisher.Token wants.
func AppJWT(appID string, key *rsa.PrivateKey) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("publish: missing GitHub App ID")
	}
	if key == nil {
		return "", fmt.Errorf("publish: missing GitHub App private key")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Issuer: appID,
		// a minute of clock-drift allowance, per GitHub's guidance
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTLifetime)),
	})

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("publish: signing App JWT: %w", err)
	}
	return signed, nil
}

// ParseAppKey reads a PEM-encoded RSA private key as downloaded from the
// App settings page.
func ParseAppKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("publish: parsing GitHub App key: %w", err)
	}
	return key, nil
}
