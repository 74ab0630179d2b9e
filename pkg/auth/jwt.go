package auth

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims this service cares about. Tokens are issued by
// the external identity provider; this service only validates them.
type Claims struct {
	AuthID string `json:"sub"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Secret returns the shared HMAC secret, empty when token enforcement is
// disabled.
func Secret() string {
	return os.Getenv("AUTH_JWT_SECRET")
}

// ValidateToken parses and validates a bearer token.
func ValidateToken(tokenString string) (*Claims, error) {
	secret := Secret()
	if secret == "" {
		return nil, fmt.Errorf("token validation is not configured")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.AuthID == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
