package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued bearer token.
const DefaultTokenTTL = time.Hour

// ErrNoSecret is returned when the issuer is constructed without a signing
// secret. This is a startup-class configuration error: cmd/server refuses to
// boot instead of rediscovering it per request.
var ErrNoSecret = fmt.Errorf("jwt signing secret is not configured")

// TokenUser is the identity carried inside the token payload.
type TokenUser struct {
	ID string `json:"id"`
}

// Claims are the JWT claims for issued tokens: {"user":{"id":...}} plus the
// registered expiry.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenIssuer signs bearer tokens bound to a user id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer. secret must be non-empty; ttl <= 0
// falls back to DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

// Issue signs a new HS256 token for userID, expiring ttl from now.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse validates the signature and expiry of a token issued by Issue and
// returns its claims. No HTTP route consumes this; it exists for tooling and
// tests.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
