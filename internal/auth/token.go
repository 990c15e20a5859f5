package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the decoded payload of a verified token, attached to the
// request context by the access gate.
type Identity struct {
	UserID string
	Name   string
	Admin  bool
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Admin  bool   `json:"admin"`
}

// TokenManager issues and verifies HS256 tokens with a fixed lifetime.
// Tokens are stateless; there is no revocation, logout is client-side.
type TokenManager struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenManager(secret string, lifetime time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

func (m *TokenManager) Issue(userID, name string, admin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
		UserID: userID,
		Name:   name,
		Admin:  admin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the embedded identity, or ErrInvalidToken when the
// signature is invalid, the payload is malformed, or the token expired.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Admin:  claims.Admin,
	}, nil
}
