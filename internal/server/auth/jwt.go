// Package auth provides JWT issuance/validation and password hashing for
// the fitleveling server.
package auth

import (
	"errors"
	"time"

	"github.com/fitleveling/fitleveling/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered JWT claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// Issuer mints and validates HS256 access tokens. The secret is injected at
// construction and constant for the process lifetime.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token for an already-verified user id. An empty secret means
// the process is misconfigured: the request must fail rather than produce an
// unsigned or garbage token.
func (i *Issuer) Issue(userID string) (string, error) {
	if len(i.secret) == 0 {
		return "", common.ErrorSigningConfig
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserIDFromToken validates tokenString and returns the user id it carries.
// Signature and expiration checks are delegated to the jwt library.
func (i *Issuer) UserIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
