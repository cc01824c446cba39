// Package auth implements the bearer token codec: issuing and verifying the
// signed, time-limited tokens that carry a Principal between requests.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/practicewell/records-system/internal/core/domain"
)

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignature = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// Claims is the JWT payload. The public fields mirror the Principal; the
// registered claims carry the expiry.
type Claims struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"first_name"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given principal, valid for ttl from now.
// Pure over its inputs apart from reading the clock.
func Issue(p domain.Principal, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ID:        p.ID,
		Email:     p.Email,
		Role:      p.Role,
		FirstName: p.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify parses and validates a raw token string and returns the embedded
// Principal. Surrounding whitespace is trimmed first; cookies and headers
// occasionally arrive with transport artifacts.
//
// Failure kinds: ErrTokenExpired when the expiry is in the past,
// ErrTokenSignature when the signature does not match (or the signing
// algorithm is not HS256), ErrTokenMalformed for anything unparseable.
func Verify(raw, secret string) (domain.Principal, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, ErrTokenSignature
		default:
			return domain.Principal{}, ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return domain.Principal{}, ErrTokenMalformed
	}

	return domain.Principal{
		ID:        claims.ID,
		Email:     claims.Email,
		Role:      claims.Role,
		FirstName: claims.FirstName,
	}, nil
}
