package utils // package utils provides helpers for token signing and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmelikov/user-auth-api/internal/model"
)

// Claims is the payload signed into a token: the user's id (as the
// registered subject), username and role. The password hash is never
// part of a claim.
type Claims struct {
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs identity claims into HS256 JWTs and verifies them
// back. TTL of zero issues tokens without an expiry; token lifetime is
// then bounded only by the validity of the signature.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Sign produces a signed token for the given user. It fails only when
// the signing key is unusable, which is a process configuration problem
// rather than a per-request one.
func (c *TokenCodec) Sign(u model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims and whether
// they can be trusted. Every failure mode — malformed input, wrong
// signing algorithm, bad signature, expired token — collapses into
// ok=false; nothing at this boundary panics or returns an error, so
// callers can treat an invalid token exactly like a missing one.
func (c *TokenCodec) Verify(raw string) (Claims, bool) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, false
	}
	return claims, true
}
