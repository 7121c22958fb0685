package main

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the payload of a session token: who the bearer is and
// until when the token is good.
type sessionClaims struct {
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a shared secret. Tokens
// are self-contained, so verification needs no store lookup and no state is
// shared between API instances.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed HS256 token for the given subject, expiring after
// the configured TTL.
func (s *TokenService) Issue(userId, email string) (string, error) {
	claims := sessionClaims{
		UserId: userId,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject identity.
// Expired-but-otherwise-valid tokens fail with ErrTokenExpired; every other
// failure (tampered signature, wrong algorithm, malformed or incomplete
// token) collapses to ErrTokenInvalid so no parser detail reaches the client.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.UserId == "" {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserId: claims.UserId, Email: claims.Email}, nil
}
