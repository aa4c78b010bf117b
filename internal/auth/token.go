package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers every verification failure: absent, malformed,
// expired, or signature-invalid tokens. Callers must not distinguish between
// these cases in responses.
var ErrTokenInvalid = errors.New("invalid token")

// Identity is the verified caller identity derived from a token.
// Email is the only field subsequent authorization decisions may trust.
type Identity struct {
	Email  string
	Claims jwt.MapClaims
}

// IssueToken signs the given identity claims plus issued-at and expiry with
// the server secret. Claim content is not validated here; callers must only
// pass verified identity fields.
func IssueToken(claims map[string]any, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	tokenClaims := jwt.MapClaims{}
	for k, v := range claims {
		tokenClaims[k] = v
	}
	tokenClaims["iat"] = jwt.NewNumericDate(now)
	tokenClaims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a token's signature and expiry and returns the verified
// identity. Any failure is reported as ErrTokenInvalid; empty tokens, garbage,
// expired tokens, and forged signatures are indistinguishable to callers.
func VerifyToken(tokenString, secret string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrTokenInvalid)
	}

	return &Identity{
		Email:  email,
		Claims: claims,
	}, nil
}
