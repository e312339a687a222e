package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and parses the JWT tokens for one audience (admin or
// user sessions carry separate secrets and lifetimes).
type TokenIssuer struct {
	secret  []byte
	expiry  time.Duration
	subject string
}

// Claims is the token payload.
type Claims struct {
	AccountID uint   `json:"account_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// NewTokenIssuer creates a token issuer.
func NewTokenIssuer(secret string, expireHours int, subject string) *TokenIssuer {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &TokenIssuer{
		secret:  []byte(secret),
		expiry:  time.Duration(expireHours) * time.Hour,
		subject: subject,
	}
}

// Issue signs a token for an account.
func (t *TokenIssuer) Issue(accountID uint, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject != t.subject {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
