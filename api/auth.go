package api

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminSubject = "admin"

var errAdminDisabled = errors.New("admin access is not configured")

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret string, ttl time.Duration) tokenIssuer {
	return tokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t tokenIssuer) enabled() bool {
	return len(t.secret) > 0
}

// issue signs an HS256 token for the admin subject.
func (t tokenIssuer) issue() (string, time.Time, error) {
	if !t.enabled() {
		return "", time.Time{}, errAdminDisabled
	}
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return signed, expiresAt, err
}

// verify returns the subject of a valid, unexpired token.
func (t tokenIssuer) verify(raw string) (string, error) {
	if !t.enabled() {
		return "", errAdminDisabled
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject != adminSubject {
		return "", errors.New("unexpected token subject")
	}
	return claims.Subject, nil
}

func passwordMatches(configured, given string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}
