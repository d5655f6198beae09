package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieIssuer = "campus-portal"

// CookieSigner issues and verifies the signed client id carried in the client cookie.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCookieSigner constructs a CookieSigner using HS256.
func NewCookieSigner(secret string, ttl time.Duration) *CookieSigner {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &CookieSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the cookie lifetime.
func (s *CookieSigner) TTL() time.Duration {
	return s.ttl
}

// Issue signs clientID.
func (s *CookieSigner) Issue(clientID string) (string, error) {
	issuedAt := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    cookieIssuer,
		Subject:   clientID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign client cookie: %w", err)
	}
	return signed, nil
}

// Parse verifies a cookie value and returns the client id it carries.
func (s *CookieSigner) Parse(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(cookieIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("parse client cookie: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("parse client cookie: missing subject")
	}
	return claims.Subject, nil
}
