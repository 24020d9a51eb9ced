package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Role values carried in the token's "role" claim. Users and admins are
// separate identity spaces; only user sessions are subject to the
// single-active-session rule.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// SessionToken represents a signed HS256 JWT along with its expiry. The
// Token field contains the serialized JWT string sent to the client in the
// Authorization header.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// SessionClaims are the application claims extracted from a parsed session
// token.
type SessionClaims struct {
	UserID uint64
	Email  string
	Role   string
}

// ErrInvalidToken is returned when a token fails signature, expiry or claim
// checks.
var ErrInvalidToken = errors.New("invalid token")

// NewSessionToken builds and signs an HS256 JWT carrying the user id, email
// and role. TTL is expressed in hours; the caller clamps it to the 1–24 hour
// window. The JWT includes standard claims: subject (sub), expiration (exp)
// and issued at (iat).
func NewSessionToken(secret string, userID uint64, email, role string, ttlHours int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a session token and
// extracts its claims. Cryptographic validity alone does not make a user
// token usable: callers must additionally check the session registry.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	out := SessionClaims{}
	// Numeric JWT values decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	out.UserID = uint64(sub)
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	return out, nil
}
