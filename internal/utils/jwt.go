package utils // package utils provides helpers for bearer tokens and payment signatures

import (
	"errors"
	"fmt"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string that goes into the
// Authorization header of the generated curl command.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrNoUserClaim is returned when a valid token names no user.
var ErrNoUserClaim = errors.New("token carries no user id")

// NewAccessToken builds and signs an HS256 JWT for a user.  The payment
// service reads the user id from the userId claim and falls back to sub,
// so both are set.
func NewAccessToken(secret, userID, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":    userID,
		"userId": userID,
		"role":   role,
		"exp":    exp.Unix(),
		"iat":    now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseUserID validates raw with secret and returns the userId claim, or
// the subject when userId is absent.
func ParseUserID(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC-signed.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return "", errors.New("invalid claims")
	}
	if v := claimString(claims["userId"]); v != "" {
		return v, nil
	}
	if v := claimString(claims["sub"]); v != "" {
		return v, nil
	}
	return "", ErrNoUserClaim
}

// claimString renders string and numeric claims alike; integer ids decode
// from JSON as float64.
func claimString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return fmt.Sprintf("%.0f", c)
	}
	return ""
}
