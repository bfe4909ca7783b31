package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

const (
	sessionCookieName = "sentinel_session"
	minSecretLen      = 32
)

var (
	// ErrNoToken is returned when a request carries neither a bearer token nor a session cookie.
	ErrNoToken = errors.New("no token")
	// ErrInvalidToken is returned for malformed or badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// CreateSessionToken signs subject (an operator username) with secret.
// The token is base64url(subject) + "." + hex(HMAC-SHA256(subject)).
func CreateSessionToken(subject string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(subject))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(subject)) + "." + sig
}

// VerifySessionToken checks the signature and returns the token subject.
func VerifySessionToken(token string, secret []byte) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	payload, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil || len(payload) == 0 {
		return "", ErrInvalidToken
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", ErrInvalidToken
	}
	return string(payload), nil
}

// TokenFromRequest reads the token from "Authorization: Bearer" first,
// then from the session cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", ErrInvalidToken
		}
		return strings.TrimSpace(token), nil
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}

// SessionCookieName is the cookie that carries an operator token.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes zero-pads s to at least 32 bytes for use as an HMAC key.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
