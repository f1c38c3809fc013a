package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// SessionCookie is the name of the cookie carrying the signed session ID.
const SessionCookie = "session_id"

// ErrBadCookie is returned when a cookie value is malformed or its
// signature does not verify.
var ErrBadCookie = errors.New("invalid session cookie")

// SignSessionID produces the cookie value "<id>.<base64url(hmac-sha256)>".
// Signing keeps a tampered or guessed cookie from addressing someone
// else's server-side session.
func SignSessionID(id, secret string) string {
	return id + "." + sign(id, secret)
}

// VerifySessionID checks the signature and returns the embedded session ID.
func VerifySessionID(value, secret string) (string, error) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", ErrBadCookie
	}
	id, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(id, secret))) {
		return "", ErrBadCookie
	}
	return id, nil
}

func sign(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
