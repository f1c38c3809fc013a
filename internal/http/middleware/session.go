// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file wires the server-side session layer into the request pipeline
// and provides the authorization gate applied to mutating endpoints.
//
//   - Session() verifies the signed session cookie, loads the session from
//     the injected store, and attaches it to the Gin context. Requests with
//     no cookie, a bad signature, or an expired session simply proceed
//     anonymously; read endpoints never require identity.
//   - RequireAuth() aborts with 401 unless the loaded session is
//     authenticated with a non-empty identity. The decision is binary; there
//     are no roles or scopes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/httperr"
)

const (
	// sessionKey is the Gin context key holding the loaded *auth.Session.
	sessionKey = "session"
)

// Session returns middleware that resolves the session cookie against the
// store. The session (when present and valid) is stored in the context for
// handlers and for RequireAuth. The identity login is also exposed under
// "userID" so access logs attribute requests to users.
func Session(store auth.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.SessionCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}
		id, err := auth.VerifySessionID(cookie, secret)
		if err != nil {
			// Tampered or truncated cookie: treat as anonymous.
			c.Next()
			return
		}
		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			c.Next()
			return
		}
		c.Set(sessionKey, sess)
		if sess.Authenticated() {
			c.Set("userID", sess.Identity.Login)
		}
		c.Next()
	}
}

// SessionFrom returns the session attached by Session(), or nil for
// anonymous requests.
func SessionFrom(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

// RequireAuth gates mutating endpoints: the request proceeds only when the
// session carries an identity. The rejection body uses the same envelope as
// the error classifier so clients see one error shape everywhere.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := SessionFrom(c); sess.Authenticated() {
			c.Next()
			return
		}
		rid := c.Writer.Header().Get("X-Request-ID")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"request_id": rid,
			"code":       httperr.CodeFor(http.StatusUnauthorized),
			"error":      httperr.MsgUnauthorized,
		})
	}
}
