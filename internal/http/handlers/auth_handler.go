// Authentication HTTP handlers.
//
// These endpoints drive the GitHub OAuth handshake via the auth.Flow state
// machine. The handlers own only the transport side: cookies and redirects.
//   - GET /login            start the handshake, redirect to GitHub
//   - GET /github/callback  finish it, establish the identity, redirect to /
//   - GET /logout           destroy the session, redirect to /
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/http/middleware"
)

// Login godoc
// @ID          login
// @Summary     Start the GitHub login flow
// @Description Issues a session cookie and redirects to GitHub's authorize
// @Description endpoint.
// @Tags        Auth
// @Success     302  {string}  string "Redirect to provider"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /login [get]
func (h *Handlers) Login(c *gin.Context) {
	sess, authURL, err := h.flow.Begin(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setSessionCookie(c, sess.ID)
	c.Redirect(http.StatusFound, authURL)
}

// Callback godoc
// @ID          githubCallback
// @Summary     GitHub OAuth callback
// @Description Exchanges the authorization code, stores the GitHub profile
// @Description in the session, and redirects to the application root. Any
// @Description failure redirects to the configured fallback without
// @Description establishing an identity.
// @Tags        Auth
// @Param       code   query  string  false "Authorization code"
// @Param       state  query  string  false "CSRF state"
// @Success     302  {string}  string "Redirect to / on success"
// @Router      /github/callback [get]
func (h *Handlers) Callback(c *gin.Context) {
	sessionID, err := h.sessionIDFromCookie(c)
	if err != nil {
		h.authFailure(c, err)
		return
	}
	// Providers report user denial and configuration problems via ?error=.
	if reason := c.Query("error"); reason != "" {
		h.authFailure(c, auth.ErrStateMismatch)
		return
	}

	sess, err := h.flow.Complete(c.Request.Context(), sessionID, c.Query("state"), c.Query("code"))
	if err != nil {
		h.authFailure(c, err)
		return
	}

	middleware.LoggerFrom(c).Info().
		Str("login", sess.Identity.Login).
		Msg("user authenticated")
	c.Redirect(http.StatusFound, "/")
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Destroys the server-side session and clears the cookie.
// @Description The old session token is unusable afterwards.
// @Tags        Auth
// @Success     302  {string}  string "Redirect to /"
// @Router      /logout [get]
func (h *Handlers) Logout(c *gin.Context) {
	if sessionID, err := h.sessionIDFromCookie(c); err == nil {
		if err := h.flow.Logout(c.Request.Context(), sessionID); err != nil {
			h.fail(c, err)
			return
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// authFailure logs a failed handshake and redirects to the configured
// fallback. No identity is established and the session stays unusable for
// writes.
func (h *Handlers) authFailure(c *gin.Context, err error) {
	middleware.LoggerFrom(c).Warn().Err(err).Msg("oauth callback failed")
	c.Redirect(http.StatusFound, h.failureRedirect)
}

// sessionIDFromCookie verifies the signed cookie and extracts the session ID.
func (h *Handlers) sessionIDFromCookie(c *gin.Context) (string, error) {
	cookie, err := c.Cookie(auth.SessionCookie)
	if err != nil {
		return "", err
	}
	return auth.VerifySessionID(cookie, h.sessionSecret)
}

// setSessionCookie installs the signed session cookie: HTTP-only, SameSite
// Lax, max-age bound to the session TTL, Secure in production.
func (h *Handlers) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, auth.SignSessionID(sessionID, h.sessionSecret),
		int(h.sessionTTL.Seconds()), "/", "", h.production, true)
}

// clearSessionCookie expires the cookie client-side.
func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.production, true)
}
