package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tbourn/go-car-backend/internal/auth"
)

// cookieByName digs a named cookie out of the recorder.
func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: w.Header()}
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookieAndRedirects(t *testing.T) {
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		begin: func(context.Context) (*auth.Session, string, error) {
			return &auth.Session{ID: "sess-1", State: auth.PendingProvider, OAuthState: "st"},
				"https://provider.example/authorize?state=st", nil
		},
	}, testOptions())

	w := doJSON(r, http.MethodGet, "/login", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://provider.example/authorize?state=st" {
		t.Fatalf("location = %q", loc)
	}

	ck := cookieByName(w, auth.SessionCookie)
	if ck == nil {
		t.Fatalf("session cookie not set")
	}
	if !ck.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
	if ck.Secure {
		t.Fatalf("cookie must not be secure outside production")
	}
	id, err := auth.VerifySessionID(ck.Value, "test-secret")
	if err != nil || id != "sess-1" {
		t.Fatalf("cookie not signed session id: id=%q err=%v", id, err)
	}
	if ck.MaxAge <= 0 {
		t.Fatalf("cookie max-age = %d", ck.MaxAge)
	}
}

func TestLogin_ProductionCookieIsSecure(t *testing.T) {
	opt := testOptions()
	opt.Production = true
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{}, opt)

	w := doJSON(r, http.MethodGet, "/login", nil)
	ck := cookieByName(w, auth.SessionCookie)
	if ck == nil || !ck.Secure {
		t.Fatalf("production cookie must be secure: %+v", ck)
	}
}

func TestLogin_FlowFailureIsServerError(t *testing.T) {
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		begin: func(context.Context) (*auth.Session, string, error) {
			return nil, "", errors.New("store down")
		},
	}, testOptions())

	w := doJSON(r, http.MethodGet, "/login", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCallback_Success(t *testing.T) {
	var gotSession, gotState, gotCode string
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		complete: func(_ context.Context, sessionID, state, code string) (*auth.Session, error) {
			gotSession, gotState, gotCode = sessionID, state, code
			return &auth.Session{
				ID: sessionID, State: auth.Authenticated,
				Identity: &auth.Identity{Login: "octocat"},
			}, nil
		},
	}, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/github/callback?code=the-code&state=the-state", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: auth.SignSessionID("sess-1", "test-secret")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if gotSession != "sess-1" || gotState != "the-state" || gotCode != "the-code" {
		t.Fatalf("flow args: %q %q %q", gotSession, gotState, gotCode)
	}
}

func TestCallback_MissingCookieRedirectsToFallback(t *testing.T) {
	opt := testOptions()
	opt.FailureRedirect = "/login-failed"
	completed := false
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		complete: func(context.Context, string, string, string) (*auth.Session, error) {
			completed = true
			return nil, nil
		},
	}, opt)

	w := doJSON(r, http.MethodGet, "/github/callback?code=c&state=s", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login-failed" {
		t.Fatalf("expected fallback redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if completed {
		t.Fatalf("flow ran without a session cookie")
	}
}

func TestCallback_ProviderErrorParamRedirectsToFallback(t *testing.T) {
	opt := testOptions()
	opt.FailureRedirect = "/login-failed"
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		complete: func(context.Context, string, string, string) (*auth.Session, error) {
			t.Fatalf("flow must not run when the provider reports an error")
			return nil, nil
		},
	}, opt)

	req := httptest.NewRequest(http.MethodGet, "/github/callback?error=access_denied", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: auth.SignSessionID("sess-1", "test-secret")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login-failed" {
		t.Fatalf("expected fallback redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestCallback_FlowErrorRedirectsToFallback(t *testing.T) {
	opt := testOptions()
	opt.FailureRedirect = "/login-failed"
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		complete: func(context.Context, string, string, string) (*auth.Session, error) {
			return nil, auth.ErrStateMismatch
		},
	}, opt)

	req := httptest.NewRequest(http.MethodGet, "/github/callback?code=c&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: auth.SignSessionID("sess-1", "test-secret")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login-failed" {
		t.Fatalf("expected fallback redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	var loggedOut string
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		logout: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: auth.SignSessionID("sess-1", "test-secret")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if loggedOut != "sess-1" {
		t.Fatalf("session not destroyed: %q", loggedOut)
	}
	ck := cookieByName(w, auth.SessionCookie)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", ck)
	}
}

func TestLogout_WithoutCookieStillRedirects(t *testing.T) {
	r := newTestRouter(stubCarSvc{}, stubReviewSvc{}, stubFlow{
		logout: func(context.Context, string) error {
			t.Fatalf("logout must not run without a cookie")
			return nil
		},
	}, testOptions())

	w := doJSON(r, http.MethodGet, "/logout", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
}
