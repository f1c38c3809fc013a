package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// setValidBase sets the env Load() requires to succeed.
func setValidBase(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "unit-test-secret")
}

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	setValidBase(t)
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	setValidBase(t)

	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// App
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("APP_ENV", "Production")

	// Auth / sessions
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
	t.Setenv("GITHUB_CALLBACK_URL", "https://cars.example/github/callback")
	t.Setenv("AUTH_FAILURE_REDIRECT", "/login-failed")
	t.Setenv("SESSION_TTL", "48h")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_SERVICE_NAME", "car-api-test")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8088" || cfg.ReadTimeout != 2*time.Second || cfg.MaxHeaderBytes != 8192 {
		t.Fatalf("server settings wrong: %+v", cfg)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode not normalized: %q", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("logging settings wrong: %+v", cfg)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath not normalized: %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "db.sqlite" || !cfg.Production {
		t.Fatalf("app settings wrong: %+v", cfg)
	}

	if cfg.Auth.GitHub.ClientID != "gh-id" || cfg.Auth.GitHub.ClientSecret != "gh-secret" {
		t.Fatalf("github settings wrong: %+v", cfg.Auth.GitHub)
	}
	if cfg.Auth.GitHub.CallbackURL != "https://cars.example/github/callback" {
		t.Fatalf("callback url wrong: %q", cfg.Auth.GitHub.CallbackURL)
	}
	if cfg.Auth.FailureRedirect != "/login-failed" {
		t.Fatalf("failure redirect wrong: %q", cfg.Auth.FailureRedirect)
	}
	if cfg.Session.Secret != "unit-test-secret" || cfg.Session.TTL != 48*time.Hour {
		t.Fatalf("session settings wrong: %+v", cfg.Session)
	}

	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("CORS origins wrong: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security settings wrong: %+v", cfg.Security)
	}

	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.ServiceName != "car-api-test" || cfg.OTEL.SampleRatio != 0.25 {
		t.Fatalf("otel settings wrong: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setValidBase(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3500" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("default session TTL = %v", cfg.Session.TTL)
	}
	if cfg.Production {
		t.Fatalf("Production should default to false")
	}
	if cfg.DBPath != "cars.db" {
		t.Fatalf("default DB path = %q", cfg.DBPath)
	}
	if !strings.Contains(cfg.Auth.GitHub.CallbackURL, "/github/callback") {
		t.Fatalf("default callback url = %q", cfg.Auth.GitHub.CallbackURL)
	}
	if cfg.Auth.FailureRedirect != "/" {
		t.Fatalf("default failure redirect = %q", cfg.Auth.FailureRedirect)
	}
	if cfg.APIBasePath != "/" {
		t.Fatalf("default base path = %q", cfg.APIBasePath)
	}
}

// --- validation failures ---

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing session secret", map[string]string{}, "SESSION_SECRET"},
		{"blank session secret", map[string]string{"SESSION_SECRET": "   "}, "SESSION_SECRET"},
		{"bad session ttl", map[string]string{"SESSION_SECRET": "s", "SESSION_TTL": "-1h"}, "SESSION_TTL"},
		{"blank port", map[string]string{"SESSION_SECRET": "s", "PORT": "  "}, "PORT"},
		{"blank db path", map[string]string{"SESSION_SECRET": "s", "DB_PATH": " "}, "DB_PATH"},
		{"blank callback", map[string]string{"SESSION_SECRET": "s", "GITHUB_CALLBACK_URL": " "}, "GITHUB_CALLBACK_URL"},
		{"blank failure redirect", map[string]string{"SESSION_SECRET": "s", "AUTH_FAILURE_REDIRECT": " "}, "AUTH_FAILURE_REDIRECT"},
		{"bad sampler", map[string]string{"SESSION_SECRET": "s", "OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Reset the one var every case depends on, then apply overrides.
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a , ,b,, c ")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV = %#v", got)
	}
	if out := splitCSV(""); len(out) != 0 {
		t.Fatalf("splitCSV(\"\") = %#v", out)
	}
}
