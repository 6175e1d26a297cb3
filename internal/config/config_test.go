package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOVSCHEME_BACKEND_URL", "")
	Load()

	if Cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("BackendURL = %q, want default", Cfg.BackendURL)
	}
	if Cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %s, want 0 (no client timeout)", Cfg.RequestTimeout)
	}
	if Cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", Cfg.Port)
	}
	if !Cfg.GzipEnabled {
		t.Error("GzipEnabled should default to true")
	}
	if Cfg.RateLimitRPS != 5 || Cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit = %d/%d, want 5/10", Cfg.RateLimitRPS, Cfg.RateLimitBurst)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOVSCHEME_BACKEND_URL", "http://schemes.internal:9000/")
	t.Setenv("GOVSCHEME_REQUEST_TIMEOUT", "15s")
	t.Setenv("GOVSCHEME_GZIP_ENABLED", "false")
	t.Setenv("GOVSCHEME_SHARE_URL", "https://govscheme.example")
	Load()

	if Cfg.BackendURL != "http://schemes.internal:9000" {
		t.Errorf("BackendURL = %q, trailing slash should be trimmed", Cfg.BackendURL)
	}
	if Cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %s, want 15s", Cfg.RequestTimeout)
	}
	if Cfg.GzipEnabled {
		t.Error("GzipEnabled should be false")
	}
	if Cfg.ShareURL != "https://govscheme.example" {
		t.Errorf("ShareURL = %q", Cfg.ShareURL)
	}
}

func TestTimeoutLabel(t *testing.T) {
	if got := timeoutLabel(0); got != "(transport default)" {
		t.Errorf("timeoutLabel(0) = %q", got)
	}
	if got := timeoutLabel(3 * time.Second); got != "3s" {
		t.Errorf("timeoutLabel(3s) = %q", got)
	}
}
