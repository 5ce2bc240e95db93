package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_BACKEND_URL", "https://inbox.example.com")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "backend:\n  baseURL: ${TEST_BACKEND_URL}\n  timeout: 3s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://inbox.example.com" {
		t.Fatalf("baseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.RequestTimeout() != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.Backend.RequestTimeout())
	}
	if cfg.Backend.FeedPath != "/ws/messages" {
		t.Fatalf("feed path default missing: %q", cfg.Backend.FeedPath)
	}
	if cfg.Portal.Port != 8090 || cfg.Watch.RefreshSchedule == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWSURLDerivation(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://inbox.example.com", "wss://inbox.example.com/ws/messages"},
		{"http://localhost:8000", "ws://localhost:8000/ws/messages"},
		{"http://localhost:8000/", "ws://localhost:8000/ws/messages"},
		{"//inbox.example.com", "ws://inbox.example.com/ws/messages"},
	}
	for _, tc := range cases {
		b := BackendConfig{BaseURL: tc.base, FeedPath: "/ws/messages"}
		if got := b.WSURL(); got != tc.want {
			t.Errorf("WSURL(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestRequestTimeoutFallback(t *testing.T) {
	b := BackendConfig{Timeout: "bogus"}
	if b.RequestTimeout() != 15*time.Second {
		t.Fatalf("fallback timeout = %v", b.RequestTimeout())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://10.0.0.5:8000"
	if err := Write(path, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Backend.BaseURL != "http://10.0.0.5:8000" {
		t.Fatalf("round trip lost baseURL: %q", loaded.Backend.BaseURL)
	}
}
