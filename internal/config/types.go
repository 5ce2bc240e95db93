package config

import (
	"strings"
	"time"
)

type Config struct {
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Portal  PortalConfig  `yaml:"portal" json:"portal"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
}

// BackendConfig locates the conversation backend. The base URL is explicit
// configuration passed to the service and feed collaborators at construction
// time, never derived from process-wide state.
type BackendConfig struct {
	BaseURL  string `yaml:"baseURL" json:"baseURL"`
	Timeout  string `yaml:"timeout" json:"timeout"`   // Go duration, e.g. "15s"
	FeedPath string `yaml:"feedPath" json:"feedPath"` // WebSocket path on the backend
	Channel  string `yaml:"channel" json:"channel"`   // default channel for CSV imports
}

type PortalConfig struct {
	Port int `yaml:"port" json:"port"`
}

type CacheConfig struct {
	CustomerEntries int    `yaml:"customerEntries" json:"customerEntries"`
	TTL             string `yaml:"ttl" json:"ttl"`
}

type WatchConfig struct {
	RefreshSchedule string `yaml:"refreshSchedule" json:"refreshSchedule"` // cron expression
}

// RequestTimeout parses Backend.Timeout, defaulting to 15s.
func (b BackendConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(b.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// WSURL derives the live-feed WebSocket URL from the HTTP base URL:
// https→wss, http→ws; a schemeless value gets ws:// prepended.
func (b BackendConfig) WSURL() string {
	base := strings.TrimRight(b.BaseURL, "/")
	var ws string
	switch {
	case strings.HasPrefix(base, "https://"):
		ws = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		ws = "ws://" + strings.TrimPrefix(base, "http://")
	default:
		ws = "ws://" + strings.TrimPrefix(base, "//")
	}
	return ws + b.FeedPath
}

// CacheTTL parses Cache.TTL, defaulting to 30s.
func (c CacheConfig) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:  "http://localhost:8000",
			Timeout:  "15s",
			FeedPath: "/ws/messages",
			Channel:  "web",
		},
		Portal: PortalConfig{Port: 8090},
		Cache:  CacheConfig{CustomerEntries: 256, TTL: "30s"},
		Watch:  WatchConfig{RefreshSchedule: "@every 30s"},
	}
}
