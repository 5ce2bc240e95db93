package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

var current atomic.Pointer[Config]

var (
	onReloadMu        sync.Mutex
	onReloadCallbacks []func(*Config)
)

// Get returns the current in-memory config (hot-reloaded when the file changes).
func Get() *Config { return current.Load() }

// Set sets the current in-memory config. Used at startup and by the file watcher.
func Set(c *Config) {
	if c != nil {
		current.Store(c)
	}
}

// RegisterOnReload registers a callback that runs after config is hot-reloaded.
func RegisterOnReload(fn func(*Config)) {
	onReloadMu.Lock()
	defer onReloadMu.Unlock()
	onReloadCallbacks = append(onReloadCallbacks, fn)
}

func notifyReload(cfg *Config) {
	onReloadMu.Lock()
	cb := make([]func(*Config), len(onReloadCallbacks))
	copy(cb, onReloadCallbacks)
	onReloadMu.Unlock()
	for _, fn := range cb {
		fn(cfg)
	}
}

//go:embed config.example.yaml
var exampleConfigBytes []byte

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyLoadDefaults(&cfg)
	return &cfg, nil
}

func applyLoadDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = def.Backend.BaseURL
	}
	if cfg.Backend.FeedPath == "" {
		cfg.Backend.FeedPath = def.Backend.FeedPath
	}
	if cfg.Backend.Channel == "" {
		cfg.Backend.Channel = def.Backend.Channel
	}
	if cfg.Portal.Port <= 0 {
		cfg.Portal.Port = def.Portal.Port
	}
	if cfg.Cache.CustomerEntries <= 0 {
		cfg.Cache.CustomerEntries = def.Cache.CustomerEntries
	}
	if cfg.Watch.RefreshSchedule == "" {
		cfg.Watch.RefreshSchedule = def.Watch.RefreshSchedule
	}
}

func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// ResolveHome returns the inboxkit home directory.
// Priority: INBOXKIT_HOME env > ~/.inboxkit/
func ResolveHome() string {
	if home := os.Getenv("INBOXKIT_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".inboxkit"
	}
	return filepath.Join(userHome, ".inboxkit")
}

// ResolveConfigPath finds the config file.
// Priority: --config flag > INBOXKIT_HOME/config.yaml
func ResolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return filepath.Join(ResolveHome(), "config.yaml")
}

// CreateFromExample writes the embedded config.example.yaml to targetPath.
func CreateFromExample(targetPath string) error {
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(targetPath, exampleConfigBytes, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Write marshals cfg to YAML and writes it to path. Creates parent directory if needed.
func Write(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
