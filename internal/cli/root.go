// Package cli implements the inboxctl command tree.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/api"
	"github.com/inboxkit/inboxkit/internal/cache"
	"github.com/inboxkit/inboxkit/internal/config"
	"github.com/inboxkit/inboxkit/internal/feed"
	"github.com/inboxkit/inboxkit/internal/thread"
)

const version = "0.1.0"

var (
	cfgFlag string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inboxctl",
	Short: "Agent inbox client for the conversation backend",
	Long: `inboxctl is the terminal client for the agent inbox: it lists customer
conversations, opens live message threads, sends replies (canned or typed),
imports CSV message batches, and runs the public customer portal.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the command tree. Called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&cfgFlag, "config", "c", "", "config file path (default is $INBOXKIT_HOME/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setup() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := config.ResolveConfigPath(cfgFlag)
	cfg, err := config.Load(path)
	if err != nil {
		slog.Debug("config not loaded, using defaults", "path", path, "error", err)
		cfg = config.DefaultConfig()
	}
	if url := os.Getenv("INBOX_BACKEND_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	config.Set(cfg)
	return nil
}

func backendClient() *api.Client {
	cfg := config.Get()
	return api.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout())
}

func backendStore() *cache.Store {
	cfg := config.Get()
	return cache.New(backendClient(), cfg.Cache.CustomerEntries, cfg.Cache.CacheTTL())
}

// liveFeed adapts feed.Subscriber to the thread view model's Feed interface.
type liveFeed struct {
	sub *feed.Subscriber
}

func (l liveFeed) Subscribe(ctx context.Context, handler func(api.Message)) (thread.Subscription, error) {
	return l.sub.Subscribe(ctx, handler)
}

func feedSource() thread.Feed {
	return liveFeed{sub: feed.New(config.Get().Backend.WSURL())}
}
