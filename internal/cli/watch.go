package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/api"
	"github.com/inboxkit/inboxkit/internal/config"
	"github.com/inboxkit/inboxkit/internal/feed"
	"github.com/inboxkit/inboxkit/internal/poller"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail the live feed and refresh conversation stats on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go config.Watch(ctx, config.ResolveConfigPath(cfgFlag))

		cfg := config.Get()
		client := backendClient()

		sub, err := feed.New(cfg.Backend.WSURL()).Subscribe(ctx, func(m api.Message) {
			cmd.Printf("%s  %s\n", m.CustomerID, fmtMessage(m))
		})
		if err != nil {
			return err
		}
		defer sub.Close()

		refresh := func() {
			items, err := client.ListConversations(ctx, "")
			if err != nil {
				cmd.PrintErrf("refresh failed: %v\n", err)
				return
			}
			printDashboard(cmd, items)
		}
		refresh()

		r, err := poller.New(cfg.Watch.RefreshSchedule, refresh)
		if err != nil {
			return err
		}
		r.Start()
		defer r.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-sub.Done():
			// The feed does not reconnect; surface the transport error and
			// let the operator restart the watch.
			return sub.Err()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
