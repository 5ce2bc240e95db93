package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/config"
	"github.com/inboxkit/inboxkit/internal/portal"
)

var portalPort int

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Run the public customer portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go config.Watch(ctx, config.ResolveConfigPath(cfgFlag))

		port := portalPort
		if port <= 0 {
			port = config.Get().Portal.Port
		}
		srv := portal.NewServer(port, backendClient())
		return srv.Start(ctx)
	},
}

func init() {
	portalCmd.Flags().IntVarP(&portalPort, "port", "p", 0, "listen port (default from config)")
	rootCmd.AddCommand(portalCmd)
}
