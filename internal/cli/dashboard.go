package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/api"
)

var dashboardQuery string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "List conversations with urgency stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := backendClient().ListConversations(cmd.Context(), dashboardQuery)
		if err != nil {
			return err
		}
		printDashboard(cmd, items)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardQuery, "query", "q", "", "filter conversations by free-text query")
	rootCmd.AddCommand(dashboardCmd)
}

// Urgency buckets mirror the dashboard's triage bands.
const (
	urgencyHigh   = 70
	urgencyMedium = 40
)

func printDashboard(cmd *cobra.Command, items []api.ConversationSummary) {
	var high, medium, low int
	for _, it := range items {
		switch {
		case it.MaxUrgency >= urgencyHigh:
			high++
		case it.MaxUrgency >= urgencyMedium:
			medium++
		default:
			low++
		}
	}
	cmd.Printf("Conversations: %d  (high: %d, medium: %d, low: %d)\n\n", len(items), high, medium, low)

	if len(items) == 0 {
		cmd.Println("No conversations yet.")
		return
	}
	for _, it := range items {
		name := "Unknown"
		vip := ""
		if it.Customer != nil {
			name = it.Customer.Name
			if it.Customer.IsVIP {
				vip = " [VIP]"
			}
		}
		topics := ""
		if len(it.Topics) > 0 {
			topics = "  #" + strings.Join(it.Topics, " #")
		}
		cmd.Printf("%-14s  u%-3d  %s%s%s\n", it.CustomerID, it.MaxUrgency, name, vip, topics)
		cmd.Printf("                %s\n", preview(it.LastMessage, 100))
	}
}

func preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func fmtMessage(m api.Message) string {
	arrow := "→" // outbound
	if m.Direction == api.DirectionInbound {
		arrow = "←"
	}
	extra := ""
	if m.Topic != "" {
		extra = "  #" + m.Topic
	}
	if m.UrgencyScore > 0 {
		extra += fmt.Sprintf("  u%d", m.UrgencyScore)
	}
	return fmt.Sprintf("%s [%s] %s%s", arrow, m.Channel, m.Text, extra)
}
