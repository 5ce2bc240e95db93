package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/api"
)

var (
	sendText   string
	sendCanned string
)

var sendCmd = &cobra.Command{
	Use:   "send <customer-id>",
	Short: "Send an outbound agent reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := backendStore()
		text := sendText

		if sendCanned != "" {
			catalog, err := store.ListCanned(cmd.Context())
			if err != nil {
				return err
			}
			found := false
			for _, c := range catalog {
				if c.ID == sendCanned {
					text = c.Text
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("canned response %q not found", sendCanned)
			}
		}

		if strings.TrimSpace(text) == "" {
			return errors.New("message text is empty (use --text or --canned)")
		}

		msg, err := store.SendMessage(cmd.Context(), api.SendMessageRequest{
			CustomerID: args[0],
			Text:       text,
			Channel:    api.ChannelAgent,
			Direction:  api.DirectionOutbound,
		})
		if err != nil {
			return err
		}
		cmd.Printf("sent %s\n", msg.ID)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendText, "text", "t", "", "message text")
	sendCmd.Flags().StringVar(&sendCanned, "canned", "", "canned response id to send")
	sendCmd.MarkFlagsMutuallyExclusive("text", "canned")
	rootCmd.AddCommand(sendCmd)
}
