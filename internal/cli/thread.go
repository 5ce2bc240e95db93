package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/thread"
)

var threadFollow bool

var threadCmd = &cobra.Command{
	Use:   "thread <customer-id>",
	Short: "Show a conversation thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var source thread.Feed
		if threadFollow {
			source = feedSource()
		}
		vm := thread.New(backendStore(), source)
		defer vm.Dispose()

		if err := vm.Initialize(ctx, args[0]); err != nil {
			return err
		}
		// Drain the load's scroll signal so follow mode only wakes on appends.
		select {
		case <-vm.ScrollSignal():
		default:
		}

		cust := vm.Customer()
		cmd.Printf("%s <%s>", cust.Name, cust.Email)
		if cust.IsVIP {
			cmd.Print("  [VIP]")
		}
		if cust.KYCStatus != "" {
			cmd.Printf("  KYC: %s", cust.KYCStatus)
		}
		if cust.LastLoanStatus != "" {
			cmd.Printf("  Loan: %s", cust.LastLoanStatus)
		}
		cmd.Println()

		msgs := vm.Messages()
		if len(msgs) == 0 {
			cmd.Println("No messages yet.")
		}
		for _, m := range msgs {
			cmd.Println(fmtMessage(m))
		}
		printed := len(msgs)

		if !threadFollow {
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-vm.ScrollSignal():
				msgs := vm.Messages()
				for _, m := range msgs[printed:] {
					cmd.Println(fmtMessage(m))
				}
				printed = len(msgs)
			}
		}
	},
}

func init() {
	threadCmd.Flags().BoolVarP(&threadFollow, "follow", "f", false, "keep the live subscription open and print new messages")
	rootCmd.AddCommand(threadCmd)
}
