package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	cannedTitle string
	cannedText  string
)

var cannedCmd = &cobra.Command{
	Use:   "canned",
	Short: "Manage canned responses",
}

var cannedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the canned-response catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := backendStore().ListCanned(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			cmd.Println("No canned responses.")
			return nil
		}
		for _, c := range items {
			cmd.Printf("%-12s  %s\n", c.ID, c.Title)
			cmd.Printf("              %s\n", preview(c.Text, 100))
		}
		return nil
	},
}

var cannedCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a canned response",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cannedTitle == "" || cannedText == "" {
			return errors.New("--title and --text are required")
		}
		c, err := backendStore().CreateCanned(cmd.Context(), cannedTitle, cannedText)
		if err != nil {
			return err
		}
		cmd.Printf("created %s\n", c.ID)
		return nil
	},
}

func init() {
	cannedCreateCmd.Flags().StringVar(&cannedTitle, "title", "", "template title")
	cannedCreateCmd.Flags().StringVar(&cannedText, "text", "", "template body")
	cannedCmd.AddCommand(cannedListCmd, cannedCreateCmd)
	rootCmd.AddCommand(cannedCmd)
}
