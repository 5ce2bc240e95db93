package cli

import (
	"github.com/spf13/cobra"

	"github.com/inboxkit/inboxkit/internal/config"
	"github.com/inboxkit/inboxkit/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a CSV batch of inbound messages",
	Long: `Import reads a CSV file with header name,email,phone,text and submits it to
the backend, which parses rows, matches or creates customers, and scores the
messages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		im := importer.New(backendClient(), config.Get().Backend.Channel)
		res, err := im.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Printf("imported %d message(s)", res.Imported)
		if res.Skipped > 0 {
			cmd.Printf(", skipped %d", res.Skipped)
		}
		cmd.Println()
		for _, e := range res.Errors {
			cmd.Printf("  row error: %s\n", e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
