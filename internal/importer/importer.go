// Package importer submits CSV batches of inbound messages to the backend.
// Only the header is validated locally; row parsing, customer matching, and
// scoring are backend concerns.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/inboxkit/inboxkit/internal/api"
)

// RequiredColumns is the header contract for import batches.
var RequiredColumns = []string{"name", "email", "phone", "text"}

type Importer struct {
	Client  *api.Client
	Channel string
}

func New(client *api.Client, channel string) *Importer {
	if channel == "" {
		channel = api.ChannelWeb
	}
	return &Importer{Client: client, Channel: channel}
}

// ImportFile reads a local CSV file, checks its header, and submits the raw
// text to the backend.
func (im *Importer) ImportFile(ctx context.Context, path string) (*api.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv file: %w", err)
	}
	return im.Import(ctx, string(data))
}

// Import validates the header of csvText and submits it.
func (im *Importer) Import(ctx context.Context, csvText string) (*api.ImportResult, error) {
	if err := ValidateHeader(csvText); err != nil {
		return nil, err
	}
	return im.Client.ImportCSV(ctx, csvText, im.Channel)
}

// ValidateHeader checks that the first CSV record contains every required
// column (order-insensitive, case-insensitive).
func ValidateHeader(csvText string) error {
	r := csv.NewReader(strings.NewReader(csvText))
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("csv header missing columns: %s (required: %s)",
			strings.Join(missing, ","), strings.Join(RequiredColumns, ","))
	}
	return nil
}
