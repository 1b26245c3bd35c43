package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jhutar/o2family-info-o-cisle/lib/osutil"
	"github.com/jhutar/o2family-info-o-cisle/lib/scrapers/selfcare"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--save-as <dir>]",
	Short: "Discover all lines on the account and fetch tariff info for each.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSaveAs != "" {
			info, err := os.Stat(flagSaveAs)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("path %q is not a valid directory", flagSaveAs)
			}
		}

		client, landing, err := login(cmd.Context())
		if err != nil {
			return err
		}

		matches := selfcare.ScanLines(bytes.NewReader(landing))
		if len(matches) == 0 {
			slog.Warn("no lines found on the landing page")
		}
		return fetchLines(cmd.Context(), client, matches, flagSaveAs, flagForce)
	},
}

// fetchLines pulls tariff info for every discovered line, one request at
// a time, and writes each payload to <save dir>/<phone number>.json when
// a save dir is given. The first failure aborts the whole run.
func fetchLines(ctx context.Context, client *selfcare.Client, matches map[string]string, saveDir string, force bool) error {
	for number, id := range matches {
		slog.InfoContext(ctx, "working on line", "number", number, "id", id)

		payload, err := client.TariffInfo(ctx, id)
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "received tariff info", "number", number, "payload", string(payload))

		if saveDir == "" {
			continue
		}
		path := filepath.Join(saveDir, fmt.Sprintf("%s.json", number))
		err = osutil.WriteResult(path, payload, force)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "dumped tariff info", "path", path)
	}
	return nil
}
