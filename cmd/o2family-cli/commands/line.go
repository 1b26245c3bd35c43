package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jhutar/o2family-info-o-cisle/lib/osutil"

	"github.com/spf13/cobra"
)

var lineId int64

func init() {
	lineCmd.Flags().Int64Var(&lineId, "id", 0, "Internal identifier of the line to fetch.")
	lineCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(lineCmd)
}

var lineCmd = &cobra.Command{
	Use:   "line --id <line id> [--save-as <file>]",
	Short: "Fetch tariff info for a single line identifier, skipping discovery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSaveAs != "" {
			info, err := os.Stat(flagSaveAs)
			if err == nil && info.IsDir() {
				return fmt.Errorf("path %q is a directory, expected a file path", flagSaveAs)
			}
		}

		client, _, err := login(cmd.Context())
		if err != nil {
			return err
		}

		payload, err := client.TariffInfo(cmd.Context(), strconv.FormatInt(lineId, 10))
		if err != nil {
			return err
		}

		if flagSaveAs == "" {
			fmt.Println(string(payload))
			return nil
		}
		err = osutil.WriteResult(flagSaveAs, payload, flagForce)
		if err != nil {
			return err
		}
		slog.InfoContext(cmd.Context(), "dumped tariff info", "path", flagSaveAs)
		return nil
	},
}
