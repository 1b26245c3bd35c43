package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jhutar/o2family-info-o-cisle/lib/restyutil"
	"github.com/jhutar/o2family-info-o-cisle/lib/scrapers/selfcare"
	"github.com/jhutar/o2family-info-o-cisle/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	flagUsername string
	flagPassword string
	flagSaveAs   string
	flagForce    bool
	flagVerbose  bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:           "o2family-cli",
	Short:         "o2family-cli fetches tariff and usage info from the O2 Family self-care portal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelInfo
		}
		if flagDebug {
			level = slog.LevelDebug
		}
		telemetry.InitSlog(level)

		if flagDebug {
			selfcare.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(
				filepath.Join(os.TempDir(), "o2family-resty"),
			))
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagUsername, "username", "", "Login name for the O2 Family self-care portal.")
	pf.StringVar(&flagPassword, "password", "", "Password for the O2 Family self-care portal.")
	pf.StringVar(&flagSaveAs, "save-as", "", "Where to write fetched tariff data.")
	pf.BoolVar(&flagForce, "force", false, "Overwrite the output file if it already exists.")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Show verbose output.")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "Show debug output and dump HTTP exchanges.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
