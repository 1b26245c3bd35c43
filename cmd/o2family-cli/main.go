package main

import (
	"context"

	"github.com/jhutar/o2family-info-o-cisle/cmd/o2family-cli/commands"
	"github.com/jhutar/o2family-info-o-cisle/lib/osutil"
	"github.com/jhutar/o2family-info-o-cisle/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()

	// telemetry is optional, the CLI works fine without a collector
	tel, err := telemetry.SetupFromEnv(ctx, "o2family-cli")
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
