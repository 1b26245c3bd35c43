package selfcare

import (
	"github.com/jhutar/o2family-info-o-cisle/lib/restyutil"
	"github.com/jhutar/o2family-info-o-cisle/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/selfcare")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes clients created afterwards dump every
// HTTP exchange to the given output. Meant for debug runs.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

func instrumentClient(client *resty.Client) {
	if restyInstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
		return
	}
	telemetry.InstrumentResty(client, "scrapers/selfcare/http")
}
