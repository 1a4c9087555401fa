package prediction

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/oomph-ac/locomotion/prediction"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
