package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Counter creates an Int64Counter, falling back to a no-op instrument when the
// meter rejects the definition so callers never hold a nil counter.
func Counter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil || counter == nil {
		counter, _ = noop.NewMeterProvider().Meter("noop").Int64Counter(name)
	}
	return counter
}
