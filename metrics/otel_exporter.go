package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter              metric.Meter
	attemptsGauge      metric.Int64ObservableGauge
	successRatioGauge  metric.Float64ObservableGauge
	subscriptionsGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"booking-pulse",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Attempt counters, broken down by result
	oe.attemptsGauge, err = oe.meter.Int64ObservableGauge(
		"delivery.attempts.count",
		metric.WithDescription("Number of delivery attempts by result"),
		metric.WithUnit("{attempts}"),
		metric.WithInt64Callback(oe.observeAttempts),
	)
	if err != nil {
		return fmt.Errorf("creating attempts gauge: %w", err)
	}

	// Overall delivery success ratio
	oe.successRatioGauge, err = oe.meter.Float64ObservableGauge(
		"delivery.success.ratio",
		metric.WithDescription("Fraction of delivery attempts accepted by subscribers"),
		metric.WithUnit("1"),
		metric.WithFloat64Callback(oe.observeSuccessRatio),
	)
	if err != nil {
		return fmt.Errorf("creating success ratio gauge: %w", err)
	}

	// Active subscriptions gauge
	oe.subscriptionsGauge, err = oe.meter.Int64ObservableGauge(
		"subscriptions.active",
		metric.WithDescription("Number of subscriptions currently receiving events"),
		metric.WithUnit("{subscriptions}"),
		metric.WithInt64Callback(oe.observeActiveSubscriptions),
	)
	if err != nil {
		return fmt.Errorf("creating subscriptions gauge: %w", err)
	}

	return nil
}

// observeAttempts is a callback that reports attempt counters by result
func (oe *OTelExporter) observeAttempts(ctx context.Context, observer metric.Int64Observer) error {
	totals, err := oe.collector.GetDeliveryTotals(ctx)
	if err != nil {
		return err
	}

	observer.Observe(totals.Deliveries, metric.WithAttributes(
		attribute.String("delivery.result", "delivered"),
	))
	observer.Observe(totals.Failures, metric.WithAttributes(
		attribute.String("delivery.result", "failed"),
	))

	return nil
}

// observeSuccessRatio is a callback that reports the overall success ratio
func (oe *OTelExporter) observeSuccessRatio(ctx context.Context, observer metric.Float64Observer) error {
	totals, err := oe.collector.GetDeliveryTotals(ctx)
	if err != nil {
		return err
	}

	if totals.Attempts > 0 {
		observer.Observe(float64(totals.Deliveries) / float64(totals.Attempts))
	} else {
		observer.Observe(0)
	}

	return nil
}

// observeActiveSubscriptions is a callback that reports the active subscription count
func (oe *OTelExporter) observeActiveSubscriptions(ctx context.Context, observer metric.Int64Observer) error {
	active, err := oe.collector.GetActiveSubscriptions(ctx)
	if err != nil {
		return err
	}

	observer.Observe(active)

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
