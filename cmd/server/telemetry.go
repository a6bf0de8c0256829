package main

import (
	"context"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// telemetryStack holds the OpenTelemetry providers and the profiler. Every
// member is usable when telemetry is disabled.
type telemetryStack struct {
	traces   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
	business *telemetry.BusinessMetrics
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *telemetryStack {
	t := &telemetryStack{}
	tc := cfg.Telemetry

	var err error
	t.traces, err = telemetry.NewTracerProvider(ctx, telemetry.TraceConfig{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	t.meters, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tc.Enabled && tc.MetricsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ExportInterval:    tc.MetricsInterval,
		ServiceName:       tc.ServiceName,
		Environment:       cfg.App.Env,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	if t.meters.IsEnabled() {
		t.business, err = telemetry.NewBusinessMetrics(t.meters.Meter("storefront/business"), log)
		if err != nil {
			log.Warn("Business metrics unavailable", zap.Error(err))
			t.business = nil
		}
	}

	t.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         tc.ProfilingEnabled,
		ServerAddress:   tc.PyroscopeURL,
		ApplicationName: tc.ServiceName,
		Environment:     cfg.App.Env,
	}, log)
	if err != nil {
		log.Warn("Profiler unavailable", zap.Error(err))
		t.profiler, _ = telemetry.NewProfiler(telemetry.ProfilerConfig{}, log)
	}
	if t.profiler.IsEnabled() {
		t.traces.EnableSpanProfiles()
	}
	return t
}

func (t *telemetryStack) shutdown(log *zap.Logger) {
	ctx := context.Background()
	if err := t.profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := t.traces.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := t.meters.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if t.logs != nil {
		if err := t.logs.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}
}
