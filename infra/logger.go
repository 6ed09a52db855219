package infra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/memoria-viva/memorial-service/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// LoggerClient wraps a slog logger bridged into OpenTelemetry. In development
// mode, or when no OTLP endpoint is configured, it falls back to stdout.
type LoggerClient struct {
	logger *slog.Logger

	loggerProvider *sdklog.LoggerProvider
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Grafana.OTLPEndpoint == "" || cfg.Environment.Mode == "development" {
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		}
	}

	ctx := context.Background()

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Grafana.ServiceName),
			attribute.String("deployment.environment", cfg.Environment.Mode),
			attribute.String("deployment.group", cfg.Environment.Group),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to build OpenTelemetry resource: %v", err))
	}

	logExporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize OTLP log exporter: %v", err))
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(cfg.Grafana.OTLPEndpoint),
	))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize OTLP trace exporter: %v", err))
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize OTLP metric exporter: %v", err))
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(); err != nil {
		log.Printf("Warning: failed to start runtime instrumentation: %v", err)
	}

	return &LoggerClient{
		logger:         otelslog.NewLogger(cfg.Grafana.ServiceName, otelslog.WithLoggerProvider(loggerProvider)),
		loggerProvider: loggerProvider,
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
	}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		l.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
		return
	}
	l.logger.ErrorContext(ctx, msg)
}

// Shutdown flushes pending telemetry. Safe to call on a stdout-only client.
func (l *LoggerClient) Shutdown(ctx context.Context) error {
	if l.loggerProvider != nil {
		if err := l.loggerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if l.tracerProvider != nil {
		if err := l.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if l.meterProvider != nil {
		if err := l.meterProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
