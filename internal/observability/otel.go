package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hireai/internal/ai"
	"hireai/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds all custom metrics for the screening pipeline
type Metrics struct {
	// AI operation metrics
	AIRequestCount metric.Int64Counter
	AIErrorCount   metric.Int64Counter
	AITokenUsage   metric.Int64Histogram

	// Screening metrics
	ScreeningsTotal metric.Int64Counter
	ShortlistsTotal metric.Int64Counter
	ClampedScores   metric.Int64Counter
	ScreeningScores metric.Int64Histogram
	JobsCreated     metric.Int64Counter
	EmailsDrafted   metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// Manager manages OpenTelemetry setup
type Manager struct {
	cfg            *config.Config
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
}

// NewManager creates a new observability manager. When observability is
// disabled the manager is inert: middleware passes through and metric
// recording is a no-op.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{cfg: cfg}
	if !cfg.Observability.Enabled {
		return m, nil
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

func (m *Manager) createResource() (*resource.Resource, error) {
	obs := m.cfg.Observability
	instance := obs.ServiceInstance
	if instance == "" {
		instance = obs.ServiceName + "-1"
	}
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(obs.ServiceName),
			semconv.ServiceVersion(obs.ServiceVersion),
			attribute.String("service.instance.id", instance),
		),
	)
}

// initTracing sets up OpenTelemetry tracing
func (m *Manager) initTracing() error {
	obs := m.cfg.Observability

	var exporter trace.SpanExporter
	var err error
	switch {
	case obs.ConsoleOutput:
		opts := []stdouttrace.Option{}
		if obs.Console.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case obs.OTLP.Enabled:
		exporter, err = m.createOTLPTraceExporter()
	default:
		exporter = &noOpSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	sampleRate := obs.SampleRate
	if obs.Tracing.SampleRate > 0 {
		sampleRate = obs.Tracing.SampleRate
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(sampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (m *Manager) initMetrics() error {
	readers, err := m.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	return m.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (m *Manager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	obs := m.cfg.Observability
	var readers []sdkmetric.Reader

	if obs.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.collectionInterval())))
	}

	if obs.OTLP.Enabled {
		reader, err := m.createOTLPMetricsReader()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics reader: %w", err)
		}
		readers = append(readers, reader)
	}

	if obs.Prometheus.Enabled {
		reader, mux, err := SetupPrometheusExporter(obs.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		if reader != nil {
			readers = append(readers, reader)
			if err := StartPrometheusServer(mux, obs.Prometheus.Port); err != nil {
				return nil, fmt.Errorf("failed to start Prometheus server: %w", err)
			}
		}
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// initCustomMetrics creates all custom metrics for the screening pipeline
func (m *Manager) initCustomMetrics() error {
	meter := m.meterProvider.Meter(m.cfg.Observability.ServiceName)
	m.metrics = &Metrics{}
	var err error

	m.metrics.AIRequestCount, err = meter.Int64Counter(
		"hireai_ai_requests_total",
		metric.WithDescription("Total number of AI requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI request count metric: %w", err)
	}

	m.metrics.AIErrorCount, err = meter.Int64Counter(
		"hireai_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI error count metric: %w", err)
	}

	m.metrics.AITokenUsage, err = meter.Int64Histogram(
		"hireai_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	m.metrics.ScreeningsTotal, err = meter.Int64Counter(
		"hireai_screenings_total",
		metric.WithDescription("Total number of resumes screened"),
	)
	if err != nil {
		return fmt.Errorf("failed to create screenings metric: %w", err)
	}

	m.metrics.ShortlistsTotal, err = meter.Int64Counter(
		"hireai_shortlists_total",
		metric.WithDescription("Total number of candidates shortlisted"),
	)
	if err != nil {
		return fmt.Errorf("failed to create shortlists metric: %w", err)
	}

	m.metrics.ClampedScores, err = meter.Int64Counter(
		"hireai_clamped_scores_total",
		metric.WithDescription("Total number of match scores clamped into the valid range"),
	)
	if err != nil {
		return fmt.Errorf("failed to create clamped scores metric: %w", err)
	}

	m.metrics.ScreeningScores, err = meter.Int64Histogram(
		"hireai_screening_scores",
		metric.WithDescription("Distribution of candidate match scores"),
	)
	if err != nil {
		return fmt.Errorf("failed to create screening scores metric: %w", err)
	}

	m.metrics.JobsCreated, err = meter.Int64Counter(
		"hireai_jobs_created_total",
		metric.WithDescription("Total number of job postings created"),
	)
	if err != nil {
		return fmt.Errorf("failed to create jobs created metric: %w", err)
	}

	m.metrics.EmailsDrafted, err = meter.Int64Counter(
		"hireai_emails_drafted_total",
		metric.WithDescription("Total number of outreach emails drafted"),
	)
	if err != nil {
		return fmt.Errorf("failed to create emails drafted metric: %w", err)
	}

	m.metrics.RateLimitHits, err = meter.Int64Counter(
		"hireai_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// RecordScreening records a screening outcome. Implements the screening
// service's metrics recorder.
func (m *Manager) RecordScreening(ctx context.Context, outcome string, score int, shortlisted, clamped bool) {
	if m == nil || m.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.metrics.ScreeningsTotal.Add(ctx, 1, attrs)
	m.metrics.AIRequestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", "screen_resume"),
		attribute.Bool("success", outcome == "success"),
	))

	if outcome != "success" {
		m.metrics.AIErrorCount.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", "screen_resume"),
		))
		return
	}

	m.metrics.ScreeningScores.Record(ctx, int64(score))
	if shortlisted {
		m.metrics.ShortlistsTotal.Add(ctx, 1)
	}
	if clamped {
		m.metrics.ClampedScores.Add(ctx, 1)
	}
}

// RecordTokenUsage records AI token usage for an operation.
func (m *Manager) RecordTokenUsage(ctx context.Context, operation string, usage *ai.TokenUsage) {
	if m == nil || m.metrics == nil || usage == nil {
		return
	}

	for _, tt := range []struct {
		tokenType string
		value     int64
	}{
		{"input", usage.InputTokens},
		{"output", usage.OutputTokens},
		{"total", usage.TotalTokens},
	} {
		m.metrics.AITokenUsage.Record(ctx, tt.value, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("token_type", tt.tokenType),
		))
	}
}

// RecordJobCreated records a job posting creation.
func (m *Manager) RecordJobCreated(ctx context.Context) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.JobsCreated.Add(ctx, 1)
}

// RecordEmailDrafted records an outreach email draft attempt.
func (m *Manager) RecordEmailDrafted(ctx context.Context, success bool) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.EmailsDrafted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	m.metrics.AIRequestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", "draft_email"),
		attribute.Bool("success", success),
	))
	if !success {
		m.metrics.AIErrorCount.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", "draft_email"),
		))
	}
}

// RecordRateLimitHit records a rejected request.
func (m *Manager) RecordRateLimitHit(ctx context.Context, keyType string) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType)))
}

// GetMetrics returns the metrics instance
func (m *Manager) GetMetrics() *Metrics {
	if m == nil || m.metrics == nil {
		return &Metrics{}
	}
	return m.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if m == nil || !m.cfg.Observability.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		m.cfg.Observability.ServiceName,
		otelhttp.WithTracerProvider(m.tracerProvider),
		otelhttp.WithMeterProvider(m.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if m == nil || !m.cfg.Observability.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (m *Manager) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// No-op exporter for when no trace backend is configured
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPTraceExporter creates an OTLP HTTP trace exporter
func (m *Manager) createOTLPTraceExporter() (trace.SpanExporter, error) {
	otlpConfig := m.cfg.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (m *Manager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	otlpConfig := m.cfg.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(m.collectionInterval())), nil
}

func (m *Manager) collectionInterval() time.Duration {
	if interval := m.cfg.Observability.Metrics.CollectionInterval; interval > 0 {
		return interval
	}
	return 15 * time.Second
}
