package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginAttemptsTotal     metric.Int64Counter
	AuthRejectionsTotal    metric.Int64Counter
	TokensIssuedTotal      metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once from the global MeterProvider.
// Call it after the provider is installed.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-favorite-cities")
		var err error
		m := &AppMetrics{}

		m.LoginAttemptsTotal, err = meter.Int64Counter(
			"auth_login_attempts_total",
			metric.WithDescription("Total number of username/password authentication attempts"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_login_attempts_total: %v", err)
		}

		m.AuthRejectionsTotal, err = meter.Int64Counter(
			"auth_rejections_total",
			metric.WithDescription("Authentication attempts rejected, by reason"),
			metric.WithUnit("{rejection}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_rejections_total: %v", err)
		}

		m.TokensIssuedTotal, err = meter.Int64Counter(
			"auth_tokens_issued_total",
			metric.WithDescription("Access tokens minted"),
			metric.WithUnit("{token}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_tokens_issued_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, initializing them against the current global
// provider on first use. Before a provider is installed otel hands out no-op
// instruments, so tests need no setup.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// ObserveQuery records the duration of a query and counts it as an error when
// err is non-nil.
func ObserveQuery(ctx context.Context, operation string, start time.Time, err error) {
	m := Get()
	attrs := metric.WithAttributes(attribute.String("db.operation", operation))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
