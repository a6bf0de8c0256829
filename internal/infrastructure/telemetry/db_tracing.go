package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in db.statement; dev only
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // default "postgresql"
}

// DBTracingPlugin registers otelgorm and annotates its spans with row
// counts, errors and slow query events.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs otelgorm and the span annotation callbacks on db.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	// GORM runs callbacks sharing an anchor in registration order; ours must
	// see the span before otelgorm ends it.
	if err := registerAround(db, "otel_slow_query", p.after); err != nil {
		return err
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func (p *DBTracingPlugin) after(db *gorm.DB, elapsed time.Duration) {
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

type queryStartKey struct{ name string }

// registerAround stamps the start time before every GORM operation and calls
// after with the elapsed time once the operation has run.
func registerAround(db *gorm.DB, name string, after func(db *gorm.DB, elapsed time.Duration)) error {
	key := queryStartKey{name}
	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, key, time.Now())
		}
	}
	done := func(db *gorm.DB) {
		if db.Statement.Context == nil {
			return
		}
		start, ok := db.Statement.Context.Value(key).(time.Time)
		if !ok {
			return
		}
		after(db, time.Since(start))
	}

	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register(name+":before_create", before),
		cb.Query().Before("gorm:query").Register(name+":before_query", before),
		cb.Update().Before("gorm:update").Register(name+":before_update", before),
		cb.Delete().Before("gorm:delete").Register(name+":before_delete", before),
		cb.Row().Before("gorm:row").Register(name+":before_row", before),
		cb.Raw().Before("gorm:raw").Register(name+":before_raw", before),
		cb.Create().After("gorm:create").Register(name+":after_create", done),
		cb.Query().After("gorm:query").Register(name+":after_query", done),
		cb.Update().After("gorm:update").Register(name+":after_update", done),
		cb.Delete().After("gorm:delete").Register(name+":after_delete", done),
		cb.Row().After("gorm:row").Register(name+":after_row", done),
		cb.Raw().After("gorm:raw").Register(name+":after_raw", done),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
