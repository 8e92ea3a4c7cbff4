package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/bosslevels/internal/reporting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tableName = "key_values"

// SQL stores key value pairs in the key_values table created by the database migrations.
// Queries are written with ? placeholders and rebound for the driver in use.
type SQL struct {
	db    *sqlx.DB
	table string
	group string

	nowFunc func() time.Time

	tracer trace.Tracer
}

// NewPostgres stores values in the key_values table of the given schema
func NewPostgres(db *sqlx.DB, schema string, nowFunc func() time.Time) *SQL {
	return newSQL(db, fmt.Sprintf("%s.%s", pq.QuoteIdentifier(schema), tableName), nowFunc, "postgres")
}

// NewSQLite stores values in the key_values table of an sqlite database
func NewSQLite(db *sqlx.DB, nowFunc func() time.Time) *SQL {
	return newSQL(db, tableName, nowFunc, "sqlite")
}

func newSQL(db *sqlx.DB, table string, nowFunc func() time.Time, system string) *SQL {
	return &SQL{
		db:      db,
		table:   table,
		group:   ConfigGroup,
		nowFunc: nowFunc,
		tracer:  otel.Tracer(fmt.Sprintf("bosslevels/kvstore/%s", system)),
	}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "SQL.Get", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	var value string
	err := s.db.GetContext(
		ctx,
		&value,
		s.db.Rebind(fmt.Sprintf(
			`SELECT config_value FROM %s WHERE config_group = ? AND config_key = ?`,
			s.table,
		)),
		s.group,
		key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err := fmt.Errorf("failed to get value: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"key": key,
		})
		return "", false, err
	}

	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	ctx, span := s.tracer.Start(ctx, "SQL.Set", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	_, err := s.db.ExecContext(
		ctx,
		s.db.Rebind(fmt.Sprintf(
			`INSERT INTO %s
			(config_group, config_key, config_value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (config_group, config_key)
			DO UPDATE SET
				config_value = EXCLUDED.config_value,
				updated_at = EXCLUDED.updated_at`,
			s.table,
		)),
		s.group,
		key,
		value,
		s.nowFunc().UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("failed to upsert value: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"key":   key,
			"value": value,
		})
		return err
	}

	return nil
}
