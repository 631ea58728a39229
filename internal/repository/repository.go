// Package repository is the Postgres persistence layer. Every repository
// takes a PgxIface so tests can substitute a pgxmock pool for a live
// connection pool.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
)

// PgxIface is the subset of pgxpool.Pool the repositories use. Both
// *pgxpool.Pool and pgxmock's pool satisfy it.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const pgUniqueViolation = "23505"

// mapError converts driver-level errors to application sentinels. Missing
// rows become ErrNotFound; unique-index violations become ErrConflict so
// concurrent duplicate writes surface as ordinary conflicts.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.ErrConflict
	}
	return err
}

// recordDBCall emits the per-query metric and log entry
func recordDBCall(operation string, start time.Time, err error) {
	duration := metrics.MeasureDuration(start)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordDBOperation(operation, status, duration)
	logger.LogDBCall(operation, status, duration)
}
