// Package sqlstore implements the app repositories on bun, against either
// Postgres or an embedded SQLite file.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite" // driver: sqlite
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store is a bun-backed implementation of every app repository.
type Store struct {
	db *bun.DB
}

// Open connects to the database and pings it.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var db *bun.DB
	switch driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// one writer avoids SQLITE_BUSY between pooled connections
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates missing tables and indexes. It never alters existing ones.
func (s *Store) EnsureSchema(ctx context.Context) error {
	models := []interface{}{
		(*classModel)(nil),
		(*enrollmentModel)(nil),
		(*gradeModel)(nil),
		(*quizModel)(nil),
		(*attemptModel)(nil),
		(*budgetModel)(nil),
		(*snapshotModel)(nil),
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range models {
			if _, err := tx.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table for %T: %w", m, err)
			}
		}
		indexes := []struct {
			model   interface{}
			name    string
			columns []string
			unique  bool
		}{
			{(*enrollmentModel)(nil), "enrollments_class_idx", []string{"class_id"}, false},
			{(*gradeModel)(nil), "grades_enrollment_idx", []string{"enrollment_id"}, false},
			{(*attemptModel)(nil), "quiz_attempts_number_uidx", []string{"quiz_id", "enrollment_id", "attempt_number"}, true},
			{(*budgetModel)(nil), "budget_entries_enrollment_idx", []string{"enrollment_id"}, false},
			{(*snapshotModel)(nil), "wealth_snapshots_enrollment_date_idx", []string{"enrollment_id", "record_date"}, false},
		}
		for _, idx := range indexes {
			q := tx.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists()
			if idx.unique {
				q = q.Unique()
			}
			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("create index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
