// Package ioarchive keeps the run archive in a local SQLite database.
//
// Each analysis run is one row in the runs table; the matrices
// themselves travel as a gob blob. The archive is advisory: callers
// log a failed Save and move on.
package ioarchive

import (
	"context"
	"database/sql"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/vegdata/vegmat/pkg/archive"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

type sqliteArchive struct {
	db *sql.DB
}

// New opens the run archive at path, creating it on first use. The
// path ":memory:" gives an ephemeral archive.
func New(path string) (archive.Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	// One connection keeps ":memory:" archives from splitting into
	// per-connection databases.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err = db.Exec(p); err != nil {
			_ = db.Close()
			return nil, OpenError(path, err)
		}
	}

	res := &sqliteArchive{db: db}
	if err = res.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return res, nil
}

func (a *sqliteArchive) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			dataset    TEXT NOT NULL,
			created_at TEXT NOT NULL,
			n_rows     INTEGER NOT NULL,
			n_cols     INTEGER NOT NULL,
			transform  TEXT NOT NULL DEFAULT '',
			metrics    TEXT NOT NULL DEFAULT '{}',
			payload    BLOB
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return SchemaError(err)
	}
	return nil
}

// Save records a run. Saving the same run ID again replaces the row,
// so re-running an identical analysis does not pile up duplicates.
func (a *sqliteArchive) Save(ctx context.Context, run archive.Run) error {
	enc := gnfmt.GNjson{}
	metrics, err := enc.Encode(run.Metrics)
	if err != nil {
		return EncodeError(run.ID, err)
	}

	var payload []byte
	if run.Payload != nil {
		gob := gnfmt.GNgob{}
		payload, err = gob.Encode(*run.Payload)
		if err != nil {
			return EncodeError(run.ID, err)
		}
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, kind, dataset, created_at, n_rows, n_cols,
			 transform, metrics, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Dataset,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.Rows, run.Cols, run.Transform, string(metrics), payload,
	)
	if err != nil {
		return SaveError(run.ID, err)
	}
	return nil
}

// List returns all runs, newest first. Payloads stay in the database;
// a listed Run carries metadata only.
func (a *sqliteArchive) List(ctx context.Context) ([]archive.Run, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, kind, dataset, created_at, n_rows, n_cols,
		       transform, metrics
		FROM runs
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, ListError(err)
	}
	defer rows.Close()

	var runs []archive.Run
	for rows.Next() {
		var run archive.Run
		var created, metrics string
		err = rows.Scan(
			&run.ID, &run.Kind, &run.Dataset, &created,
			&run.Rows, &run.Cols, &run.Transform, &metrics,
		)
		if err != nil {
			return nil, ListError(err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, ListError(err)
		}
		enc := gnfmt.GNjson{}
		if err = enc.Decode([]byte(metrics), &run.Metrics); err != nil {
			return nil, ListError(err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, ListError(err)
	}
	return runs, nil
}

func (a *sqliteArchive) Close() error {
	return a.db.Close()
}
