// Package catalogdb mirrors the combined catalog into a sqlite index.
package catalogdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"ollama-catalog/internal/catalog"
)

const schema = `create table if not exists models (
	id text primary key,
	name text not null,
	provider_id text not null,
	context integer not null,
	data text not null
)`

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// DB is a catalog.Sink backed by sqlite.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the index at path, ":memory:" is accepted.
func Open(path string) (DB, error) {
	if path != ":memory:" {
		os.MkdirAll(filepath.Dir(path), 0777)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return DB{}, wrapOpenDB(err)
	}

	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return DB{}, wrapOpenDB(err)
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return DB{}, wrapOpenDB(err)
	}

	return DB{db: db}, nil
}

func (d DB) Close() error {
	return d.db.Close()
}

// WriteCatalog replaces every row of the index with records in one transaction.
func (d DB) WriteCatalog(ctx context.Context, records []catalog.Record) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from models")
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "insert or replace into models(id, name, provider_id, context, data) values (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, rec.ID, rec.Name, rec.ProviderID, rec.Limit.Context, string(data))
		if err != nil {
			return fmt.Errorf("insert '%s': %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

func (d DB) query(ctx context.Context, query string, args ...any) ([]catalog.Record, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []catalog.Record{}
	for rows.Next() {
		var data string
		err := rows.Scan(&data)
		if err != nil {
			return nil, err
		}
		rec, err := catalog.Unmarshal([]byte(data))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// List returns every indexed record ordered by id.
func (d DB) List(ctx context.Context) ([]catalog.Record, error) {
	return d.query(ctx, "select data from models order by id")
}

// MinContext returns the records whose context window is at least tokens, largest first.
func (d DB) MinContext(ctx context.Context, tokens int) ([]catalog.Record, error) {
	return d.query(
		ctx,
		"select data from models where context >= ? order by context desc, id",
		tokens,
	)
}
