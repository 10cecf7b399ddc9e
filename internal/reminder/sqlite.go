package reminder

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"

	"checklists-cli/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRegistry is a Registry persisted in a local SQLite file. It stands in
// for the operating system's notification scheduler: entries wait until Fire
// delivers them.
type SQLiteRegistry struct {
	db   *sql.DB
	path string
}

func OpenSQLiteRegistry(ctx context.Context, path string) (*SQLiteRegistry, error) {
	db, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply reminders schema: %w", err)
	}
	return &SQLiteRegistry{db: db, path: path}, nil
}

func (r *SQLiteRegistry) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRegistry) Path() string { return r.path }

func (r *SQLiteRegistry) Register(ctx context.Context, itemID int, fireAt time.Time, message string) (Handle, error) {
	h := Handle(uuid.NewString())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders(handle, item_id, fire_at, fire_ms, message) VALUES(?, ?, ?, ?, ?)`,
		string(h), itemID, fireAt.Format(time.RFC3339Nano), fireAt.UnixMilli(), message,
	)
	if err != nil {
		return "", fmt.Errorf("insert reminder: %w", err)
	}
	return h, nil
}

func (r *SQLiteRegistry) Cancel(ctx context.Context, h Handle) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE handle = ?`, string(h))
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if n == 0 {
		return ErrUnknownHandle
	}
	return nil
}

// List returns pending entries ordered by fire time.
func (r *SQLiteRegistry) List(ctx context.Context) ([]Entry, error) {
	return r.query(ctx, r.db, `SELECT handle, item_id, fire_at, message FROM reminders ORDER BY fire_ms, rowid`)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *SQLiteRegistry) query(ctx context.Context, q queryer, query string, args ...any) ([]Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			h      string
			fireAt string
		)
		if err := rows.Scan(&h, &e.ItemID, &fireAt, &e.Message); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, fireAt)
		if err != nil {
			return nil, fmt.Errorf("reminder %s: bad fire_at %q: %w", h, fireAt, err)
		}
		e.Handle = Handle(h)
		e.FireAt = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return out, nil
}

// Fire delivers every entry due at or before now: the entries are removed
// from the registry and returned in fire order.
func (r *SQLiteRegistry) Fire(ctx context.Context, now time.Time) ([]Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin fire: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	candidates, err := r.query(ctx, tx,
		`SELECT handle, item_id, fire_at, message FROM reminders WHERE fire_ms <= ? ORDER BY fire_ms, rowid`,
		now.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}

	due := []Entry{}
	for _, e := range candidates {
		// fire_ms is truncated; compare the exact instant.
		if e.FireAt.After(now) {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE handle = ?`, string(e.Handle)); err != nil {
			return nil, fmt.Errorf("delete fired reminder: %w", err)
		}
		due = append(due, e)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit fire: %w", err)
	}
	return due, nil
}
