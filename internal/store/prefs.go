package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// Preference keys. Values are stored as text and parsed on read.
const (
	KeyChecklistIndex  = "ChecklistIndex"
	KeyFirstTime       = "FirstTime"
	KeyChecklistItemID = "ChecklistItemID"
)

var prefDefaults = map[string]string{
	KeyChecklistIndex:  "-1",
	KeyFirstTime:       "true",
	KeyChecklistItemID: "0",
}

// Prefs is the small key-value area for scalar settings. It lives in its own
// SQLite file next to the checklists file.
type Prefs struct {
	db   *sql.DB
	path string
}

// PrefsSnapshot is every preference with defaults applied.
type PrefsSnapshot struct {
	ChecklistIndex  int  `json:"ChecklistIndex"`
	FirstTime       bool `json:"FirstTime"`
	ChecklistItemID int  `json:"ChecklistItemID"`
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func OpenPrefs(ctx context.Context, path string) (*Prefs, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prefs (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, ioErr("migrate", path, err)
	}
	return &Prefs{db: db, path: path}, nil
}

// OpenSQLite opens a single-connection handle with the pragmas used for all
// local SQLite files. Write transactions take the lock up front so a
// read-modify-write cannot interleave with another process.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ioErr("mkdir", filepath.Dir(path), err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path+"?_txlock=immediate")
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		// FULL: the id counter must survive power loss, or ids could repeat.
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, ioErr("open", path, err)
		}
	}
	return db, nil
}

func (p *Prefs) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *Prefs) Path() string { return p.path }

func (p *Prefs) get(ctx context.Context, q rowQueryer, key string) (string, error) {
	var v string
	err := q.QueryRowContext(ctx, `SELECT v FROM prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		d, ok := prefDefaults[key]
		if !ok {
			return "", fmt.Errorf("unknown preference %q", key)
		}
		return d, nil
	}
	if err != nil {
		return "", ioErr("read", p.path, err)
	}
	return v, nil
}

func (p *Prefs) set(ctx context.Context, tx *sql.Tx, key, v string) error {
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO prefs(k, v) VALUES(?, ?)`, key, v)
	} else {
		_, err = p.db.ExecContext(ctx, `INSERT OR REPLACE INTO prefs(k, v) VALUES(?, ?)`, key, v)
	}
	if err != nil {
		return ioErr("write", p.path, err)
	}
	return nil
}

func (p *Prefs) parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, corrupt(p.path, "preference "+key, err)
	}
	return n, nil
}

func (p *Prefs) Int(ctx context.Context, key string) (int, error) {
	v, err := p.get(ctx, p.db, key)
	if err != nil {
		return 0, err
	}
	return p.parseInt(key, v)
}

func (p *Prefs) Bool(ctx context.Context, key string) (bool, error) {
	v, err := p.get(ctx, p.db, key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, corrupt(p.path, "preference "+key, err)
	}
	return b, nil
}

func (p *Prefs) SetInt(ctx context.Context, key string, n int) error {
	return p.set(ctx, nil, key, strconv.Itoa(n))
}

func (p *Prefs) SetBool(ctx context.Context, key string, b bool) error {
	return p.set(ctx, nil, key, strconv.FormatBool(b))
}

// UpdateInt reads key, passes it to fn and stores the result, all in one
// transaction. If fn returns an error nothing is written.
func (p *Prefs) UpdateInt(ctx context.Context, key string, fn func(cur int) (int, error)) error {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return ioErr("begin", p.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	v, err := p.get(ctx, tx, key)
	if err != nil {
		return err
	}
	cur, err := p.parseInt(key, v)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	if err := p.set(ctx, tx, key, strconv.Itoa(next)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return ioErr("commit", p.path, err)
	}
	return nil
}

func (p *Prefs) SelectedIndex(ctx context.Context) (int, error) {
	return p.Int(ctx, KeyChecklistIndex)
}

func (p *Prefs) SetSelectedIndex(ctx context.Context, i int) error {
	return p.SetInt(ctx, KeyChecklistIndex, i)
}

func (p *Prefs) FirstRun(ctx context.Context) (bool, error) {
	return p.Bool(ctx, KeyFirstTime)
}

func (p *Prefs) SetFirstRun(ctx context.Context, first bool) error {
	return p.SetBool(ctx, KeyFirstTime, first)
}

func (p *Prefs) Snapshot(ctx context.Context) (PrefsSnapshot, error) {
	var out PrefsSnapshot
	var err error
	if out.ChecklistIndex, err = p.SelectedIndex(ctx); err != nil {
		return out, err
	}
	if out.FirstTime, err = p.FirstRun(ctx); err != nil {
		return out, err
	}
	if out.ChecklistItemID, err = p.Int(ctx, KeyChecklistItemID); err != nil {
		return out, err
	}
	return out, nil
}
