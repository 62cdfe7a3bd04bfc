package litebak

import (
	"errors"
	"path/filepath"
	"testing"

	sqlite3 "modernc.org/sqlite/lib"
)

func TestConnExecAndQuery(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "conn.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT); INSERT INTO kv VALUES ('a','1'), ('b','2');`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	n, err := c.QueryInt64(`SELECT count(*) FROM kv`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	pages, err := c.QueryInt64(`PRAGMA page_count`)
	if err != nil {
		t.Fatalf("page_count: %v", err)
	}
	if pages < 1 {
		t.Fatalf("expected at least one page, got %d", pages)
	}
	if c.Handle() == 0 {
		t.Fatalf("expected non-zero raw handle on open connection")
	}
}

func TestConnQueryNoRows(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "conn.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()
	if err := c.Exec(`CREATE TABLE kv (k TEXT);`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := c.QueryInt64(`SELECT k FROM kv`); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestConnExecSyntaxError(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "conn.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()
	err = c.Exec(`NOT VALID SQL`)
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EngineError, got %T: %v", err, err)
	}
	if ee.Msg == "" {
		t.Fatalf("engine error without message")
	}
}

func TestConnCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "conn.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := c.Exec(`SELECT 1`); !errors.Is(err, ErrConnClosed) {
		t.Fatalf("expected ErrConnClosed, got %v", err)
	}
	if _, err := c.QueryInt64(`SELECT 1`); !errors.Is(err, ErrConnClosed) {
		t.Fatalf("expected ErrConnClosed, got %v", err)
	}
	if c.Handle() != 0 {
		t.Fatalf("expected zero raw handle after close")
	}
}

func TestOpenReadOnlyRejectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conn.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Exec(`CREATE TABLE kv (k TEXT);`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ro, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("open read-only: %v", err)
	}
	defer ro.Close()
	err = ro.Exec(`INSERT INTO kv VALUES ('a');`)
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EngineError for write on read-only conn, got %T: %v", err, err)
	}
	if ee.Code&0xff != sqlite3.SQLITE_READONLY {
		t.Fatalf("expected read-only class error, got code %d (%s)", ee.Code, ee.Msg)
	}
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenReadOnly(filepath.Join(dir, "missing.db")); err == nil {
		t.Fatalf("expected error opening missing database read-only")
	}
}
