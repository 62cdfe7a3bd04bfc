package litebak

import (
	"errors"
	"unsafe"

	"modernc.org/libc"
	"modernc.org/libc/sys/types"
	sqlite3 "modernc.org/sqlite/lib"
)

// Conn is a single engine connection. It exists so that a Backup has a raw
// sqlite3 handle to bind to; it is not a general-purpose driver. Exec and
// QueryInt64 cover schema setup and pragma inspection, nothing more.
//
// A Conn must be used from one goroutine at a time and must outlive any
// Backup constructed over it.
type Conn struct {
	tls *libc.TLS
	db  uintptr
}

// Open opens (creating if needed) a read-write connection to the database at
// path. URI filenames are accepted.
func Open(path string) (*Conn, error) {
	return openConn(path, sqlite3.SQLITE_OPEN_READWRITE|sqlite3.SQLITE_OPEN_CREATE|sqlite3.SQLITE_OPEN_URI)
}

// OpenReadOnly opens an existing database without write access.
func OpenReadOnly(path string) (*Conn, error) {
	return openConn(path, sqlite3.SQLITE_OPEN_READONLY|sqlite3.SQLITE_OPEN_URI)
}

func openConn(path string, flags int32) (*Conn, error) {
	tls := libc.NewTLS()
	zName, err := libc.CString(path)
	if err != nil {
		tls.Close()
		return nil, err
	}
	defer libc.Xfree(tls, zName)

	ppDb := libc.Xmalloc(tls, types.Size_t(unsafe.Sizeof(uintptr(0))))
	if ppDb == 0 {
		tls.Close()
		return nil, errors.New("litebak: out of memory")
	}
	defer libc.Xfree(tls, ppDb)

	rc := sqlite3.Xsqlite3_open_v2(tls, zName, ppDb, flags, 0)
	db := *(*uintptr)(unsafe.Pointer(ppDb))
	if rc != sqlite3.SQLITE_OK {
		// The engine may hand back a handle even on failure; it still must
		// be closed.
		var openErr error
		if db != 0 {
			openErr = errFromConn(tls, db)
			sqlite3.Xsqlite3_close_v2(tls, db)
		} else {
			openErr = errFromCode(tls, rc)
		}
		tls.Close()
		return nil, openErr
	}
	return &Conn{tls: tls, db: db}, nil
}

// Exec runs one or more SQL statements, discarding any result rows.
func (c *Conn) Exec(sql string) error {
	if c.db == 0 {
		return ErrConnClosed
	}
	zSQL, err := libc.CString(sql)
	if err != nil {
		return err
	}
	defer libc.Xfree(c.tls, zSQL)
	if rc := sqlite3.Xsqlite3_exec(c.tls, c.db, zSQL, 0, 0, 0); rc != sqlite3.SQLITE_OK {
		return errFromConn(c.tls, c.db)
	}
	return nil
}

// QueryInt64 runs a statement expected to yield a single integer, such as a
// PRAGMA or a COUNT. ErrNoRows is returned when the statement yields none.
func (c *Conn) QueryInt64(sql string) (int64, error) {
	if c.db == 0 {
		return 0, ErrConnClosed
	}
	zSQL, err := libc.CString(sql)
	if err != nil {
		return 0, err
	}
	defer libc.Xfree(c.tls, zSQL)

	ppStmt := libc.Xmalloc(c.tls, types.Size_t(unsafe.Sizeof(uintptr(0))))
	if ppStmt == 0 {
		return 0, errors.New("litebak: out of memory")
	}
	defer libc.Xfree(c.tls, ppStmt)

	if rc := sqlite3.Xsqlite3_prepare_v2(c.tls, c.db, zSQL, -1, ppStmt, 0); rc != sqlite3.SQLITE_OK {
		return 0, errFromConn(c.tls, c.db)
	}
	stmt := *(*uintptr)(unsafe.Pointer(ppStmt))
	defer sqlite3.Xsqlite3_finalize(c.tls, stmt)

	switch rc := sqlite3.Xsqlite3_step(c.tls, stmt); rc {
	case sqlite3.SQLITE_ROW:
		return int64(sqlite3.Xsqlite3_column_int64(c.tls, stmt, 0)), nil
	case sqlite3.SQLITE_DONE:
		return 0, ErrNoRows
	default:
		return 0, errFromConn(c.tls, c.db)
	}
}

// Handle returns the raw sqlite3 connection handle. It stays owned by the
// Conn and is invalid after Close.
func (c *Conn) Handle() uintptr { return c.db }

// Close releases the engine connection. Safe to call more than once.
func (c *Conn) Close() error {
	if c.db == 0 {
		return nil
	}
	var err error
	if rc := sqlite3.Xsqlite3_close_v2(c.tls, c.db); rc != sqlite3.SQLITE_OK {
		err = errFromCode(c.tls, rc)
	}
	c.db = 0
	c.tls.Close()
	c.tls = nil
	return err
}
