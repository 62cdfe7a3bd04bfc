package litebak

import (
	"errors"
	"fmt"

	"modernc.org/libc"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrClosed     = errors.New("litebak: backup handle closed")
	ErrConnClosed = errors.New("litebak: connection closed")
	ErrNoRows     = errors.New("litebak: no rows")
)

// EngineError is a fatal result code reported by the engine, together with
// its diagnostic message. Step never returns one for busy or locked; those
// are Status values and may be retried.
type EngineError struct {
	Code     int32
	Extended int32
	Msg      string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("sqlite: %s (%d)", e.Msg, e.Code)
}

// errFromConn reads the pending error state off a connection handle.
func errFromConn(tls *libc.TLS, db uintptr) error {
	return &EngineError{
		Code:     sqlite3.Xsqlite3_errcode(tls, db),
		Extended: sqlite3.Xsqlite3_extended_errcode(tls, db),
		Msg:      libc.GoString(sqlite3.Xsqlite3_errmsg(tls, db)),
	}
}

// errFromCode formats a bare result code when no connection context exists,
// e.g. for a failed step where the code is returned rather than recorded.
func errFromCode(tls *libc.TLS, rc int32) error {
	return &EngineError{
		Code:     rc,
		Extended: rc,
		Msg:      libc.GoString(sqlite3.Xsqlite3_errstr(tls, rc)),
	}
}
