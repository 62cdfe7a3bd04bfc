package litebak

import (
	"modernc.org/libc"
	sqlite3 "modernc.org/sqlite/lib"
)

// AllRemainingPages tells Step to copy every remaining source page in one
// call. Any negative budget means the same thing; the named constant is for
// call-site readability.
const AllRemainingPages = -1

// MainDatabase is the schema name of a connection's primary database. It is
// the default for both sides of a backup. "temp" and ATTACH aliases are
// passed through to the engine unvalidated.
const MainDatabase = "main"

// noCopy makes `go vet -copylocks` flag any copy of the containing struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Backup owns one engine backup handle for an online copy from a source
// connection to a destination connection. The zero value is unusable; a
// Backup comes only from NewBackup or NewMainBackup and holds a valid handle
// from construction until Close.
//
// A Backup must not be copied and must stay on a single goroutine. The two
// connections are borrowed, never closed, and must outlive the Backup.
type Backup struct {
	noCopy noCopy

	tls    *libc.TLS // the source connection's; valid while the conns live
	handle uintptr
}

// NewBackup binds dstName on dst as the copy target for srcName on src and
// acquires the engine backup handle. Empty names default to MainDatabase.
// On any engine failure no Backup exists, nothing is held, and the returned
// error carries the engine's code and message (read from the destination
// connection, where the engine records init failures).
func NewBackup(dst *Conn, dstName string, src *Conn, srcName string) (*Backup, error) {
	if dst == nil || dst.db == 0 || src == nil || src.db == 0 {
		return nil, ErrConnClosed
	}
	if dstName == "" {
		dstName = MainDatabase
	}
	if srcName == "" {
		srcName = MainDatabase
	}
	zDst, err := libc.CString(dstName)
	if err != nil {
		return nil, err
	}
	defer libc.Xfree(src.tls, zDst)
	zSrc, err := libc.CString(srcName)
	if err != nil {
		return nil, err
	}
	defer libc.Xfree(src.tls, zSrc)

	h := sqlite3.Xsqlite3_backup_init(src.tls, dst.db, zDst, src.db, zSrc)
	if h == 0 {
		return nil, errFromConn(src.tls, dst.db)
	}
	return &Backup{tls: src.tls, handle: h}, nil
}

// NewMainBackup backs up the main database of src into the main database of
// dst.
func NewMainBackup(dst, src *Conn) (*Backup, error) {
	return NewBackup(dst, MainDatabase, src, MainDatabase)
}

// Step copies up to pages source pages. A negative budget copies everything
// remaining. The returned Status is one of StatusOK, StatusDone, StatusBusy
// or StatusLocked; busy and locked are normal results the caller may retry.
// Every other engine code (the I/O error class, out of memory, read-only
// destination) is fatal and comes back as an *EngineError instead — retrying
// those cannot succeed, so they are never returned as a status.
//
// Step may take a write lock on the destination and a read lock on the
// source for the duration of the call. Calling Step after StatusDone is the
// caller's bug; the engine's behavior for it is unspecified.
func (b *Backup) Step(pages int) (Status, error) {
	if b.handle == 0 {
		return 0, ErrClosed
	}
	rc := sqlite3.Xsqlite3_backup_step(b.tls, b.handle, int32(pages))
	switch rc {
	case sqlite3.SQLITE_OK, sqlite3.SQLITE_DONE, sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Status(rc), nil
	}
	return 0, errFromCode(b.tls, rc)
}

// Remaining returns the number of source pages not yet copied, as recorded
// by the most recent Step. Zero before the first step or after Close.
func (b *Backup) Remaining() int {
	if b.handle == 0 {
		return 0
	}
	return int(sqlite3.Xsqlite3_backup_remaining(b.tls, b.handle))
}

// PageCount returns the total source page count at the time of the most
// recent Step. Zero before the first step or after Close.
func (b *Backup) PageCount() int {
	if b.handle == 0 {
		return 0
	}
	return int(sqlite3.Xsqlite3_backup_pagecount(b.tls, b.handle))
}

// Handle returns the raw sqlite3_backup handle for interop. Ownership stays
// with the Backup; the value is invalid after Close.
func (b *Backup) Handle() uintptr { return b.handle }

// Close releases the engine backup handle. It never fails and is safe to
// call more than once. The engine's finish code only repeats the last step
// error, which Step already surfaced, so it is dropped here; release must be
// total.
func (b *Backup) Close() error {
	if b.handle == 0 {
		return nil
	}
	sqlite3.Xsqlite3_backup_finish(b.tls, b.handle)
	b.handle = 0
	b.tls = nil
	return nil
}
