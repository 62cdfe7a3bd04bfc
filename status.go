package litebak

import (
	"fmt"

	sqlite3 "modernc.org/sqlite/lib"
)

// Status is the outcome of a backup step that did not fail fatally.
type Status int32

const (
	// StatusOK means pages were copied and more remain; call Step again.
	StatusOK Status = sqlite3.SQLITE_OK
	// StatusDone means the copy is complete; no further steps are valid.
	StatusDone Status = sqlite3.SQLITE_DONE
	// StatusBusy means the destination is temporarily locked by another
	// connection.
	StatusBusy Status = sqlite3.SQLITE_BUSY
	// StatusLocked means a source table is locked by another connection in
	// the same process.
	StatusLocked Status = sqlite3.SQLITE_LOCKED
)

// Retryable reports whether the caller may usefully retry the step later.
func (s Status) Retryable() bool {
	return s == StatusBusy || s == StatusLocked
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDone:
		return "done"
	case StatusBusy:
		return "busy"
	case StatusLocked:
		return "locked"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}
