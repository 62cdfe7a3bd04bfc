// Package litebak wraps the SQLite online backup API behind a handle that is
// released exactly once, no matter how control leaves the calling code.
//
// The package does not implement any copying itself; page migration, locking
// and WAL interaction all belong to the engine (modernc.org/sqlite's
// transpiled library). litebak adds three guarantees on top:
//
//   - a Backup owns exactly one engine backup handle, acquired fully in
//     NewBackup or not at all, and released by Close,
//   - the engine's retryable step results (busy, locked) come back as Status
//     values while every fatal result code comes back as an error, so a
//     caller cannot accidentally spin on a condition that will never clear,
//   - a Backup cannot be duplicated: copying the struct is rejected by
//     `go vet` and a copied-then-closed handle fails its next operation
//     instead of double-freeing the resource.
//
// Thread-safety: a Conn or Backup must be confined to a single goroutine for
// its whole lifetime. The engine's serialized threading mode is not used by
// this layer, and the two connections referenced by a Backup follow the
// engine's one-user-per-connection rule while the backup is live. Both
// connections must outlive the Backup; litebak borrows them and never closes
// them.
//
// Retry policy for busy/locked results is deliberately the caller's: see
// cmd/litebak for a sleep-and-retry loop with bounded backoff.
package litebak
