package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ensureWritableFilesystem refuses to start a backup onto a read-only mount,
// turning the engine's late fatal read-only error into an upfront message.
func ensureWritableFilesystem(dir string) error {
	if dir == "" {
		dir = "."
	}
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return fmt.Errorf("stat destination filesystem %s: %w", dir, err)
	}
	if st.Flags&unix.ST_RDONLY != 0 {
		return fmt.Errorf("destination filesystem %s is mounted read-only", dir)
	}
	return nil
}
