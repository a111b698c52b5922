// =============================================================================
// PNP Vendor Generator - File Manager Utility
// =============================================================================
//
// This module provides the file operations used when writing the generated
// vendor table:
//   - Directory creation
//   - Atomic overwrite of the output file
//
// WRITE STRATEGY:
//   The new content is written to a uniquely named temporary file in the
//   target directory, synced, and renamed over the target. Readers see either
//   the previous file or the complete new one, and a failed run leaves the
//   previous file untouched.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File permission constants.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFileAtomic replaces the file at path with data.
//
// PARAMETERS:
//   - path: The destination file. Its directory is created if missing.
//   - data: The complete new content.
//
// RETURNS:
//   - An error if any step fails. The temporary file is removed on failure.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmpPath := TempPath(path)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePerm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// TempPath returns a unique sibling path for staging writes to path.
//
// EXAMPLE:
//   path:   "pnp/vendors.go"
//   output: "pnp/.vendors.go.a1b2c3d4-e5f6-7890-abcd-ef1234567890.tmp"
func TempPath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.New().String()))
}
