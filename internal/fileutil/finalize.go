// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// WriteAtomic writes data to outPath through a temporary file in the same
// directory and renames it into place. The result is owner read/write and
// keeps the executable bits of src. With preserveTimestamps the modification
// time of src is carried over. Returns the size of the written file.
func WriteAtomic(src, outPath string, data []byte, preserveTimestamps bool) (size int64, err error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmpFile.Name()

	defer func() {
		if err != nil {
			tmpFile.Close()    //nolint:errcheck,gosec // best-effort cleanup
			os.Remove(tmpName) //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		return 0, fmt.Errorf("writing temporary file: %w", err)
	}

	if err = os.Chmod(tmpName, Permissions(info)); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err = os.Rename(tmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	return finalize(outPath, preserveTimestamps, info.ModTime())
}

// Permissions returns the mode for an output derived from a file with info.
func Permissions(info os.FileInfo) os.FileMode {
	perm := os.FileMode(ownerReadWrite)

	if info.Mode()&executableBits != 0 {
		perm |= executableBits
	}

	return perm
}

// finalize optionally preserves timestamps and returns the output file size.
func finalize(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}
