package timebox

import (
	"os"

	"github.com/briankopp/timebox/lockfile"
)

// Write serializes f and persists it to path under the concurrency gate's
// write lock (§4.7). Validation (§3, §4.3, §4.4) happens before any lock is
// acquired or file touched, so an invalid TimeBoxFile never creates or
// disturbs path (§7, §8 property 3).
//
// Per §5's recommended strengthening over the source behavior, the new
// content is written to a sibling temp path and atomically renamed into
// place on success; a write failure after the lock was acquired removes
// the temp file and, if path did not already exist, the empty file the
// lock acquisition created for it.
func (f *TimeBoxFile) Write(path string) error {
	data, err := f.encode()
	if err != nil {
		return err
	}

	gate := f.gate
	if gate == nil {
		gate = lockfile.New()
	}

	preExisted := fileExists(path)

	handle, err := gate.AcquireWrite(path)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	writeErr := os.WriteFile(tmpPath, data, 0o644)
	if writeErr == nil {
		writeErr = os.Rename(tmpPath, path)
	}

	if writeErr != nil {
		os.Remove(tmpPath)
		if !preExisted {
			os.Remove(path)
		}
		_ = handle.Unlock()

		return writeErr
	}

	return handle.Unlock()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
