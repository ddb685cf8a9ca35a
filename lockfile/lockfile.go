// Package lockfile implements the cooperative reader/writer concurrency gate
// described in spec.md §4.7: an advisory OS file lock (flock(2), shared for
// readers and exclusive for writers) combined with a `<path>.lock` sentinel
// file that gives writers priority over new readers.
//
// Grounded on original_source/timebox/timebox.py's `_get_fcntl_lock`: a
// reader waits only while the sentinel exists, then takes LOCK_SH; a writer
// claims the sentinel first (so no new reader starts once a write is
// pending), then waits for LOCK_EX. Both poll at a fixed interval up to a
// configurable deadline, matching the source's count/sleep_seconds loop.
package lockfile

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/briankopp/timebox/errs"
	"github.com/briankopp/timebox/internal/options"
)

// Default deadlines and poll interval, matching the source's
// _MAX_READ_BLOCK_WAIT_SECONDS / _MAX_WRITE_BLOCK_WAIT_SECONDS / 0.1s cadence.
const (
	DefaultReadDeadline  = 30 * time.Second
	DefaultWriteDeadline = 60 * time.Second
	pollInterval         = 100 * time.Millisecond
)

// Gate configures and performs file-lock acquisition for TimeBox files.
type Gate struct {
	readDeadline  time.Duration
	writeDeadline time.Duration
}

// New builds a Gate with the default deadlines, adjusted by opts.
func New(opts ...options.Option[*Gate]) *Gate {
	g := &Gate{
		readDeadline:  DefaultReadDeadline,
		writeDeadline: DefaultWriteDeadline,
	}

	// Apply only fails if an option's apply func returns an error; the
	// options below never do.
	_ = options.Apply(g, opts...)

	return g
}

// WithReadDeadline overrides how long AcquireRead waits before giving up.
func WithReadDeadline(d time.Duration) options.Option[*Gate] {
	return options.NoError(func(g *Gate) { g.readDeadline = d })
}

// WithWriteDeadline overrides how long AcquireWrite waits before giving up.
func WithWriteDeadline(d time.Duration) options.Option[*Gate] {
	return options.NoError(func(g *Gate) { g.writeDeadline = d })
}

// Handle is an open, locked file. Callers must call Unlock when done.
type Handle struct {
	File *os.File

	blockFile     string
	ownsBlockFile bool
}

// Unlock releases the flock, closes the file, and (for a writer handle that
// created the sentinel) removes the `<path>.lock` file.
func (h *Handle) Unlock() error {
	unlockErr := unix.Flock(int(h.File.Fd()), unix.LOCK_UN)
	closeErr := h.File.Close()

	var removeErr error
	if h.ownsBlockFile {
		if err := os.Remove(h.blockFile); err != nil && !os.IsNotExist(err) {
			removeErr = err
		}
	}

	switch {
	case unlockErr != nil:
		return unlockErr
	case closeErr != nil:
		return closeErr
	default:
		return removeErr
	}
}

func blockFileName(path string) string {
	return path + ".lock"
}

// AcquireRead opens path and blocks until a shared lock is granted, waiting
// out any pending writer (signaled by the sentinel file) first. It returns
// errs.ErrCouldNotAcquireLock if g's read deadline elapses first.
func (g *Gate) AcquireRead(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	block := blockFileName(path)
	deadline := time.Now().Add(g.readDeadline)

	for {
		if _, statErr := os.Stat(block); os.IsNotExist(statErr) {
			if flockErr := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); flockErr == nil {
				return &Handle{File: f, blockFile: block}, nil
			}
		}

		if time.Now().After(deadline) {
			f.Close()
			return nil, fmt.Errorf("read lock on %s: %w", path, errs.ErrCouldNotAcquireLock)
		}

		time.Sleep(pollInterval)
	}
}

// AcquireWrite opens (creating if necessary) path and blocks until an
// exclusive lock is granted. It first claims the `<path>.lock` sentinel so
// no new reader starts while it waits, then polls for the flock itself. It
// returns errs.ErrCouldNotAcquireLock if g's write deadline elapses first,
// cleaning up a sentinel file it created along the way.
func (g *Gate) AcquireWrite(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	block := blockFileName(path)
	deadline := time.Now().Add(g.writeDeadline)
	ownsBlock := false

	for {
		if !ownsBlock {
			bf, createErr := os.OpenFile(block, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
			if createErr == nil {
				bf.Close()
				ownsBlock = true
			}
		}

		if ownsBlock {
			if flockErr := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); flockErr == nil {
				return &Handle{File: f, blockFile: block, ownsBlockFile: true}, nil
			}
		}

		if time.Now().After(deadline) {
			f.Close()
			if ownsBlock {
				os.Remove(block)
			}

			return nil, fmt.Errorf("write lock on %s: %w", path, errs.ErrCouldNotAcquireLock)
		}

		time.Sleep(pollInterval)
	}
}
