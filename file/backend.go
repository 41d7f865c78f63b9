// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package file implements the store's File Abstraction: a small,
// uniform interface over file operations with two interchangeable
// backends, a real disk-backed one and a deterministic in-memory one
// for tests, plus a lazily-opened Handle type the store's cache keeps
// one of per resident entry.
package file

import (
	"io"

	"github.com/imag-go/entrystore/storeerr"
)

// Backend is the uniform contract both implementations satisfy.
type Backend interface {
	// GetContents reads the full file at path. A missing file fails
	// with a FileNotFound-kind *storeerr.Error, distinct from other
	// I/O errors, so callers (store.retrieve) can recover by
	// synthesizing a default entry.
	GetContents(path string) (string, error)

	// WriteContents replaces the file at path with content, creating
	// it if missing.
	WriteContents(path string, content string) error

	// CreateDirAll creates path and any missing parents.
	CreateDirAll(path string) error

	// Copy copies src to dst. Fails with EntryAlreadyExists if dst
	// already exists.
	Copy(src, dst string) error

	// Rename moves src to dst. Fails with EntryAlreadyExists if dst
	// already exists.
	Rename(src, dst string) error

	// Remove deletes the file at path.
	Remove(path string) error

	// Exists reports whether path exists, satisfying
	// storeid.Existence.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// Walk recursively visits every entry under root, calling fn with
	// each visited path and whether it is a directory. Errors from fn
	// or from the underlying filesystem abort the walk.
	Walk(root string, fn func(path string, isDir bool) error) error

	// acquire returns a holder for whatever exclusivity mechanism the
	// backend provides for path (an advisory file lock for OSBackend,
	// a no-op for MemBackend), acquired lazily by Handle on first real
	// I/O and released when the Handle is closed.
	acquire(path string) (io.Closer, error)
}

func wrapIOErr(op, path string, err error) error {
	return storeerr.Wrap(storeerr.FileError, op, err)
}
