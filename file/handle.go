// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package file

import (
	"io"
	"sync"

	"github.com/imag-go/entrystore/storeerr"
)

// Handle is a lazily-opened reference to a single path on a Backend:
// it is constructed eagerly but defers touching the backend (and,
// for OSBackend, acquiring its advisory lock) until the first real
// GetContents/WriteContents call. The store's cache keeps exactly one
// Handle per resident StoreId for as long as the entry stays in the
// cache.
type Handle struct {
	backend Backend
	path    string

	mu     sync.Mutex
	opened bool
	lock   io.Closer
}

// NewHandle returns a Handle over path on backend. No backend I/O
// happens yet.
func NewHandle(backend Backend, path string) *Handle {
	return &Handle{backend: backend, path: path}
}

// Path returns the filesystem path this handle addresses.
func (h *Handle) Path() string { return h.path }

func (h *Handle) ensureOpen() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.opened {
		return nil
	}
	lock, err := h.backend.acquire(h.path)
	if err != nil {
		return err
	}
	h.lock = lock
	h.opened = true
	return nil
}

// GetContents reads the full file, opening (and locking, for
// OSBackend) the handle on first call. Existence is checked before the
// handle is opened: OSBackend's advisory lock is acquired by creating
// the target file, so opening unconditionally would turn a genuinely
// missing file into an empty one before GetContents ever ran, hiding
// FileNotFound from callers that rely on it (store.Retrieve's
// default-entry synthesis).
func (h *Handle) GetContents() (string, error) {
	exists, err := h.backend.Exists(h.path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", storeerr.New(storeerr.FileNotFound, "GetContents", h.path)
	}
	if err := h.ensureOpen(); err != nil {
		return "", err
	}
	return h.backend.GetContents(h.path)
}

// WriteContents replaces the file's contents, opening (and locking,
// for OSBackend) the handle on first call.
func (h *Handle) WriteContents(content string) error {
	if err := h.ensureOpen(); err != nil {
		return err
	}
	return h.backend.WriteContents(h.path, content)
}

// Close releases whatever exclusivity the backend granted on open. It
// is a no-op if the handle was never opened.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.opened || h.lock == nil {
		return nil
	}
	err := h.lock.Close()
	h.lock = nil
	h.opened = false
	return err
}
