// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package store

import (
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// WalkEntry is one item yielded by Walk: a StoreId together with
// whether it names a collection (directory) rather than a leaf entry.
type WalkEntry struct {
	ID         storeid.ID
	Collection bool
}

// IDIter is a pull-based iterator over StoreIds, returned by Walk and
// RetrieveForModule. Call Next until it returns false, then check Err
// to distinguish a clean end from an enumeration failure.
//
// The traversal is collected eagerly through the File Abstraction's
// Walk primitive rather than driven directory-by-directory, since the
// store spawns no internal tasks for any operation (see the
// concurrency model) and a truly lazy generator would need one here.
// Callers only ever see the pull-based Next/Value/Err surface, so this
// is an implementation detail rather than a contract.
type IDIter struct {
	entries []WalkEntry
	idx     int
	err     error
}

// Next advances the iterator, returning false once exhausted or once
// an enumeration error has occurred.
func (it *IDIter) Next() bool {
	if it.err != nil || it.idx >= len(it.entries) {
		return false
	}
	it.idx++
	return true
}

// Value returns the entry most recently advanced to by Next.
func (it *IDIter) Value() WalkEntry {
	return it.entries[it.idx-1]
}

// Err returns the enumeration error, if any.
func (it *IDIter) Err() error {
	return it.err
}

// Walk recursively enumerates backing storage under root/<module>/,
// yielding either an id (file) or a collection marker (directory).
// Errors in enumeration terminate the iteration early.
func (s *Store) Walk(module string) *IDIter {
	moduleID, err := storeid.New(s.root, module)
	if err != nil {
		return &IDIter{err: storeerr.WrapCall(storeerr.WalkCallError, "Walk", err)}
	}
	root, err := s.path(s.canonicalize(moduleID))
	if err != nil {
		return &IDIter{err: storeerr.WrapCall(storeerr.WalkCallError, "Walk", err)}
	}

	it := &IDIter{}
	walkErr := s.backend.Walk(root, func(path string, isDir bool) error {
		id, err := storeid.FromFullPath(s.root, path)
		if err != nil {
			return err
		}
		it.entries = append(it.entries, WalkEntry{ID: id, Collection: isDir})
		return nil
	})
	if walkErr != nil {
		it.err = storeerr.WrapCall(storeerr.WalkCallError, "Walk", walkErr)
	}
	return it
}

// RetrieveForModule globs root/<module>/**/*, yielding the canonical
// StoreId of every leaf entry under module (collection directories are
// skipped).
func (s *Store) RetrieveForModule(module string) *IDIter {
	base := s.Walk(module)
	if base.err != nil {
		base.err = storeerr.WrapCall(storeerr.RetrieveForModuleCallError, "RetrieveForModule", base.err)
		return base
	}
	it := &IDIter{}
	for _, e := range base.entries {
		if !e.Collection {
			it.entries = append(it.entries, e)
		}
	}
	return it
}
