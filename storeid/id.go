// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package storeid implements the entry store's logical identifiers: a
// normalized relative path, optionally paired with an absolute base
// directory that anchors it to a filesystem location. Two IDs compare
// equal when their logical paths are equal; the base is a projection
// concern only, so cache lookups succeed whether or not a caller
// supplied a base.
package storeid

import (
	"path/filepath"
	"strings"

	"github.com/imag-go/entrystore/storeerr"
)

// ID is the logical identifier of an entry.
type ID struct {
	base string
	path []string
}

// Existence is the minimal capability storeid needs from a backing
// store to implement Exists, accepted as a small interface so this
// package never has to import the file package.
type Existence interface {
	Exists(path string) (bool, error)
}

// New constructs an ID from a base (optional) and a slash-separated
// logical path. The path must be relative, non-empty, and must not
// contain "." or ".." components.
func New(base, path string) (ID, error) {
	comps, err := splitClean(path)
	if err != nil {
		return ID{}, storeerr.New(storeerr.InvalidID, "storeid.New", err.Error())
	}
	return ID{base: base, path: comps}, nil
}

// MustNew is like New but panics on error. Intended for tests and
// static identifiers known to be valid.
func MustNew(base, path string) ID {
	id, err := New(base, path)
	if err != nil {
		panic(err)
	}
	return id
}

func splitClean(path string) ([]string, error) {
	if path == "" {
		return nil, errEmptyPath
	}
	if filepath.IsAbs(path) {
		return nil, errAbsolutePath
	}
	raw := strings.Split(filepath.ToSlash(path), "/")
	comps := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" {
			continue
		}
		if c == "." || c == ".." {
			return nil, errParentTraversal
		}
		comps = append(comps, c)
	}
	if len(comps) == 0 {
		return nil, errEmptyPath
	}
	return comps, nil
}

// WithBase returns a new ID anchored at base; the logical path is
// untouched. Calling WithBase with the same base twice is idempotent:
// id.WithBase(b).WithBase(b) == id.WithBase(b).
func (id ID) WithBase(base string) ID {
	return ID{base: base, path: id.path}
}

// Base returns the absolute base directory, if any.
func (id ID) Base() string {
	return id.base
}

// Path returns the logical path as a slash-separated string.
func (id ID) Path() string {
	return strings.Join(id.path, "/")
}

// Components returns a copy of the normalized path components.
func (id ID) Components() []string {
	out := make([]string, len(id.path))
	copy(out, id.path)
	return out
}

// Module returns the leading path component, conventionally the name
// of the owning tool (e.g. "bookmark", "mail").
func (id ID) Module() string {
	if len(id.path) == 0 {
		return ""
	}
	return id.path[0]
}

// IntoPathBuf projects the ID onto a filesystem path: base joined with
// the logical path. It fails with InvalidID if no base is set.
func (id ID) IntoPathBuf() (string, error) {
	if id.base == "" {
		return "", storeerr.New(storeerr.InvalidID, "IntoPathBuf", "id has no base")
	}
	return filepath.Join(append([]string{id.base}, id.path...)...), nil
}

// FromFullPath strips base from absPath and returns the resulting ID.
// It fails with a StoreIdHandlingError-classed error (reported as
// InvalidID, since this module has no separate handling-error kind)
// if absPath does not descend from base.
func FromFullPath(base, absPath string) (ID, error) {
	rel, err := filepath.Rel(base, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ID{}, storeerr.New(storeerr.InvalidID, "FromFullPath", "path does not descend from base")
	}
	comps, err := splitClean(rel)
	if err != nil {
		return ID{}, storeerr.New(storeerr.InvalidID, "FromFullPath", err.Error())
	}
	return ID{base: base, path: comps}, nil
}

// Exists projects the ID onto a filesystem path and queries checker
// for its existence.
func (id ID) Exists(checker Existence) (bool, error) {
	p, err := id.IntoPathBuf()
	if err != nil {
		return false, err
	}
	return checker.Exists(p)
}

// Equal reports whether two IDs share the same logical path. The base
// is deliberately ignored.
func (id ID) Equal(other ID) bool {
	if len(id.path) != len(other.path) {
		return false
	}
	for i := range id.path {
		if id.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

// String returns the logical path, for logging and map keys built
// outside of this package (the cache itself keys on ID via Equal
// semantics, see store.Store).
func (id ID) String() string {
	return id.Path()
}
