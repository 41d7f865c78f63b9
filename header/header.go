// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import "github.com/imag-go/entrystore/storeerr"

// CurrentVersion is the header version string written into freshly
// created entries.
const CurrentVersion = "0.1.0"

// Header wraps the root table of an entry's header.
type Header struct {
	Root *Table
}

// Default returns the header every fresh entry starts with:
// { imag = { version = CurrentVersion } }.
func Default() Header {
	root := NewTable()
	imag := root.GetOrCreateTable("imag")
	imag.Set("version", String(CurrentVersion))
	return Header{Root: root}
}

// Get reads a dotted path from the header. A missing path yields
// (nil, false), never an error.
func (h Header) Get(path string) (Value, bool) {
	return h.Root.GetPath(path)
}

// Set writes val at the dotted path, creating intermediate tables as
// needed.
func (h Header) Set(path string, val Value) bool {
	return h.Root.SetPath(path, val)
}

// Verify checks the required substructure of every header:
//
//  1. imag is a table;
//  2. imag.version is a string;
//  3. that string parses as semver MAJOR.MINOR.PATCH with no
//     pre-release or build metadata and non-negative components.
//
// Any failure is reported as a HeaderInconsistency error.
func (h Header) Verify() error {
	imag, ok := h.Root.GetTable("imag")
	if !ok {
		return storeerr.New(storeerr.HeaderInconsistency, "Verify", "missing required table \"imag\"")
	}
	v, ok := imag.GetString("version")
	if !ok {
		return storeerr.New(storeerr.HeaderInconsistency, "Verify", "missing required string \"imag.version\"")
	}
	parsed, err := parseSemVer(v)
	if err != nil {
		return storeerr.New(storeerr.HeaderInconsistency, "Verify", "imag.version is not valid semver: "+err.Error())
	}
	if parsed.preRelease != "" || parsed.metadata != "" {
		return storeerr.New(storeerr.HeaderInconsistency, "Verify", "imag.version must be MAJOR.MINOR.PATCH, got "+v)
	}
	return nil
}

// Equal reports structural equality of two headers, including table
// order.
func (h Header) Equal(other Header) bool {
	return h.Root.Equal(other.Root)
}

// GetStringArray reads path as an array of strings. A missing path,
// or one whose value is not an all-string array, yields (nil, false).
func (h Header) GetStringArray(path string) ([]string, bool) {
	v, ok := h.Get(path)
	if !ok {
		return nil, false
	}
	arr, ok := v.(Array)
	if !ok {
		return nil, false
	}
	return arr.Strings()
}

// AppendString appends s to the string array at path, creating an
// empty array there first if path is absent. It fails if path already
// holds a non-array value.
func (h Header) AppendString(path string, s string) bool {
	existing, ok := h.Get(path)
	if !ok {
		return h.Set(path, Array{String(s)})
	}
	arr, ok := existing.(Array)
	if !ok {
		return false
	}
	return h.Set(path, append(arr, String(s)))
}
