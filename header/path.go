// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import (
	"strconv"
	"strings"
)

// GetPath navigates a dotted path (e.g. "imag.version", "imag.tags.0")
// from the table, indexing into arrays when a path component parses
// as a non-negative integer. Reading a missing path yields (nil,
// false), never an error.
func (t *Table) GetPath(path string) (Value, bool) {
	var cur Value = t
	for _, comp := range splitPath(path) {
		switch v := cur.(type) {
		case *Table:
			next, ok := v.Get(comp)
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(comp)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			cur = v[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores val at the dotted path, creating intermediate tables
// as needed. Unlike GetPath it does not index into arrays: it fails if
// an intermediate component addresses any existing non-table value,
// an array included. To change an array element, read the Array,
// modify it, and Set it back.
func (t *Table) SetPath(path string, val Value) bool {
	comps := splitPath(path)
	if len(comps) == 0 {
		return false
	}
	cur := t
	for _, comp := range comps[:len(comps)-1] {
		next, ok := cur.Get(comp)
		if !ok {
			sub := NewTable()
			cur.Set(comp, sub)
			cur = sub
			continue
		}
		sub, ok := next.(*Table)
		if !ok {
			return false
		}
		cur = sub
	}
	cur.Set(comps[len(comps)-1], val)
	return true
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
