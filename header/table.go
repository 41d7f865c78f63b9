// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

// Table is an ordered mapping from string keys to Values. Insertion
// order is preserved across Set calls so serialization is
// deterministic: a dedicated ordered container rather than a bare Go
// map, since Table additionally needs deterministic iteration order.
type Table struct {
	keys   []string
	values map[string]Value
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{values: map[string]Value{}}
}

func (*Table) Kind() Kind { return KindTable }

// Equal reports whether two tables hold the same keys, in the same
// order, with equal values.
func (t *Table) Equal(other Value) bool {
	o, ok := other.(*Table)
	if !ok || len(t.keys) != len(o.keys) {
		return false
	}
	for i, k := range t.keys {
		if o.keys[i] != k {
			return false
		}
		if !t.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// Get returns the value stored at key, and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set stores val at key, appending key to the iteration order on
// first insertion and leaving the order untouched on overwrite.
func (t *Table) Set(key string, val Value) {
	if t.values == nil {
		t.values = map[string]Value{}
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = val
}

// Delete removes key, if present.
func (t *Table) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.keys)
}

// GetTable looks up a subtable, returning (nil, false) if key is
// absent or not a table.
func (t *Table) GetTable(key string) (*Table, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Table)
	return sub, ok
}

// GetOrCreateTable looks up a subtable, creating and storing an empty
// one if key is absent.
func (t *Table) GetOrCreateTable(key string) *Table {
	if sub, ok := t.GetTable(key); ok {
		return sub
	}
	sub := NewTable()
	t.Set(key, sub)
	return sub
}

// GetString looks up a string value, returning ("", false) if key is
// absent or not a string.
func (t *Table) GetString(key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}
