// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToText serializes the header into the restricted declarative
// document format, one `[section]` block per non-empty subtable,
// walked in Table's insertion order so the output is deterministic.
// ParseText(h.ToText()) is structurally equal to h for headers built
// from bare-word keys and scalar, array and table values. It is not
// equal when a table's sub-tables were inserted before some of its
// scalar keys (scalars are always written first, so the reparsed key
// order differs), when a sub-table is empty (nothing is written for
// it), when an array holds a table (written as "{}", which ParseText
// rejects), or when a key contains '.', '=', '#', brackets, quotes or
// whitespace (keys are written unquoted).
func (h Header) ToText() string {
	var sb strings.Builder
	writeTable(&sb, nil, h.Root)
	return sb.String()
}

func writeTable(sb *strings.Builder, path []string, t *Table) {
	var scalarKeys, tableKeys []string
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		if _, ok := v.(*Table); ok {
			tableKeys = append(tableKeys, k)
		} else {
			scalarKeys = append(scalarKeys, k)
		}
	}

	if len(scalarKeys) > 0 {
		if len(path) > 0 {
			fmt.Fprintf(sb, "[%s]\n", strings.Join(path, "."))
		}
		for _, k := range scalarKeys {
			v, _ := t.Get(k)
			fmt.Fprintf(sb, "%s = %s\n", k, writeValue(v))
		}
	}

	for _, k := range tableKeys {
		v, _ := t.Get(k)
		sub := v.(*Table)
		writeTable(sb, append(append([]string{}, path...), k), sub)
	}
}

func writeValue(v Value) string {
	switch val := v.(type) {
	case String:
		return quoteString(string(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		s := strconv.FormatFloat(float64(val), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			// Keep a fraction so an integral float reparses as a Float.
			s += ".0"
		}
		return s
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Time:
		return time.Time(val).UTC().Format(time.RFC3339Nano)
	case Array:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = writeValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Table:
		// Tables are never written as inline values in this
		// format; callers always route through writeTable.
		return "{}"
	default:
		return "null"
	}
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
