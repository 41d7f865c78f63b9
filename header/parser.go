// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/imag-go/entrystore/storeerr"
)

// ParseText parses the restricted declarative document format used by
// every entry header: a line-oriented format of `key = value` lines
// (keys may be dotted) and `[section.subsection]` table headers, with
// string/int/float/bool/datetime/array values. It is a hand-written
// recursive-descent parser rather than a call into a general TOML
// library, so that key order is threaded directly into the resulting
// Table as it's read (see header.Table's order-preservation
// invariant) instead of passing through an intermediate unordered Go
// map.
func ParseText(text string) (Header, error) {
	root := NewTable()
	cur := root

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return Header{}, parseErrf(lineNo, "unterminated table header %q", raw)
			}
			inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			keys := strings.Split(inner, ".")
			sub := root
			for _, k := range keys {
				k = strings.TrimSpace(k)
				if k == "" {
					return Header{}, parseErrf(lineNo, "empty table key in %q", raw)
				}
				existing, ok := sub.Get(k)
				if !ok {
					sub = sub.GetOrCreateTable(k)
					continue
				}
				t, ok := existing.(*Table)
				if !ok {
					return Header{}, parseErrf(lineNo, "key %q is not a table", k)
				}
				sub = t
			}
			cur = sub
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return Header{}, parseErrf(lineNo, "expected \"key = value\", got %q", raw)
		}
		keyPart := strings.TrimSpace(line[:eq])
		valPart := strings.TrimSpace(line[eq+1:])
		if keyPart == "" {
			return Header{}, parseErrf(lineNo, "empty key in %q", raw)
		}

		val, rest, err := parseValueAt(valPart, 0)
		if err != nil {
			return Header{}, parseErrf(lineNo, "%v", err)
		}
		if strings.TrimSpace(valPart[rest:]) != "" {
			return Header{}, parseErrf(lineNo, "trailing garbage after value in %q", raw)
		}

		keys := strings.Split(keyPart, ".")
		dst := cur
		for _, k := range keys[:len(keys)-1] {
			dst = dst.GetOrCreateTable(strings.TrimSpace(k))
		}
		dst.Set(strings.TrimSpace(keys[len(keys)-1]), val)
	}

	return Header{Root: root}, nil
}

func parseErrf(lineNo int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return storeerr.New(storeerr.HeaderError, "ParseText", fmt.Sprintf("line %d: %s", lineNo+1, msg))
}

// parseValueAt parses a single value from s starting at index i,
// returning the value and the index of the first unconsumed byte.
func parseValueAt(s string, i int) (Value, int, error) {
	i = skipSpace(s, i)
	if i >= len(s) {
		return nil, i, fmt.Errorf("unexpected end of value")
	}

	switch s[i] {
	case '"':
		return parseQuotedString(s, i)
	case '[':
		return parseArray(s, i)
	}

	// Scalar token: everything up to the next structural delimiter.
	j := i
	for j < len(s) && s[j] != ',' && s[j] != ']' && !isSpace(s[j]) {
		j++
	}
	tok := s[i:j]
	if tok == "" {
		return nil, i, fmt.Errorf("empty value")
	}

	v, err := parseScalarToken(tok)
	if err != nil {
		return nil, i, err
	}
	return v, j, nil
}

func parseScalarToken(tok string) (Value, error) {
	switch tok {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}

	if looksLikeDateTime(tok) {
		t, err := time.Parse(time.RFC3339, tok)
		if err == nil {
			return Time(t), nil
		}
	}

	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(n), nil
	}

	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), nil
	}

	return nil, fmt.Errorf("invalid scalar value %q", tok)
}

func looksLikeDateTime(tok string) bool {
	return len(tok) >= 10 && tok[4] == '-' && tok[7] == '-'
}

func parseQuotedString(s string, i int) (Value, int, error) {
	if s[i] != '"' {
		return nil, i, fmt.Errorf("expected opening quote")
	}
	var sb strings.Builder
	j := i + 1
	for j < len(s) {
		c := s[j]
		if c == '\\' && j+1 < len(s) {
			switch s[j+1] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(s[j+1])
			}
			j += 2
			continue
		}
		if c == '"' {
			return String(sb.String()), j + 1, nil
		}
		sb.WriteByte(c)
		j++
	}
	return nil, j, fmt.Errorf("unterminated string literal")
}

func parseArray(s string, i int) (Value, int, error) {
	if s[i] != '[' {
		return nil, i, fmt.Errorf("expected opening bracket")
	}
	i++
	arr := Array{}
	i = skipSpace(s, i)
	if i < len(s) && s[i] == ']' {
		return arr, i + 1, nil
	}
	for {
		v, next, err := parseValueAt(s, i)
		if err != nil {
			return nil, i, err
		}
		arr = append(arr, v)
		i = skipSpace(s, next)
		if i >= len(s) {
			return nil, i, fmt.Errorf("unterminated array literal")
		}
		if s[i] == ',' {
			i = skipSpace(s, i+1)
			continue
		}
		if s[i] == ']' {
			return arr, i + 1, nil
		}
		return nil, i, fmt.Errorf("expected ',' or ']' in array, got %q", s[i:])
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
