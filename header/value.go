// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package header implements the entry header: a recursive typed tree
// (string, int, float, bool, date-time, array, table) parsed from and
// serialized to a restricted declarative text format, plus the
// dotted-key query/mutation API tools use to read and write arbitrary
// header paths.
package header

import (
	"time"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is the recursive sum type stored in a header. The concrete
// types in this file (String, Int, Float, Bool, Time, Array, *Table)
// are the only implementations.
type Value interface {
	Kind() Kind
	// Equal reports deep structural equality, including Table key
	// order (tables are part of a serialization-deterministic
	// format, so order is observable, not incidental).
	Equal(other Value) bool
}

// String is a quoted string value.
type String string

func (String) Kind() Kind { return KindString }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

// Int is a signed integer value.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && i == o
}

// Float is a floating point value.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (f Float) Equal(other Value) bool {
	o, ok := other.(Float)
	return ok && f == o
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Time is an ISO-8601/RFC3339 date-time value.
type Time time.Time

func (Time) Kind() Kind { return KindTime }
func (t Time) Equal(other Value) bool {
	o, ok := other.(Time)
	return ok && time.Time(t).Equal(time.Time(o))
}

// Array is an ordered sequence of Values.
type Array []Value

func (Array) Kind() Kind { return KindArray }
func (a Array) Equal(other Value) bool {
	o, ok := other.(Array)
	if !ok || len(a) != len(o) {
		return false
	}
	for i := range a {
		if !a[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings returns the array's elements as strings, failing if any
// element is not a String.
func (a Array) Strings() ([]string, bool) {
	out := make([]string, len(a))
	for i, v := range a {
		s, ok := v.(String)
		if !ok {
			return nil, false
		}
		out[i] = string(s)
	}
	return out, true
}
