// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storeid

import (
	"testing"

	"github.com/imag-go/entrystore/storeerr"
)

func TestNewValidatesPath(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"", false},
		{"/abs/path", false},
		{"bookmark/foo", true},
		{"bookmark/../foo", false},
		{"./bookmark/foo", false},
		{"bookmark/.", false},
		{"bookmark//foo", true},
	}

	for _, tc := range tests {
		_, err := New("", tc.path)
		if tc.ok && err != nil {
			t.Errorf("New(%q): unexpected error %v", tc.path, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("New(%q): expected error, got none", tc.path)
		}
		if err != nil && !storeerr.Is(err, storeerr.InvalidID) {
			t.Errorf("New(%q): expected InvalidID, got %v", tc.path, err)
		}
	}
}

func TestEqualityIgnoresBase(t *testing.T) {
	a := MustNew("/home/alice/store", "bookmark/foo")
	b := MustNew("/var/store", "bookmark/foo")

	if !a.Equal(b) {
		t.Fatalf("expected equality to ignore base")
	}

	c := MustNew("", "bookmark/bar")
	if a.Equal(c) {
		t.Fatalf("expected different logical paths to compare unequal")
	}
}

func TestWithBaseIdempotent(t *testing.T) {
	id := MustNew("", "bookmark/foo")
	once := id.WithBase("/store")
	twice := once.WithBase("/store")

	if !once.Equal(twice) || once.Base() != twice.Base() {
		t.Fatalf("expected WithBase to be idempotent")
	}
}

func TestIntoPathBuf(t *testing.T) {
	id := MustNew("/store", "bookmark/foo")
	p, err := id.IntoPathBuf()
	if err != nil {
		t.Fatalf("IntoPathBuf: %v", err)
	}
	if p != "/store/bookmark/foo" {
		t.Fatalf("unexpected path: %q", p)
	}

	noBase := MustNew("", "bookmark/foo")
	if _, err := noBase.IntoPathBuf(); err == nil {
		t.Fatalf("expected error with no base set")
	}
}

func TestFromFullPath(t *testing.T) {
	id, err := FromFullPath("/store", "/store/bookmark/foo")
	if err != nil {
		t.Fatalf("FromFullPath: %v", err)
	}
	if id.Path() != "bookmark/foo" {
		t.Fatalf("unexpected logical path: %q", id.Path())
	}

	if _, err := FromFullPath("/store", "/elsewhere/bookmark/foo"); err == nil {
		t.Fatalf("expected error for path outside base")
	}
}

func TestModule(t *testing.T) {
	id := MustNew("", "bookmark/sub/foo")
	if id.Module() != "bookmark" {
		t.Fatalf("unexpected module: %q", id.Module())
	}
}
