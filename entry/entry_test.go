// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package entry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

func testID(t *testing.T) storeid.ID {
	t.Helper()
	id, err := storeid.New("", "bookmark/foo")
	if err != nil {
		t.Fatalf("storeid.New: %v", err)
	}
	return id
}

func TestNewHasDefaultHeaderAndEmptyContent(t *testing.T) {
	id := testID(t)
	e := New(id)

	if !e.Location().Equal(id) {
		t.Fatalf("location mismatch")
	}
	if e.Content() != "" {
		t.Fatalf("expected empty content, got %q", e.Content())
	}
	if err := e.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestFromTextExact(t *testing.T) {
	id := testID(t)
	text := "---\n[imag]\nversion = \"0.0.3\"\n---\nHai"

	e, err := FromText(id, text)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if e.Content() != "Hai" {
		t.Fatalf("unexpected content: %q", e.Content())
	}
	if err := e.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got := e.ToText(); got != text {
		t.Fatalf("re-serialization mismatch:\n got: %q\nwant: %q", got, text)
	}
}

func TestFromTextMissingFences(t *testing.T) {
	id := testID(t)
	if _, err := FromText(id, "no fences here"); !storeerr.Is(err, storeerr.MalformedEntry) {
		t.Fatalf("expected MalformedEntry, got %v", err)
	}
}

func TestFromTextMissingClosingFence(t *testing.T) {
	id := testID(t)
	if _, err := FromText(id, "---\n[imag]\nversion = \"0.1.0\"\n"); !storeerr.Is(err, storeerr.MalformedEntry) {
		t.Fatalf("expected MalformedEntry, got %v", err)
	}
}

func TestFromTextBadHeader(t *testing.T) {
	id := testID(t)
	if _, err := FromText(id, "---\nnot a valid header line\n---\ncontent"); !storeerr.Is(err, storeerr.HeaderError) {
		t.Fatalf("expected HeaderError, got %v", err)
	}
}

func TestRoundTripNewEntry(t *testing.T) {
	id := testID(t)
	e := New(id)
	e.SetContent("hello, world")

	text := e.ToText()
	reparsed, err := FromText(id, text)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if diff := cmp.Diff(e, reparsed); diff != "" {
		t.Fatalf("round trip mismatch (-original +reparsed):\n%s", diff)
	}
}

func TestSetHeaderAndContent(t *testing.T) {
	id := testID(t)
	e := New(id)

	h := header.Default()
	h.Set("bookmark.url", header.String("https://example.com"))
	e.SetHeader(h)
	e.SetContent("notes")

	if got, ok := e.Header().Get("bookmark.url"); !ok || got.(header.String) != "https://example.com" {
		t.Fatalf("unexpected header after SetHeader: %#v", got)
	}
	if e.Content() != "notes" {
		t.Fatalf("unexpected content after SetContent: %q", e.Content())
	}
}

func TestEmptyContentIsValid(t *testing.T) {
	id := testID(t)
	text := "---\n[imag]\nversion = \"0.1.0\"\n---\n"
	e, err := FromText(id, text)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if e.Content() != "" {
		t.Fatalf("expected empty content, got %q", e.Content())
	}
}
