// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseExactEntryHeader(t *testing.T) {
	text := "[imag]\nversion = \"0.0.3\"\n"

	h, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := h.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	v, ok := h.Get("imag.version")
	if !ok {
		t.Fatalf("expected imag.version to be present")
	}
	if s, ok := v.(String); !ok || string(s) != "0.0.3" {
		t.Fatalf("unexpected imag.version: %#v", v)
	}

	if got := h.ToText(); got != text {
		t.Fatalf("re-serialization mismatch:\n got: %q\nwant: %q", got, text)
	}
}

func TestDefaultHeaderVerifies(t *testing.T) {
	h := Default()
	if err := h.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	h := Default()
	imag, _ := h.Root.GetTable("imag")
	imag.Set("tags", Array{String("go"), String("store")})
	h.Set("bookmark.url", String("https://example.com"))
	h.Set("bookmark.visited", Int(3))
	h.Set("bookmark.rating", Float(4.5))
	h.Set("bookmark.archived", Bool(false))

	text := h.ToText()
	reparsed, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	if diff := cmp.Diff(h, reparsed); diff != "" {
		t.Fatalf("round trip mismatch (-original +reparsed):\n%s\ntext: %s", diff, text)
	}
}

func TestVerifyRejectsMissingImag(t *testing.T) {
	h, err := ParseText("foo = 1\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := h.Verify(); err == nil {
		t.Fatalf("expected Verify to fail without an imag table")
	}
}

func TestVerifyRejectsBadVersion(t *testing.T) {
	h, err := ParseText("[imag]\nversion = \"not-semver\"\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := h.Verify(); err == nil {
		t.Fatalf("expected Verify to fail for a non-semver version")
	}
}

func TestVerifyRejectsPreReleaseVersion(t *testing.T) {
	h, err := ParseText("[imag]\nversion = \"1.0.0-rc1\"\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := h.Verify(); err == nil {
		t.Fatalf("expected Verify to reject a pre-release version")
	}
}

func TestGetMissingPathIsNotAnError(t *testing.T) {
	h := Default()
	if _, ok := h.Get("nonexistent.path"); ok {
		t.Fatalf("expected missing path to report absent, not found")
	}
}

func TestArrayIndexingInPath(t *testing.T) {
	h := Default()
	h.Root.Set("tags", Array{String("a"), String("b"), String("c")})

	v, ok := h.Get("tags.1")
	if !ok {
		t.Fatalf("expected tags.1 to resolve")
	}
	if s, ok := v.(String); !ok || string(s) != "b" {
		t.Fatalf("unexpected value: %#v", v)
	}

	if _, ok := h.Get("tags.99"); ok {
		t.Fatalf("expected out-of-range index to report absent")
	}
}

func TestStringArrayAccessors(t *testing.T) {
	h := Default()

	if _, ok := h.GetStringArray("imag.tags"); ok {
		t.Fatalf("expected imag.tags to be absent initially")
	}

	if !h.AppendString("imag.tags", "go") {
		t.Fatalf("AppendString failed on absent path")
	}
	if !h.AppendString("imag.tags", "store") {
		t.Fatalf("AppendString failed on existing array")
	}

	tags, ok := h.GetStringArray("imag.tags")
	if !ok {
		t.Fatalf("expected imag.tags to be present")
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "store" {
		t.Fatalf("unexpected tags: %#v", tags)
	}

	h.Set("imag.version", Int(1))
	if h.AppendString("imag.version", "oops") {
		t.Fatalf("expected AppendString to fail against a non-array value")
	}
}

func TestParseMalformedLine(t *testing.T) {
	if _, err := ParseText("this is not valid\n"); err == nil {
		t.Fatalf("expected parse error for a line without '='")
	}
}

func TestParseArraysAndScalars(t *testing.T) {
	text := "[bookmark]\n" +
		"url = \"https://example.com\"\n" +
		"tags = [\"a\", \"b\", \"c\"]\n" +
		"rating = 4.5\n" +
		"visits = 12\n" +
		"archived = false\n"

	h, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	tags, ok := h.Get("bookmark.tags")
	if !ok {
		t.Fatalf("expected bookmark.tags")
	}
	arr, ok := tags.(Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("unexpected tags: %#v", tags)
	}
	strs, ok := arr.Strings()
	if !ok || strs[0] != "a" || strs[2] != "c" {
		t.Fatalf("unexpected tags strings: %#v", strs)
	}
}
