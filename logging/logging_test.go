// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetJSONFormatter()

	if err := l.SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	l.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at warn level, got %q", buf.String())
	}

	l.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warning in output, got %q", buf.String())
	}
}

func TestLoggerInvalidLevel(t *testing.T) {
	l := New()
	if err := l.SetLevel("not-a-level"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestTextFormatter(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetTextFormatter()

	l.WithField("id", "bookmark/foo").Info("created entry")

	out := buf.String()
	if !strings.Contains(out, "created entry") {
		t.Fatalf("unexpected text output: %q", out)
	}
	if !strings.Contains(out, "id=bookmark/foo") {
		t.Fatalf("expected field in text output: %q", out)
	}
}
