// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

type recordingIDHook struct {
	name  string
	calls *[]string
	res   HookResult
}

func (h recordingIDHook) Name() string { return h.name }
func (h recordingIDHook) RunID(ctx context.Context, id storeid.ID) HookResult {
	*h.calls = append(*h.calls, h.name)
	return h.res
}

func mustID(t *testing.T) storeid.ID {
	t.Helper()
	id, err := storeid.New("", "bookmark/foo")
	if err != nil {
		t.Fatalf("storeid.New: %v", err)
	}
	return id
}

func TestAspectRunsHooksInOrder(t *testing.T) {
	var calls []string
	a := NewAspect("logging")
	a.Register(recordingIDHook{name: "first", calls: &calls}, nil)
	a.Register(recordingIDHook{name: "second", calls: &calls}, nil)

	abort, cont := a.RunID(context.Background(), mustID(t))
	if abort != nil || len(cont) != 0 {
		t.Fatalf("unexpected failure: abort=%v continue=%v", abort, cont)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestAspectAbortStopsPipeline(t *testing.T) {
	var calls []string
	wantErr := errors.New("boom")
	a := NewAspect("logging")
	a.Register(recordingIDHook{name: "first", calls: &calls, res: Abort(wantErr)}, nil)
	a.Register(recordingIDHook{name: "second", calls: &calls}, nil)

	abort, _ := a.RunID(context.Background(), mustID(t))
	if abort != wantErr {
		t.Fatalf("expected abort error %v, got %v", wantErr, abort)
	}
	if len(calls) != 1 {
		t.Fatalf("expected pipeline to stop after abort, got calls=%v", calls)
	}
}

func TestAspectContinueErrorProceeds(t *testing.T) {
	var calls []string
	wantErr := errors.New("minor")
	a := NewAspect("logging")
	a.Register(recordingIDHook{name: "first", calls: &calls, res: ContinueWith(wantErr)}, nil)
	a.Register(recordingIDHook{name: "second", calls: &calls}, nil)

	abort, cont := a.RunID(context.Background(), mustID(t))
	if abort != nil {
		t.Fatalf("expected no abort, got %v", abort)
	}
	if len(cont) != 1 || cont[0] != wantErr {
		t.Fatalf("expected one continue error, got %v", cont)
	}
	if len(calls) != 2 {
		t.Fatalf("expected pipeline to proceed past a continue error, got calls=%v", calls)
	}
}

type configCapturingHook struct {
	name     string
	captured *header.Table
}

func (h *configCapturingHook) Name() string { return h.name }
func (h *configCapturingHook) SetConfig(cfg *header.Table) error {
	h.captured = cfg
	return nil
}
func (h *configCapturingHook) RunID(ctx context.Context, id storeid.ID) HookResult { return Ok() }

func TestGroupRegisterPullsHookConfig(t *testing.T) {
	g := NewGroup(PreCreate, []string{"logging"})

	cfg := header.NewTable()
	hooksTable := cfg.GetOrCreateTable("hooks")
	mine := hooksTable.GetOrCreateTable("stamp")
	mine.Set("enabled", header.Bool(true))

	h := &configCapturingHook{name: "stamp"}
	if err := g.Register("logging", h, cfg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if h.captured == nil {
		t.Fatalf("expected SetConfig to be called with a config table")
	}
	if v, ok := h.captured.Get("enabled"); !ok || v.(header.Bool) != true {
		t.Fatalf("unexpected captured config: %#v", h.captured)
	}
}

func TestGroupRegisterUnknownAspectFails(t *testing.T) {
	g := NewGroup(PreCreate, []string{"logging"})
	err := g.Register("nonexistent", &configCapturingHook{name: "x"}, nil)
	if !storeerr.Is(err, storeerr.AspectNameNotFound) {
		t.Fatalf("expected AspectNameNotFound, got %v", err)
	}
}

func TestGroupRunsAspectsInDeclarationOrder(t *testing.T) {
	var calls []string
	g := NewGroup(PreDelete, []string{"a", "b"})
	g.Register("a", recordingIDHook{name: "a1", calls: &calls}, nil)
	g.Register("b", recordingIDHook{name: "b1", calls: &calls}, nil)

	abort, _ := g.RunID(context.Background(), mustID(t))
	if abort != nil {
		t.Fatalf("unexpected abort: %v", abort)
	}
	if len(calls) != 2 || calls[0] != "a1" || calls[1] != "b1" {
		t.Fatalf("unexpected order: %v", calls)
	}
}

func TestPositionIDOnlyClassification(t *testing.T) {
	idOnly := []Position{StoreUnload, PreCreate, PreRetrieve, PreDelete, PostDelete, PreMove, PostMove}
	for _, p := range idOnly {
		if !p.IsIDOnly() {
			t.Fatalf("expected %v to be id-only", p)
		}
	}
	entryShaped := []Position{PostCreate, PostRetrieve, PreUpdate, PostUpdate}
	for _, p := range entryShaped {
		if p.IsIDOnly() {
			t.Fatalf("expected %v to be mutable-entry shaped", p)
		}
	}
}
