// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storeconfig

import (
	"testing"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/hooks"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(header.NewTable())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.ImplicitCreate {
		t.Fatalf("expected implicit-create to default to false")
	}
	if len(cfg.HookAspects) != 0 {
		t.Fatalf("expected no hook aspects by default, got %v", cfg.HookAspects)
	}
}

func TestParseHookAspectLists(t *testing.T) {
	root := header.NewTable()
	root.Set("implicit-create", header.Bool(true))
	root.Set("pre-create-hook-aspects", header.Array{header.String("logging"), header.String("stamp")})
	root.Set("post-delete-hook-aspects", header.Array{header.String("logging")})

	cfg, err := Parse(root)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.ImplicitCreate {
		t.Fatalf("expected implicit-create to be true")
	}
	got := cfg.HookAspects[hooks.PreCreate]
	if len(got) != 2 || got[0] != "logging" || got[1] != "stamp" {
		t.Fatalf("unexpected pre-create aspects: %v", got)
	}
	if got := cfg.HookAspects[hooks.PostDelete]; len(got) != 1 || got[0] != "logging" {
		t.Fatalf("unexpected post-delete aspects: %v", got)
	}
}

func TestParseAspectTunables(t *testing.T) {
	root := header.NewTable()
	aspects := root.GetOrCreateTable("aspects")
	logging := aspects.GetOrCreateTable("logging")
	logging.Set("parallel", header.Bool(true))
	logging.Set("mutable_hooks", header.Bool(false))

	cfg, err := Parse(root)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tun, ok := cfg.Aspects["logging"]
	if !ok {
		t.Fatalf("expected aspect tunables for \"logging\"")
	}
	if !tun.Parallel || tun.MutableHooks {
		t.Fatalf("unexpected tunables: %#v", tun)
	}
}

func TestParseAspectTunablesDefaultMutableHooks(t *testing.T) {
	root := header.NewTable()
	aspects := root.GetOrCreateTable("aspects")
	aspects.GetOrCreateTable("logging")

	cfg, err := Parse(root)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tun, ok := cfg.Aspects["logging"]
	if !ok {
		t.Fatalf("expected aspect tunables for \"logging\"")
	}
	if !tun.MutableHooks {
		t.Fatalf("expected mutable_hooks to default to true for a declared aspect")
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	root := header.NewTable()
	root.Set("implicit-create", header.String("yes"))
	if _, err := Parse(root); err == nil {
		t.Fatalf("expected Parse to reject a non-bool implicit-create")
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	root := header.NewTable()
	root.Set("some-future-key", header.Int(1))
	if _, err := Parse(root); err != nil {
		t.Fatalf("expected unknown keys to be ignored, got %v", err)
	}
}

func TestBuildGroupSeedsDeclaredAspects(t *testing.T) {
	root := header.NewTable()
	root.Set("pre-create-hook-aspects", header.Array{header.String("logging")})
	cfg, err := Parse(root)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g := cfg.BuildGroup(hooks.PreCreate)
	if err := g.Register("logging", nil, nil); err != nil {
		t.Fatalf("expected Register against the declared aspect to succeed, got %v", err)
	}
	if err := g.Register("nonexistent-aspect", nil, nil); err == nil {
		t.Fatalf("expected Register against an undeclared aspect to fail")
	}
}
