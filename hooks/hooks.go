// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package hooks implements the store's hook pipeline: eleven well-known
// lifecycle positions, each served by an ordered list of named
// aspects, each aspect an ordered list of hooks run sequentially on
// the calling goroutine. Hooks satisfy one of two small capability
// interfaces declaring which pipeline shape they support, checked with
// type assertions per call site, rather than a single fat interface
// every hook must implement in full.
package hooks

import (
	"context"
	"sync"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// Position is one of the eleven lifecycle points a hook can run at.
type Position int

const (
	StoreUnload Position = iota
	PreCreate
	PostCreate
	PreRetrieve
	PostRetrieve
	PreUpdate
	PostUpdate
	PreDelete
	PostDelete
	PreMove
	PostMove
)

func (p Position) String() string {
	switch p {
	case StoreUnload:
		return "store-unload"
	case PreCreate:
		return "pre-create"
	case PostCreate:
		return "post-create"
	case PreRetrieve:
		return "pre-retrieve"
	case PostRetrieve:
		return "post-retrieve"
	case PreUpdate:
		return "pre-update"
	case PostUpdate:
		return "post-update"
	case PreDelete:
		return "pre-delete"
	case PostDelete:
		return "post-delete"
	case PreMove:
		return "pre-move"
	case PostMove:
		return "post-move"
	default:
		return "unknown-position"
	}
}

// idOnlyPositions are the positions whose invocation shape is
// id-only: StoreUnload, the pre-create/pre-retrieve/pre-delete/
// post-delete points, and both move points (move operates on ids on
// both sides, never a mutable entry). Every other position runs
// against a mutable entry: post-create, post-retrieve, and both
// update points.
var idOnlyPositions = map[Position]bool{
	StoreUnload: true,
	PreCreate:   true,
	PreRetrieve: true,
	PreDelete:   true,
	PostDelete:  true,
	PreMove:     true,
	PostMove:    true,
}

// IsIDOnly reports whether pos takes the id-only invocation shape
// (IDHook) rather than the mutable-entry shape (EntryHook).
func (p Position) IsIDOnly() bool { return idOnlyPositions[p] }

// Hook is the common capability every hook provides: a name used in
// log output and error messages, and an optional configuration sink.
// A hook additionally implements IDHook, EntryHook, or both, declaring
// which pipeline shapes it can run at.
type Hook interface {
	Name() string
}

// ConfigurableHook is implemented by hooks that accept per-hook
// configuration from the store's `hooks.<name>` configuration table,
// handed to SetConfig at registration time.
type ConfigurableHook interface {
	Hook
	SetConfig(cfg *header.Table) error
}

// IDHook is implemented by hooks placed at an id-only position.
type IDHook interface {
	Hook
	RunID(ctx context.Context, id storeid.ID) HookResult
}

// EntryHook is implemented by hooks placed at a mutable-entry
// position. MutableEntry is kept as a minimal interface here (rather
// than importing package entry directly) to avoid a dependency cycle:
// entry and hooks both sit below store, and only store needs both.
type EntryHook interface {
	Hook
	RunEntry(ctx context.Context, e MutableEntry) HookResult
}

// MutableEntry is the minimal surface an EntryHook needs from an
// *entry.Entry: read/write access to its header and content.
type MutableEntry interface {
	Header() header.Header
	SetHeader(header.Header)
	Content() string
	SetContent(string)
}

// HookResult is what a hook returns: success, or an error classified
// as abort (pipeline stops, the operation fails) or continue
// (pipeline logs and proceeds).
type HookResult struct {
	Err      error
	Continue bool
}

// Ok is the zero HookResult: success.
func Ok() HookResult { return HookResult{} }

// Abort wraps err as an aborting failure.
func Abort(err error) HookResult { return HookResult{Err: err} }

// ContinueWith wraps err as a non-aborting failure: the pipeline logs
// it and proceeds to the next hook.
func ContinueWith(err error) HookResult { return HookResult{Err: err, Continue: true} }

// Aspect is an ordered list of hooks sharing a name and a
// configuration sub-tree; it evaluates its hooks sequentially within
// the position it is registered at. Each aspect is guarded by its own
// mutex, so registering into or running one aspect never blocks
// another.
type Aspect struct {
	name   string
	config *header.Table

	mu    sync.Mutex
	hooks []Hook
}

// NewAspect returns an empty, named Aspect.
func NewAspect(name string) *Aspect {
	return &Aspect{name: name}
}

// Name returns the aspect's name.
func (a *Aspect) Name() string { return a.name }

// SetConfig stores the aspect's configuration sub-tree. Register does
// not read it: the per-hook configuration handed to
// ConfigurableHook.SetConfig comes from Register's cfg argument.
func (a *Aspect) SetConfig(cfg *header.Table) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = cfg
}

// Register appends hook to the aspect, pulling its per-hook
// configuration from cfg's `hooks.<hook-name>` table (if present) and
// calling SetConfig on it when it implements ConfigurableHook.
func (a *Aspect) Register(hook Hook, cfg *header.Table) error {
	if ch, ok := hook.(ConfigurableHook); ok && cfg != nil {
		if sub, ok := cfg.GetTable("hooks"); ok {
			if hookCfg, ok := sub.GetTable(hook.Name()); ok {
				if err := ch.SetConfig(hookCfg); err != nil {
					return storeerr.Wrap(storeerr.HookRegisterError, "Register", err)
				}
			}
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook)
	return nil
}

// RunID runs every IDHook in registration order. It returns the first
// abort error; continue errors are collected and returned via
// continueErrs for the caller to log.
func (a *Aspect) RunID(ctx context.Context, id storeid.ID) (abortErr error, continueErrs []error) {
	a.mu.Lock()
	hooks := make([]Hook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	for _, h := range hooks {
		idh, ok := h.(IDHook)
		if !ok {
			continue
		}
		res := idh.RunID(ctx, id)
		if res.Err == nil {
			continue
		}
		if !res.Continue {
			return res.Err, continueErrs
		}
		continueErrs = append(continueErrs, res.Err)
	}
	return nil, continueErrs
}

// RunEntry runs every EntryHook in registration order, against the
// same mutable entry.
func (a *Aspect) RunEntry(ctx context.Context, e MutableEntry) (abortErr error, continueErrs []error) {
	a.mu.Lock()
	hooks := make([]Hook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	for _, h := range hooks {
		eh, ok := h.(EntryHook)
		if !ok {
			continue
		}
		res := eh.RunEntry(ctx, e)
		if res.Err == nil {
			continue
		}
		if !res.Continue {
			return res.Err, continueErrs
		}
		continueErrs = append(continueErrs, res.Err)
	}
	return nil, continueErrs
}
