// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package store implements the Store: the process-wide coordinator
// that owns the store root, the hook pipeline's eleven aspect groups, a
// borrow-tracked in-memory cache of StoreIds, and the File Abstraction
// used to materialize and persist entries. The cache/coordinator shape,
// a struct holding a guarded map plus a trigger/hook registry, is
// generalized here into the borrow-tracked StoreId -> StoreEntry
// cache this domain needs.
package store

import (
	"context"
	"sync"

	"github.com/imag-go/entrystore/file"
	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/hooks"
	"github.com/imag-go/entrystore/logging"
	"github.com/imag-go/entrystore/storeconfig"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// borrowState is the two-state tag of a cacheEntry: Present (resident,
// not currently handed out) or Borrowed (exactly one LockedEntry
// outstanding). The tag sits beside a handle pointer in cacheEntry;
// every operation that builds a cacheEntry gives it a non-nil handle,
// but the type itself does not rule out a nil one.
type borrowState int

const (
	present borrowState = iota
	borrowed
)

// cacheEntry is the record kept per StoreId that has been touched in
// the current process lifetime: a lazy handle to backing storage and
// a borrow tag. It never holds the materialized Entry itself; that
// only exists inside a LockedEntry while borrowed.
type cacheEntry struct {
	state  borrowState
	handle *file.Handle
}

// Store is the process-wide entry-store coordinator.
type Store struct {
	root    string
	backend file.Backend
	config  *storeconfig.Config

	groups map[hooks.Position]*hooks.Group

	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

// New constructs a Store rooted at root, backed by backend. cfg may be
// nil, in which case an empty default configuration is used (no
// aspects registered at any position).
//
// The root must exist as a directory on backend. A missing root is
// created only when the configuration sets implicit-create; otherwise
// New fails with CreateStoreDirDenied. A root that exists but is not a
// directory fails with StorePathExists.
func New(root string, backend file.Backend, cfg *storeconfig.Config) (*Store, error) {
	if cfg == nil {
		cfg, _ = storeconfig.Parse(header.NewTable())
	}

	exists, err := backend.Exists(root)
	if err != nil {
		return nil, err
	}
	if !exists {
		if !cfg.ImplicitCreate {
			return nil, storeerr.New(storeerr.CreateStoreDirDenied, "New", root)
		}
		if err := backend.CreateDirAll(root); err != nil {
			return nil, err
		}
	} else {
		isDir, err := backend.IsDir(root)
		if err != nil {
			return nil, err
		}
		if !isDir {
			return nil, storeerr.New(storeerr.StorePathExists, "New", root)
		}
	}

	s := &Store{
		root:    root,
		backend: backend,
		config:  cfg,
		groups:  map[hooks.Position]*hooks.Group{},
		cache:   map[string]*cacheEntry{},
	}
	for _, pos := range allPositions {
		s.groups[pos] = cfg.BuildGroup(pos)
	}
	return s, nil
}

var allPositions = []hooks.Position{
	hooks.StoreUnload,
	hooks.PreCreate, hooks.PostCreate,
	hooks.PreRetrieve, hooks.PostRetrieve,
	hooks.PreUpdate, hooks.PostUpdate,
	hooks.PreDelete, hooks.PostDelete,
	hooks.PreMove, hooks.PostMove,
}

// RegisterHook registers hook into the named aspect at pos. It fails
// with AspectNameNotFound if the aspect was never declared in the
// store's configuration for that position, and with HookRegisterError
// if the hook does not provide the invocation shape pos requires, or
// if pos is a mutable-entry position but the aspect is configured with
// mutable_hooks = false.
func (s *Store) RegisterHook(pos hooks.Position, aspectName string, hook hooks.Hook) error {
	if pos.IsIDOnly() {
		if _, ok := hook.(hooks.IDHook); !ok {
			return storeerr.New(storeerr.HookRegisterError, "RegisterHook",
				hook.Name()+" does not provide the id-only shape required at "+pos.String())
		}
	} else {
		if tun, ok := s.config.Aspects[aspectName]; ok && !tun.MutableHooks {
			return storeerr.New(storeerr.HookRegisterError, "RegisterHook",
				"aspect "+aspectName+" does not accept mutable-entry hooks")
		}
		if _, ok := hook.(hooks.EntryHook); !ok {
			return storeerr.New(storeerr.HookRegisterError, "RegisterHook",
				hook.Name()+" does not provide the mutable-entry shape required at "+pos.String())
		}
	}
	return s.groups[pos].Register(aspectName, hook, s.config.HooksConfig())
}

// Root returns the store's absolute root directory.
func (s *Store) Root() string { return s.root }

// canonicalize projects id onto the store's root, the first step of
// every public operation.
func (s *Store) canonicalize(id storeid.ID) storeid.ID {
	return id.WithBase(s.root)
}

func (s *Store) path(id storeid.ID) (string, error) {
	return id.IntoPathBuf()
}

// Unload fires the StoreUnload aspect group on every StoreId still
// resident in the cache, then tears the cache down, releasing every
// Handle (and, for the real backend, every advisory file lock) it
// holds. Call this at process shutdown.
func (s *Store) Unload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.groups[hooks.StoreUnload]
	for key, ce := range s.cache {
		id, err := storeid.New("", key)
		if err == nil {
			if abort, cont := group.RunID(ctx, s.canonicalize(id)); abort != nil {
				logging.Warnf("store-unload hook aborted for %q: %v", key, abort)
			} else {
				for _, c := range cont {
					logging.Warnf("store-unload hook continue-error for %q: %v", key, c)
				}
			}
		}
		if ce.handle != nil {
			if err := ce.handle.Close(); err != nil {
				logging.Warnf("releasing lock for %q: %v", key, err)
			}
		}
	}
	s.cache = map[string]*cacheEntry{}
}

// Exists satisfies storeid.Existence against this store's backend.
func (s *Store) Exists(path string) (bool, error) {
	return s.backend.Exists(path)
}
