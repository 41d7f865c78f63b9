// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package store

import (
	"context"

	"github.com/imag-go/entrystore/entry"
	"github.com/imag-go/entrystore/file"
	"github.com/imag-go/entrystore/hooks"
	"github.com/imag-go/entrystore/logging"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// Create runs pre-create hooks on id, then inserts a fresh, Borrowed
// StoreEntry and returns it wrapped in a LockedEntry. If post-create
// hooks abort, the error is returned alongside the still-valid
// LockedEntry: the cache entry survives a post-create failure and is
// recoverable by a later Get.
func (s *Store) Create(ctx context.Context, id storeid.ID) (*LockedEntry, error) {
	id = s.canonicalize(id)
	key := id.Path()

	if abort, cont := s.groups[hooks.PreCreate].RunID(ctx, id); abort != nil {
		return nil, storeerr.WrapCall(storeerr.CreateCallError, "Create", wrapHookErr(storeerr.PreHookExecuteError, "Create", abort))
	} else {
		logContinueErrs("Create", cont)
	}

	path, err := s.path(id)
	if err != nil {
		return nil, storeerr.WrapCall(storeerr.CreateCallError, "Create", err)
	}

	s.mu.Lock()
	if _, exists := s.cache[key]; exists {
		s.mu.Unlock()
		return nil, storeerr.WrapCall(storeerr.CreateCallError, "Create", storeerr.New(storeerr.EntryAlreadyExists, "Create", key))
	}
	handle := file.NewHandle(s.backend, path)
	s.cache[key] = &cacheEntry{state: borrowed, handle: handle}
	s.mu.Unlock()

	le := &LockedEntry{store: s, id: key, entry: entry.New(id)}

	if abort, cont := s.groups[hooks.PostCreate].RunEntry(ctx, le); abort != nil {
		return le, storeerr.WrapCall(storeerr.CreateCallError, "Create", wrapHookErr(storeerr.PostHookExecuteError, "Create", abort))
	} else {
		logContinueErrs("Create", cont)
	}

	return le, nil
}

// Retrieve runs pre-retrieve hooks on id, materializes the StoreEntry
// if absent (synthesizing a default entry on FileNotFound), flips it
// to Borrowed, and returns it wrapped in a LockedEntry.
func (s *Store) Retrieve(ctx context.Context, id storeid.ID) (*LockedEntry, error) {
	id = s.canonicalize(id)
	key := id.Path()

	if abort, cont := s.groups[hooks.PreRetrieve].RunID(ctx, id); abort != nil {
		return nil, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", wrapHookErr(storeerr.PreHookExecuteError, "Retrieve", abort))
	} else {
		logContinueErrs("Retrieve", cont)
	}

	path, err := s.path(id)
	if err != nil {
		return nil, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", err)
	}

	s.mu.Lock()
	ce, exists := s.cache[key]
	if exists && ce.state == borrowed {
		s.mu.Unlock()
		return nil, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", storeerr.New(storeerr.EntryAlreadyBorrowed, "Retrieve", key))
	}

	var handle *file.Handle
	if exists {
		handle = ce.handle
	} else {
		handle = file.NewHandle(s.backend, path)
	}

	text, err := handle.GetContents()
	var e entry.Entry
	if storeerr.Is(err, storeerr.FileNotFound) {
		e = entry.New(id)
	} else if err != nil {
		s.mu.Unlock()
		return nil, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", err)
	} else {
		e, err = entry.FromText(id, text)
		if err != nil {
			s.mu.Unlock()
			return nil, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", err)
		}
	}

	s.cache[key] = &cacheEntry{state: borrowed, handle: handle}
	s.mu.Unlock()

	le := &LockedEntry{store: s, id: key, entry: e}

	if abort, cont := s.groups[hooks.PostRetrieve].RunEntry(ctx, le); abort != nil {
		return le, storeerr.WrapCall(storeerr.RetrieveCallError, "Retrieve", wrapHookErr(storeerr.PostHookExecuteError, "Retrieve", abort))
	} else {
		logContinueErrs("Retrieve", cont)
	}

	return le, nil
}

// Get delegates to Retrieve, except it returns (nil, nil) rather than
// creating anything when neither the cache nor backing storage knows
// id: Get never implicitly creates.
func (s *Store) Get(ctx context.Context, id storeid.ID) (*LockedEntry, error) {
	canon := s.canonicalize(id)
	key := canon.Path()

	s.mu.RLock()
	_, resident := s.cache[key]
	s.mu.RUnlock()

	if !resident {
		path, err := s.path(canon)
		if err != nil {
			return nil, storeerr.WrapCall(storeerr.GetCallError, "Get", err)
		}
		ok, err := s.backend.Exists(path)
		if err != nil {
			return nil, storeerr.WrapCall(storeerr.GetCallError, "Get", err)
		}
		if !ok {
			return nil, nil
		}
	}

	le, err := s.Retrieve(ctx, id)
	if err != nil {
		return nil, storeerr.WrapCall(storeerr.GetCallError, "Get", err)
	}
	return le, nil
}

// Update runs pre/post-update hooks around writing le's entry back
// through the File Abstraction. It asserts le's cache entry is
// Borrowed (a violation is a programming error, reported as
// LockPoisoned since this module has no separate kind for it) and
// fails HeaderInconsistency if the entry's header no longer verifies.
func (s *Store) Update(ctx context.Context, le *LockedEntry) error {
	s.mu.RLock()
	ce, exists := s.cache[le.id]
	s.mu.RUnlock()
	if !exists || ce.state != borrowed {
		return storeerr.WrapCall(storeerr.UpdateCallError, "Update", storeerr.New(storeerr.LockPoisoned, "Update", le.id))
	}

	if abort, cont := s.groups[hooks.PreUpdate].RunEntry(ctx, le); abort != nil {
		return storeerr.WrapCall(storeerr.UpdateCallError, "Update", wrapHookErr(storeerr.PreHookExecuteError, "Update", abort))
	} else {
		logContinueErrs("Update", cont)
	}

	if err := le.entry.Verify(); err != nil {
		return storeerr.WrapCall(storeerr.UpdateCallError, "Update", err)
	}

	if err := ce.handle.WriteContents(le.entry.ToText()); err != nil {
		return storeerr.WrapCall(storeerr.UpdateCallError, "Update", err)
	}

	if abort, cont := s.groups[hooks.PostUpdate].RunEntry(ctx, le); abort != nil {
		return storeerr.WrapCall(storeerr.UpdateCallError, "Update", wrapHookErr(storeerr.PostHookExecuteError, "Update", abort))
	} else {
		logContinueErrs("Update", cont)
	}

	return nil
}

// Delete runs pre-delete hooks, removes the cache record and backing
// file, then runs post-delete hooks.
func (s *Store) Delete(ctx context.Context, id storeid.ID) error {
	id = s.canonicalize(id)
	key := id.Path()

	if abort, cont := s.groups[hooks.PreDelete].RunID(ctx, id); abort != nil {
		return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", wrapHookErr(storeerr.PreHookExecuteError, "Delete", abort))
	} else {
		logContinueErrs("Delete", cont)
	}

	path, err := s.path(id)
	if err != nil {
		return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", err)
	}

	s.mu.Lock()
	ce, exists := s.cache[key]
	if !exists {
		if ok, _ := s.backend.Exists(path); !ok {
			s.mu.Unlock()
			return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", storeerr.New(storeerr.FileNotFound, "Delete", key))
		}
	} else if ce.state == borrowed {
		s.mu.Unlock()
		return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", storeerr.New(storeerr.IDLocked, "Delete", key))
	}
	delete(s.cache, key)
	s.mu.Unlock()

	if exists && ce.handle != nil {
		if err := ce.handle.Close(); err != nil {
			logging.Warnf("releasing lock for %q: %v", key, err)
		}
	}

	if err := s.backend.Remove(path); err != nil {
		return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", err)
	}

	if abort, cont := s.groups[hooks.PostDelete].RunID(ctx, id); abort != nil {
		return storeerr.WrapCall(storeerr.DeleteCallError, "Delete", wrapHookErr(storeerr.PostHookExecuteError, "Delete", abort))
	} else {
		logContinueErrs("Delete", cont)
	}

	return nil
}

// RetrieveCopy returns a read-only duplicate of the entry at id. It
// fails IdLocked if id is currently borrowed, to avoid serving stale
// bytes while a writer holds the handle, fails FileNotFound if id has
// no backing file, and never alters cache state.
func (s *Store) RetrieveCopy(id storeid.ID) (entry.Entry, error) {
	id = s.canonicalize(id)
	key := id.Path()

	s.mu.RLock()
	ce, exists := s.cache[key]
	if exists && ce.state == borrowed {
		s.mu.RUnlock()
		return entry.Entry{}, storeerr.WrapCall(storeerr.RetrieveCopyCallError, "RetrieveCopy", storeerr.New(storeerr.IDLocked, "RetrieveCopy", key))
	}
	s.mu.RUnlock()

	path, err := s.path(id)
	if err != nil {
		return entry.Entry{}, storeerr.WrapCall(storeerr.RetrieveCopyCallError, "RetrieveCopy", err)
	}
	text, err := s.backend.GetContents(path)
	if err != nil {
		return entry.Entry{}, storeerr.WrapCall(storeerr.RetrieveCopyCallError, "RetrieveCopy", err)
	}
	e, err := entry.FromText(id, text)
	if err != nil {
		return entry.Entry{}, storeerr.WrapCall(storeerr.RetrieveCopyCallError, "RetrieveCopy", err)
	}
	return e, nil
}

// SaveTo copies le's backing file to newID's path, firing post-move
// hooks on success. Cache state for newID is not materialized here.
func (s *Store) SaveTo(ctx context.Context, le *LockedEntry, newID storeid.ID) error {
	return s.copyOrMoveFile(ctx, le, newID, false)
}

// SaveAs is SaveTo plus removing the source file.
func (s *Store) SaveAs(ctx context.Context, le *LockedEntry, newID storeid.ID) error {
	return s.copyOrMoveFile(ctx, le, newID, true)
}

func (s *Store) copyOrMoveFile(ctx context.Context, le *LockedEntry, newID storeid.ID, deleteSource bool) error {
	newID = s.canonicalize(newID)
	srcPath, err := s.pathFromKey(le.id)
	if err != nil {
		return storeerr.WrapCall(storeerr.MoveCallError, "SaveTo", err)
	}
	dstPath, err := s.path(newID)
	if err != nil {
		return storeerr.WrapCall(storeerr.MoveCallError, "SaveTo", err)
	}

	if deleteSource {
		err = s.backend.Rename(srcPath, dstPath)
	} else {
		err = s.backend.Copy(srcPath, dstPath)
	}
	if err != nil {
		return storeerr.WrapCall(storeerr.MoveCallError, "SaveTo", err)
	}

	if abort, cont := s.groups[hooks.PostMove].RunID(ctx, newID); abort != nil {
		return storeerr.WrapCall(storeerr.MoveCallError, "SaveTo", wrapHookErr(storeerr.PostHookExecuteError, "SaveTo", abort))
	} else {
		logContinueErrs("SaveTo", cont)
	}
	return nil
}

// MoveByID runs pre-move hooks on oldID, renames the backing file, and
// atomically re-keys the cache record from oldID to newID, preserving
// its borrow state. A Handle addresses a path, so the record's handle
// on the old path is closed and replaced by one on the new path.
func (s *Store) MoveByID(ctx context.Context, oldID, newID storeid.ID) error {
	oldID = s.canonicalize(oldID)
	newID = s.canonicalize(newID)
	oldKey, newKey := oldID.Path(), newID.Path()

	if abort, cont := s.groups[hooks.PreMove].RunID(ctx, oldID); abort != nil {
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", wrapHookErr(storeerr.PreHookExecuteError, "MoveByID", abort))
	} else {
		logContinueErrs("MoveByID", cont)
	}

	oldPath, err := s.path(oldID)
	if err != nil {
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", err)
	}
	newPath, err := s.path(newID)
	if err != nil {
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", err)
	}

	s.mu.Lock()
	if _, exists := s.cache[newKey]; exists {
		s.mu.Unlock()
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", storeerr.New(storeerr.EntryAlreadyExists, "MoveByID", newKey))
	}
	oldCE, exists := s.cache[oldKey]
	if exists && oldCE.state == borrowed {
		s.mu.Unlock()
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", storeerr.New(storeerr.EntryAlreadyBorrowed, "MoveByID", oldKey))
	}

	if err := s.backend.Rename(oldPath, newPath); err != nil {
		s.mu.Unlock()
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", err)
	}
	if exists {
		delete(s.cache, oldKey)
		if err := oldCE.handle.Close(); err != nil {
			logging.Warnf("releasing lock for %q: %v", oldKey, err)
		}
		s.cache[newKey] = &cacheEntry{state: oldCE.state, handle: file.NewHandle(s.backend, newPath)}
	}
	s.mu.Unlock()

	if abort, cont := s.groups[hooks.PostMove].RunID(ctx, newID); abort != nil {
		return storeerr.WrapCall(storeerr.MoveByIDCallError, "MoveByID", wrapHookErr(storeerr.PostHookExecuteError, "MoveByID", abort))
	} else {
		logContinueErrs("MoveByID", cont)
	}

	return nil
}

func (s *Store) pathFromKey(key string) (string, error) {
	id, err := storeid.New("", key)
	if err != nil {
		return "", err
	}
	return s.path(s.canonicalize(id))
}

// releaseLocked performs the internal update-and-release le.Close
// delegates to: an Update (with pre/post-update hooks) that writes the
// entry back, followed by transitioning the cache state to Present.
// Write-back failures are logged, never returned, per the type's doc
// comment.
func (s *Store) releaseLocked(le *LockedEntry) {
	if err := s.Update(context.Background(), le); err != nil {
		logging.Warnf("releasing locked entry %q: write-back failed: %v", le.id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ce, ok := s.cache[le.id]; ok {
		ce.state = present
	}
}

func logContinueErrs(op string, errs []error) {
	for _, err := range errs {
		logging.Warnf("%s: continue-error from hook pipeline: %v", op, err)
	}
}

// wrapHookErr builds the hook-failure chain: a HookExecutionError
// wrapping the Pre/PostHookExecuteError wrapping the aborting hook's
// own error. The caller still wraps the result in its own call-site
// kind, so callers see e.g. CreateCallError > HookExecutionError >
// PreHookExecuteError with the hook's cause at the end.
func wrapHookErr(kind storeerr.Kind, op string, cause error) error {
	return storeerr.Wrap(storeerr.HookExecutionError, op, storeerr.Wrap(kind, op, cause))
}
