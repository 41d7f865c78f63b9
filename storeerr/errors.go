// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package storeerr defines the error vocabulary shared by every
// component of the entry store: a flat, enumerated error-code style
// with cause-chaining, since the store must preserve I/O and
// hook-pipeline causes rather than discard them.
package storeerr

import "fmt"

// Kind enumerates the error classes the store can return.
type Kind int

const (
	// Other is an unclassified error.
	Other Kind = iota

	// Structural errors.
	MalformedEntry
	HeaderError
	HeaderInconsistency
	InvalidID
	EncodingError

	// Cache/state errors.
	EntryAlreadyExists
	EntryAlreadyBorrowed
	IDLocked
	IDNotFound
	LockPoisoned

	// I/O errors.
	FileNotFound
	FileError
	StorePathCreate
	StorePathExists
	CreateStoreDirDenied
	EntryRenameError

	// Hook errors.
	PreHookExecuteError
	PostHookExecuteError
	HookExecutionError
	HookRegisterError
	AspectNameNotFound

	// Call-site wrappers.
	CreateCallError
	RetrieveCallError
	GetCallError
	UpdateCallError
	DeleteCallError
	MoveCallError
	MoveByIDCallError
	RetrieveCopyCallError
	RetrieveForModuleCallError
	WalkCallError
)

var kindNames = map[Kind]string{
	Other:                      "other",
	MalformedEntry:             "malformed entry",
	HeaderError:                "header error",
	HeaderInconsistency:        "header inconsistency",
	InvalidID:                  "invalid id",
	EncodingError:              "encoding error",
	EntryAlreadyExists:         "entry already exists",
	EntryAlreadyBorrowed:       "entry already borrowed",
	IDLocked:                   "id locked",
	IDNotFound:                 "id not found",
	LockPoisoned:               "lock poisoned",
	FileNotFound:               "file not found",
	FileError:                  "file error",
	StorePathCreate:            "store path create",
	StorePathExists:            "store path exists",
	CreateStoreDirDenied:       "create store dir denied",
	EntryRenameError:           "entry rename error",
	PreHookExecuteError:        "pre-hook execute error",
	PostHookExecuteError:       "post-hook execute error",
	HookExecutionError:         "hook execution error",
	HookRegisterError:          "hook register error",
	AspectNameNotFound:         "aspect name not found",
	CreateCallError:            "create call error",
	RetrieveCallError:          "retrieve call error",
	GetCallError:               "get call error",
	UpdateCallError:            "update call error",
	DeleteCallError:            "delete call error",
	MoveCallError:              "move call error",
	MoveByIDCallError:          "move-by-id call error",
	RetrieveCopyCallError:      "retrieve-copy call error",
	RetrieveForModuleCallError: "retrieve-for-module call error",
	WalkCallError:              "walk call error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by every store operation. It
// chains an optional cause and carries the operation name the error
// originated from, so callers can discriminate by Kind without
// walking the whole chain.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error

	// Continue marks an error as non-aborting. The hooks pipeline
	// does not read it; a hook classifies its failure through
	// hooks.HookResult.Continue.
	Continue bool
}

// New constructs an Error with no cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap constructs an Error that chains cause.
func Wrap(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is/errors.As to see through the chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is a *Error of the given kind, anywhere in
// its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if se, ok := err.(*Error); ok {
			if se.Kind == kind {
				return true
			}
			err = se.Cause
			continue
		}
		break
	}
	return false
}

// WrapCall wraps err, if non-nil, in a call-site Error of the given
// kind, preserving err as the cause. If err is already a *Error of
// exactly that kind, it is returned unchanged so wrapping stays
// idempotent at repeated call boundaries.
func WrapCall(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*Error); ok && se.Kind == kind {
		return se
	}
	return Wrap(kind, op, err)
}
