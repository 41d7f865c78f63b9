// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hooks

import (
	"context"

	"github.com/google/uuid"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/logging"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// Group is the ordered list of named aspects registered at a single
// Position. A Store owns eleven of these, one per Position.
type Group struct {
	pos     Position
	aspects []*Aspect
	byName  map[string]*Aspect
}

// NewGroup returns an empty Group for pos, seeded with named aspects
// in the given declaration order (an aspect referenced by
// configuration but never declared here cannot be registered into,
// and Register reports that as AspectNameNotFound).
func NewGroup(pos Position, aspectNames []string) *Group {
	g := &Group{pos: pos, byName: map[string]*Aspect{}}
	for _, name := range aspectNames {
		a := NewAspect(name)
		g.aspects = append(g.aspects, a)
		g.byName[name] = a
	}
	return g
}

// Register locates aspectName within the group, pulls its per-hook
// configuration from cfg, and appends hook to it. It fails with
// AspectNameNotFound if the aspect was not declared when the group
// was constructed.
func (g *Group) Register(aspectName string, hook Hook, cfg *header.Table) error {
	a, ok := g.byName[aspectName]
	if !ok {
		return storeerr.New(storeerr.AspectNameNotFound, "Register", aspectName)
	}
	return a.Register(hook, cfg)
}

// RunID runs every aspect in this group against id, in declaration
// order. The first abort error stops the pipeline; continue errors
// from any aspect are all returned for the caller to log. Each
// invocation logs its debug-level start tagged with a fresh run id
// and its position; the returned continue errors do not carry that
// run id.
func (g *Group) RunID(ctx context.Context, id storeid.ID) (abortErr error, continueErrs []error) {
	runID := uuid.NewString()
	logging.WithFields(logging.Fields{"pipeline_run_id": runID, "position": g.pos.String()}).
		Debugf("running hook pipeline for %q", id.Path())
	for _, a := range g.aspects {
		abort, cont := a.RunID(ctx, id)
		continueErrs = append(continueErrs, cont...)
		if abort != nil {
			return abort, continueErrs
		}
	}
	return nil, continueErrs
}

// RunEntry runs every aspect in this group against e, in declaration
// order, tagged with a fresh run id as RunID does.
func (g *Group) RunEntry(ctx context.Context, e MutableEntry) (abortErr error, continueErrs []error) {
	runID := uuid.NewString()
	logging.WithFields(logging.Fields{"pipeline_run_id": runID, "position": g.pos.String()}).
		Debug("running hook pipeline for a mutable entry")
	for _, a := range g.aspects {
		abort, cont := a.RunEntry(ctx, e)
		continueErrs = append(continueErrs, cont...)
		if abort != nil {
			return abort, continueErrs
		}
	}
	return nil, continueErrs
}
