// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package storeconfig parses the `store` configuration sub-tree: the
// same header.Value/Table grammar the entry format itself uses,
// recognizing implicit-create, the eleven ordered hook-aspect lists,
// per-aspect tunables, and per-hook configuration tables.
package storeconfig

import (
	"fmt"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/hooks"
	"github.com/imag-go/entrystore/logging"
)

// AspectTunables are the per-aspect tunables read from
// `aspects.<name>.{parallel,mutable_hooks}`. MutableHooks defaults to
// true for a declared aspect; setting it to false restricts the aspect
// to id-only hooks (store.RegisterHook enforces this). Parallel is
// accepted for compatibility but not honored: hooks within an aspect
// always run sequentially, in registration order.
type AspectTunables struct {
	Parallel     bool
	MutableHooks bool
}

// Config is the parsed `store` configuration sub-tree.
type Config struct {
	// ImplicitCreate permits store-root creation when missing.
	// Defaults to false.
	ImplicitCreate bool

	// HookAspects maps each hook Position to its declared, ordered
	// aspect names, read from the eleven
	// `{pre,post}-*-hook-aspects`/`store-unload-hook-aspects` keys.
	HookAspects map[hooks.Position][]string

	// Aspects maps an aspect name to its tunables, from
	// `aspects.<name>.*`.
	Aspects map[string]AspectTunables

	// Hooks is a table holding the raw `hooks.<hook-name>`
	// configuration sub-tree under its "hooks" key (see HooksConfig),
	// handed to hooks.Aspect.Register/ConfigurableHook.SetConfig.
	Hooks *header.Table
}

var positionKeys = map[hooks.Position]string{
	hooks.StoreUnload:  "store-unload-hook-aspects",
	hooks.PreCreate:    "pre-create-hook-aspects",
	hooks.PostCreate:   "post-create-hook-aspects",
	hooks.PreRetrieve:  "pre-retrieve-hook-aspects",
	hooks.PostRetrieve: "post-retrieve-hook-aspects",
	hooks.PreUpdate:    "pre-update-hook-aspects",
	hooks.PostUpdate:   "post-update-hook-aspects",
	hooks.PreDelete:    "pre-delete-hook-aspects",
	hooks.PostDelete:   "post-delete-hook-aspects",
	hooks.PreMove:      "pre-move-hook-aspects",
	hooks.PostMove:     "post-move-hook-aspects",
}

// Parse reads a Config out of the `store` sub-tree of a header.Table
// (typically Header.Root.GetTable("store") of the store's
// configuration file). Unknown keys are logged at Warn and ignored,
// rather than failing the parse: an unrecognized key is far more
// likely a typo or a forward-compatible addition than a reason to
// refuse to start the store.
func Parse(root *header.Table) (*Config, error) {
	cfg := &Config{
		HookAspects: map[hooks.Position][]string{},
		Aspects:     map[string]AspectTunables{},
		Hooks:       header.NewTable(),
	}

	if v, ok := root.Get("implicit-create"); ok {
		b, ok := v.(header.Bool)
		if !ok {
			return nil, fmt.Errorf("store.implicit-create must be a bool")
		}
		cfg.ImplicitCreate = bool(b)
	}

	for pos, key := range positionKeys {
		v, ok := root.Get(key)
		if !ok {
			continue
		}
		arr, ok := v.(header.Array)
		if !ok {
			return nil, fmt.Errorf("store.%s must be an array of aspect names", key)
		}
		names, ok := arr.Strings()
		if !ok {
			return nil, fmt.Errorf("store.%s must be an array of strings", key)
		}
		cfg.HookAspects[pos] = names
	}

	if aspects, ok := root.GetTable("aspects"); ok {
		for _, name := range aspects.Keys() {
			sub, ok := aspects.GetTable(name)
			if !ok {
				continue
			}
			t := AspectTunables{MutableHooks: true}
			if v, ok := sub.Get("parallel"); ok {
				if b, ok := v.(header.Bool); ok {
					t.Parallel = bool(b)
				}
			}
			if t.Parallel {
				logging.Warnf("aspect %q requests parallel hook execution; hooks always run sequentially", name)
			}
			if v, ok := sub.Get("mutable_hooks"); ok {
				if b, ok := v.(header.Bool); ok {
					t.MutableHooks = bool(b)
				}
			}
			cfg.Aspects[name] = t
		}
	}

	if h, ok := root.GetTable("hooks"); ok {
		cfg.Hooks.Set("hooks", h)
	}

	knownTopLevel := map[string]bool{
		"implicit-create": true,
		"aspects":         true,
		"hooks":           true,
	}
	for _, key := range positionKeys {
		knownTopLevel[key] = true
	}
	for _, k := range root.Keys() {
		if !knownTopLevel[k] {
			logging.Warnf("unrecognized store configuration key %q ignored", k)
		}
	}

	return cfg, nil
}

// BuildGroup constructs a hooks.Group for pos, seeded with this
// config's declared aspect names for that position.
func (c *Config) BuildGroup(pos hooks.Position) *hooks.Group {
	return hooks.NewGroup(pos, c.HookAspects[pos])
}

// HooksConfig returns the per-hook configuration table suitable for
// hooks.Aspect.Register (it wraps the raw `hooks.<name>` tree under a
// synthetic "hooks" key so Register's own `cfg.GetTable("hooks")`
// lookup finds it uniformly whether or not a store configuration was
// supplied at all).
func (c *Config) HooksConfig() *header.Table {
	return c.Hooks
}
