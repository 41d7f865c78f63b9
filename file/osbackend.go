// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package file

import (
	"io"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/imag-go/entrystore/storeerr"
)

// OSBackend is the real, disk-backed Backend, built on
// github.com/spf13/afero's OS filesystem so the store's I/O surface
// stays mockable independent of afero.MemMapFs (used by MemBackend).
type OSBackend struct {
	fs afero.Fs
}

// NewOSBackend returns a Backend rooted at the real filesystem.
func NewOSBackend() *OSBackend {
	return &OSBackend{fs: afero.NewOsFs()}
}

func (b *OSBackend) GetContents(path string) (string, error) {
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", storeerr.Wrap(storeerr.FileNotFound, "GetContents", err)
		}
		return "", wrapIOErr("GetContents", path, err)
	}
	return string(data), nil
}

func (b *OSBackend) WriteContents(path string, content string) error {
	if err := b.fs.MkdirAll(parentDir(path), 0o755); err != nil {
		return wrapIOErr("WriteContents", path, err)
	}
	if err := afero.WriteFile(b.fs, path, []byte(content), 0o644); err != nil {
		return wrapIOErr("WriteContents", path, err)
	}
	return nil
}

func (b *OSBackend) CreateDirAll(path string) error {
	if err := b.fs.MkdirAll(path, 0o755); err != nil {
		return storeerr.Wrap(storeerr.StorePathCreate, "CreateDirAll", err)
	}
	return nil
}

func (b *OSBackend) Copy(src, dst string) error {
	if ok, _ := b.Exists(dst); ok {
		return storeerr.New(storeerr.EntryAlreadyExists, "Copy", dst)
	}
	data, err := afero.ReadFile(b.fs, src)
	if err != nil {
		return wrapIOErr("Copy", src, err)
	}
	if err := b.fs.MkdirAll(parentDir(dst), 0o755); err != nil {
		return wrapIOErr("Copy", dst, err)
	}
	if err := afero.WriteFile(b.fs, dst, data, 0o644); err != nil {
		return wrapIOErr("Copy", dst, err)
	}
	return nil
}

func (b *OSBackend) Rename(src, dst string) error {
	if ok, _ := b.Exists(dst); ok {
		return storeerr.New(storeerr.EntryAlreadyExists, "Rename", dst)
	}
	if err := b.fs.MkdirAll(parentDir(dst), 0o755); err != nil {
		return wrapIOErr("Rename", dst, err)
	}
	if err := b.fs.Rename(src, dst); err != nil {
		return storeerr.Wrap(storeerr.EntryRenameError, "Rename", err)
	}
	return nil
}

func (b *OSBackend) Remove(path string) error {
	if err := b.fs.Remove(path); err != nil {
		return wrapIOErr("Remove", path, err)
	}
	return nil
}

func (b *OSBackend) Exists(path string) (bool, error) {
	ok, err := afero.Exists(b.fs, path)
	if err != nil {
		return false, wrapIOErr("Exists", path, err)
	}
	return ok, nil
}

func (b *OSBackend) IsDir(path string) (bool, error) {
	ok, err := afero.IsDir(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, wrapIOErr("IsDir", path, err)
	}
	return ok, nil
}

func (b *OSBackend) Walk(root string, fn func(path string, isDir bool) error) error {
	if ok, _ := b.Exists(root); !ok {
		return nil
	}
	err := afero.Walk(b.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		return fn(path, info.IsDir())
	})
	if err != nil {
		return wrapIOErr("Walk", root, err)
	}
	return nil
}

// acquire takes an advisory exclusive lock on path via
// github.com/gofrs/flock, creating the file (and its parent
// directory) if it does not exist yet so a lock can be taken before
// the entry's first write.
func (b *OSBackend) acquire(path string) (io.Closer, error) {
	if err := b.fs.MkdirAll(parentDir(path), 0o755); err != nil {
		return nil, wrapIOErr("acquire", path, err)
	}
	lk := flock.New(path)
	if err := lk.Lock(); err != nil {
		return nil, storeerr.Wrap(storeerr.FileError, "acquire", err)
	}
	return lockCloser{lk}, nil
}

type lockCloser struct{ lk *flock.Flock }

func (l lockCloser) Close() error { return l.lk.Unlock() }

func parentDir(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	if i < 0 {
		return "."
	}
	return path[:i]
}
