// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package file

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/imag-go/entrystore/storeerr"
)

// MemBackend is a deterministic, in-memory Backend built on
// github.com/spf13/afero's MemMapFs, for tests: no locking is needed
// since nothing outside the current process can observe it, so
// acquire is a no-op.
type MemBackend struct {
	fs afero.Fs
}

// NewMemBackend returns an empty in-memory Backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{fs: afero.NewMemMapFs()}
}

func (b *MemBackend) GetContents(path string) (string, error) {
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", storeerr.Wrap(storeerr.FileNotFound, "GetContents", err)
		}
		return "", wrapIOErr("GetContents", path, err)
	}
	return string(data), nil
}

func (b *MemBackend) WriteContents(path string, content string) error {
	if err := b.fs.MkdirAll(parentDir(path), 0o755); err != nil {
		return wrapIOErr("WriteContents", path, err)
	}
	if err := afero.WriteFile(b.fs, path, []byte(content), 0o644); err != nil {
		return wrapIOErr("WriteContents", path, err)
	}
	return nil
}

func (b *MemBackend) CreateDirAll(path string) error {
	if err := b.fs.MkdirAll(path, 0o755); err != nil {
		return storeerr.Wrap(storeerr.StorePathCreate, "CreateDirAll", err)
	}
	return nil
}

func (b *MemBackend) Copy(src, dst string) error {
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

func (b *MemBackend) Rename(src, dst string) error {
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

func (b *MemBackend) Remove(path string) error {
	if err := b.fs.Remove(path); err != nil {
		return wrapIOErr("Remove", path, err)
	}
	return nil
}

func (b *MemBackend) Exists(path string) (bool, error) {
	ok, err := afero.Exists(b.fs, path)
	if err != nil {
		return false, wrapIOErr("Exists", path, err)
	}
	return ok, nil
}

func (b *MemBackend) IsDir(path string) (bool, error) {
	ok, err := afero.IsDir(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, wrapIOErr("IsDir", path, err)
	}
	return ok, nil
}

func (b *MemBackend) Walk(root string, fn func(path string, isDir bool) error) error {
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

func (b *MemBackend) acquire(path string) (io.Closer, error) {
	return noopCloser{}, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
