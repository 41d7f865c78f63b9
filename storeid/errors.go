// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package storeid

import "errors"

var (
	errEmptyPath       = errors.New("path is empty")
	errAbsolutePath    = errors.New("path must be relative")
	errParentTraversal = errors.New("path must not contain \".\" or \"..\" components")
)
