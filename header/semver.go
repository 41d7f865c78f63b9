// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
	"strconv"
	"strings"
)

// parsedVersion is the minimal decomposition of a semantic-version
// string Header.Verify needs: the three required numeric components
// plus whatever pre-release/metadata suffix followed them, so Verify
// can reject a suffix's presence without this package needing to judge
// its internal validity.
type parsedVersion struct {
	major, minor, patch int64
	preRelease          string
	metadata            string
}

// parseSemVer parses a MAJOR.MINOR.PATCH[-pre][+meta] string by hand,
// in the same scanning style as ParseText's value parser: split off
// the metadata suffix at the first '+', the pre-release suffix at the
// first '-', then require exactly three dot-separated non-negative
// integers in what remains.
func parseSemVer(s string) (parsedVersion, error) {
	var v parsedVersion

	s, v.metadata = cutFirst(s, '+')
	s, v.preRelease = cutFirst(s, '-')

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("%q must have exactly major.minor.patch components", s)
	}

	nums := make([]int64, 3)
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 || p == "" {
			return v, fmt.Errorf("component %q is not a non-negative integer", p)
		}
		nums[i] = n
	}
	v.major, v.minor, v.patch = nums[0], nums[1], nums[2]
	return v, nil
}

// cutFirst splits s at the first occurrence of sep, returning the part
// before it and the part after; if sep does not occur, after is empty.
func cutFirst(s string, sep byte) (before, after string) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
