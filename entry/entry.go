// Copyright 2026 The Imag-Go Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package entry implements the in-memory record a Store hands out: an
// identifier, a header, and free-form textual content, together with
// the full on-disk text (de)serialization for that triple.
package entry

import (
	"strings"

	"github.com/imag-go/entrystore/header"
	"github.com/imag-go/entrystore/storeerr"
	"github.com/imag-go/entrystore/storeid"
)

// fence is the delimiter line bracketing the header sub-document.
const fence = "---"

// Entry is a (location, header, content) triple, persisted as a single
// text file under the store root.
type Entry struct {
	location storeid.ID
	header   header.Header
	content  string
}

// New returns a fresh entry at id with the default header and empty
// content.
func New(id storeid.ID) Entry {
	return Entry{location: id, header: header.Default()}
}

// FromText parses the full fenced document format:
//
//	---
//	<header-text>
//	---
//	<content-text>
//
// The id is not read from the text; it is supplied by the caller and
// preserved on the returned Entry. Fails with MalformedEntry if the
// fences are absent or malformed, or HeaderError if the header
// sub-document does not parse.
func FromText(id storeid.ID, text string) (Entry, error) {
	h, content, err := splitFenced(text)
	if err != nil {
		return Entry{}, err
	}
	parsed, err := header.ParseText(h)
	if err != nil {
		return Entry{}, storeerr.Wrap(storeerr.HeaderError, "FromText", err)
	}
	return Entry{location: id, header: parsed, content: content}, nil
}

// splitFenced locates the first pair of "---" fence lines and returns
// the header sub-document and the trailing content. Inner whitespace
// around the fence lines is tolerated; the header may span any number
// of lines, including zero.
func splitFenced(text string) (headerText string, content string, err error) {
	lines := strings.Split(text, "\n")

	openIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == fence {
			openIdx = i
			break
		}
	}
	if openIdx < 0 {
		return "", "", storeerr.New(storeerr.MalformedEntry, "FromText", "missing opening \"---\" fence")
	}

	closeIdx := -1
	for i := openIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == fence {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return "", "", storeerr.New(storeerr.MalformedEntry, "FromText", "missing closing \"---\" fence")
	}

	headerText = strings.Join(lines[openIdx+1:closeIdx], "\n")
	content = strings.Join(lines[closeIdx+1:], "\n")
	return headerText, content, nil
}

// ToText serializes the entry into the fenced format. It is the left
// inverse of FromText on any entry whose header verifies (round-trip
// law): FromText(e.Location(), e.ToText()) yields an entry
// structurally equal to e, within the limits header.Header.ToText
// documents for the header.
func (e Entry) ToText() string {
	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteByte('\n')
	sb.WriteString(e.header.ToText())
	sb.WriteString(fence)
	sb.WriteByte('\n')
	sb.WriteString(e.content)
	return sb.String()
}

// Verify delegates to the header's own verification.
func (e Entry) Verify() error {
	return e.header.Verify()
}

// Location returns the entry's identifier.
func (e Entry) Location() storeid.ID { return e.location }

// Header returns an immutable view of the entry's header.
func (e Entry) Header() header.Header { return e.header }

// Content returns the entry's raw content.
func (e Entry) Content() string { return e.content }

// SetHeader replaces the entry's header.
func (e *Entry) SetHeader(h header.Header) { e.header = h }

// SetContent replaces the entry's content.
func (e *Entry) SetContent(content string) { e.content = content }

// Equal reports structural equality: same location, structurally
// equal header, identical content.
func (e Entry) Equal(other Entry) bool {
	return e.location.Equal(other.location) && e.header.Equal(other.header) && e.content == other.content
}
