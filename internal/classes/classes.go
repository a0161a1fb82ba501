// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classes maintains the ordered class index shared across a batch
// and writes it out as classes.txt.
package classes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the class index file.
const FileName = "classes.txt"

// Index maps class names to ids in first-seen order. An id, once
// assigned, never changes. The zero value is not usable; call New.
type Index struct {
	ids   map[string]int
	names []string
}

// New returns an empty Index.
func New() *Index {
	return &Index{ids: make(map[string]int)}
}

// ID returns the id for name, appending name to the index if it has not
// been seen before.
func (x *Index) ID(name string) int {
	if id, ok := x.ids[name]; ok {
		return id
	}
	id := len(x.names)
	x.ids[name] = id
	x.names = append(x.names, name)
	return id
}

// Lookup returns the id for name without modifying the index.
func (x *Index) Lookup(name string) (int, bool) {
	id, ok := x.ids[name]
	return id, ok
}

// Len returns the number of distinct classes.
func (x *Index) Len() int {
	return len(x.names)
}

// Names returns a copy of the class names ordered by id.
func (x *Index) Names() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

// WriteFile writes the index to dir/classes.txt, one name per line, and
// returns the path written.
func (x *Index) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating classes directory: %w", err)
	}

	var b strings.Builder
	for _, name := range x.names {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Tx assigns ids tentatively against an Index. Names first seen through
// the Tx receive the ids they would get from Index.ID, but the Index is
// only extended on Commit. A Tx abandoned without Commit leaves the Index
// untouched.
type Tx struct {
	x       *Index
	pending map[string]int
	added   []string
}

// Begin starts a Tx on x. Other calls to x.ID must not be made while the
// Tx is open.
func (x *Index) Begin() *Tx {
	return &Tx{x: x, pending: make(map[string]int)}
}

// ID returns the id name has, or will have once the Tx commits.
func (t *Tx) ID(name string) int {
	if id, ok := t.x.ids[name]; ok {
		return id
	}
	if id, ok := t.pending[name]; ok {
		return id
	}
	id := len(t.x.names) + len(t.added)
	t.pending[name] = id
	t.added = append(t.added, name)
	return id
}

// Commit appends the names first seen through t to the Index.
func (t *Tx) Commit() {
	for _, name := range t.added {
		t.x.ID(name)
	}
	t.added = nil
	t.pending = make(map[string]int)
}
