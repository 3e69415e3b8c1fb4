// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package anchor implements the per-document anchor-name <-> small-integer-
// id table. Grounded on go.yaml.in/yaml/v2's anchor bookkeeping inside Parser
// (internal/libyaml/parser.go's alias/anchor handling keys anchors by name
// for the lifetime of one document), generalized to integer ids.
package anchor

// ID is an opaque small integer naming an anchor, valid only within the
// document it was declared in.
type ID int32

// None is the zero value: "no anchor set".
const None ID = 0

// Table maps anchor names to ids for the current document.
type Table struct {
	byName map[string]ID
	next   ID
}

// New returns an empty Table.
func New() *Table {
	return &Table{byName: map[string]ID{}, next: 1}
}

// Declare assigns a fresh id to name, overwriting any earlier binding under
// the same name. A later alias to name resolves to this new id, even if an
// earlier node anchored under the same name still exists in the stream.
func (t *Table) Declare(name string) ID {
	id := t.next
	t.next++
	t.byName[name] = id
	return id
}

// Lookup returns the id currently bound to name, if any.
func (t *Table) Lookup(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Reset clears all bindings. Called at every document boundary, since
// anchors are scoped to the document that declares them.
func (t *Table) Reset() {
	t.byName = map[string]ID{}
	t.next = 1
}
