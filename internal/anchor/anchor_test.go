// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := New()
	id := tbl.Declare("x")
	got, ok := tbl.Lookup("x")
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestLookupUnknown(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("missing")
	require.False(t, ok)
}

func TestDeclareOverwritesPreviousBinding(t *testing.T) {
	tbl := New()
	first := tbl.Declare("x")
	second := tbl.Declare("x")
	require.NotEqual(t, first, second)
	got, ok := tbl.Lookup("x")
	require.True(t, ok)
	require.Equal(t, second, got)
}

func TestResetClearsBindings(t *testing.T) {
	tbl := New()
	tbl.Declare("x")
	tbl.Reset()
	_, ok := tbl.Lookup("x")
	require.False(t, ok)
}

func TestIdsAreUniquePerDocument(t *testing.T) {
	tbl := New()
	a := tbl.Declare("a")
	b := tbl.Declare("b")
	require.NotEqual(t, a, b)
	tbl.Reset()
	a2 := tbl.Declare("a")
	require.Equal(t, a, a2) // ids are free to be reused after reset
}
