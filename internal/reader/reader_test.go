// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizesLineBreaks(t *testing.T) {
	r, err := New(strings.NewReader("a\r\nb\rc\nd"))
	require.NoError(t, err)

	var got []rune
	for !r.AtEOF() {
		got = append(got, r.Peek())
		r.Advance()
	}
	require.Equal(t, "a\nb\nc\nd", string(got))
}

func TestStripsUTF8BOM(t *testing.T) {
	r, err := New(strings.NewReader("\xEF\xBB\xBFhello"))
	require.NoError(t, err)
	require.Equal(t, 'h', r.Peek())
}

func TestRejectsUTF16BOM(t *testing.T) {
	_, err := New(strings.NewReader("\xFF\xFEh\x00"))
	require.Error(t, err)
}

func TestMarkTracksLineAndColumn(t *testing.T) {
	r, err := New(strings.NewReader("ab\ncd"))
	require.NoError(t, err)

	r.Advance() // consume 'a'
	r.Advance() // consume 'b'
	m := r.Mark()
	require.Equal(t, 1, m.Line)
	require.Equal(t, 3, m.Column)
	require.Equal(t, "ab", m.LineContent)

	r.Advance() // consume '\n', now on line 2
	m = r.Mark()
	require.Equal(t, 2, m.Line)
	require.Equal(t, 1, m.Column)
	require.Equal(t, "cd", m.LineContent)
}

func TestPeekAtLookahead(t *testing.T) {
	r, err := New(strings.NewReader("abc"))
	require.NoError(t, err)
	require.Equal(t, 'a', r.Peek())
	require.Equal(t, 'b', r.PeekAt(1))
	require.Equal(t, 'c', r.PeekAt(2))
	require.Equal(t, rune(-1), r.PeekAt(3))
}
