// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package mark tracks source positions for error reporting.
package mark

import (
	"fmt"
	"strings"
)

// Mark identifies a single position in a source stream: a 1-based line, a
// 1-based column, and the full text of the line the position falls on, so
// an error can render a caret under the offending column.
type Mark struct {
	Line       int
	Column     int
	LineContent string
}

// String renders the mark the way go.yaml.in/yaml/v2's own Mark.String does:
// "line N, column M". Used only for short contexts; callers that need the
// caret-under-the-source rendering should use Caret.
func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&b, ", column %d", m.Column)
	}
	return b.String()
}

// Caret renders the offending line followed by a line with a caret (^)
// under the reported column.
func (m Mark) Caret() string {
	if m.Line == 0 {
		return ""
	}
	col := m.Column
	if col < 1 {
		col = 1
	}
	pad := strings.Repeat(" ", col-1)
	return m.LineContent + "\n" + pad + "^"
}
