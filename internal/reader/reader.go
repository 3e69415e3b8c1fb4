// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package reader wraps a byte stream for the lexer: it normalizes line
// endings, tracks line/column, and exposes the current source line for
// error reporting. Grounded on go.yaml.in/yaml/v2's dual string/io.Reader input
// setup (internal/libyaml/api.go SetInputString/SetInputReader) and its
// ReaderError wrapping (internal/libyaml/errors.go).
package reader

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/yamlcore/core/internal/mark"
)

// Error reports a failure reading or decoding the input stream.
type Error struct {
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var errInvalidUTF8 = errors.New("invalid UTF-8 byte sequence")
var errUTF16BOM = errors.New("UTF-16 input is not supported, only UTF-8")

const eof = -1

// Reader exposes peek/advance over a normalized UTF-8 rune stream.
type Reader struct {
	data []byte // fully read, CR/LF-normalized, BOM-stripped input
	pos  int     // byte offset of the lookahead rune
	line int     // 1-based
	col  int     // 1-based

	lineStart int // byte offset where the current line began
}

// New reads all of r, normalizes line endings to '\n', strips a leading
// UTF-8 BOM, and returns a Reader positioned before the first rune.
// A UTF-16 BOM or invalid UTF-8 is reported as *Error immediately: this
// reader accepts UTF-8 input only, it does not transcode.
func New(r io.Reader) (*Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Offset: len(raw), Err: err}
	}
	return NewFromBytes(raw)
}

// NewFromBytes builds a Reader directly from an in-memory buffer.
func NewFromBytes(raw []byte) (*Reader, error) {
	if len(raw) >= 2 && (raw[0] == 0xFF && raw[1] == 0xFE || raw[0] == 0xFE && raw[1] == 0xFF) {
		return nil, &Error{Offset: 0, Err: errUTF16BOM}
	}
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		raw = raw[3:]
	}
	if !utf8.Valid(raw) {
		return nil, &Error{Offset: 0, Err: errInvalidUTF8}
	}
	rd := &Reader{
		data: normalizeLineBreaks(raw),
		line: 1,
		col:  1,
	}
	return rd, nil
}

// normalizeLineBreaks rewrites CR and CRLF to LF.
func normalizeLineBreaks(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c == '\r' {
			out = append(out, '\n')
			if i+1 < len(in) && in[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// Peek returns the rune at the current position without consuming it, and
// eof (-1) once the stream is exhausted.
func (r *Reader) Peek() rune {
	if r.pos >= len(r.data) {
		return eof
	}
	c, _ := utf8.DecodeRune(r.data[r.pos:])
	return c
}

// PeekAt returns the rune n positions ahead of the current one (0 == Peek),
// used by the lexer for the multi-character lookahead YAML's grammar needs
// (e.g. distinguishing "--" from "---").
func (r *Reader) PeekAt(n int) rune {
	pos := r.pos
	for ; n > 0; n-- {
		if pos >= len(r.data) {
			return eof
		}
		_, size := utf8.DecodeRune(r.data[pos:])
		pos += size
	}
	if pos >= len(r.data) {
		return eof
	}
	c, _ := utf8.DecodeRune(r.data[pos:])
	return c
}

// Advance consumes the current rune and updates line/column bookkeeping.
// Advancing past EOF is a no-op.
func (r *Reader) Advance() {
	if r.pos >= len(r.data) {
		return
	}
	c, size := utf8.DecodeRune(r.data[r.pos:])
	r.pos += size
	if c == '\n' {
		r.line++
		r.col = 1
		r.lineStart = r.pos
	} else {
		r.col++
	}
}

// Mark returns the current position, including the full text of the
// current source line for caret rendering.
func (r *Reader) Mark() mark.Mark {
	return mark.Mark{
		Line:        r.line,
		Column:      r.col,
		LineContent: r.CurrentLine(),
	}
}

// CurrentLine returns the full text of the line the cursor is on, without
// its trailing newline.
func (r *Reader) CurrentLine() string {
	end := r.lineStart
	for end < len(r.data) && r.data[end] != '\n' {
		end++
	}
	return string(r.data[r.lineStart:end])
}

// Offset returns the current byte offset, used by callers that need to
// slice raw scalar content directly out of the source buffer.
func (r *Reader) Offset() int { return r.pos }

// Slice returns the raw bytes between two offsets previously obtained from
// Offset, decoded as UTF-8 text.
func (r *Reader) Slice(from, to int) string { return string(r.data[from:to]) }

// AtEOF reports whether the cursor has reached the end of input.
func (r *Reader) AtEOF() bool { return r.pos >= len(r.data) }
