// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package scanner implements the lexer: it turns a normalized source
// stream into a flat token sequence, resolving escapes, block-scalar
// folding/chomping, and plain-scalar continuation as it goes, and leaves
// all block-structure and implicit-key decisions to the parser.
//
// No go.yaml.in/yaml/v2 source file for this stage survived retrieval (its
// own scanner.go is absent from the pack; only scanner_test.go is), so this
// implementation is grounded on the token vocabulary and consumption
// pattern visible in internal/libyaml/yaml.go (TokenType/Token) and
// internal/libyaml/parser.go (peekToken/skipToken), and on two independent
// from-scratch Go YAML scanners retrieved into other_examples/
// (shapestone-shape-yaml's parser.go and MacroPower-niceyaml's line.go) for
// concrete escape-table and folding idioms.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yamlcore/core/internal/hints"
	"github.com/yamlcore/core/internal/mark"
	"github.com/yamlcore/core/internal/reader"
	"github.com/yamlcore/core/internal/token"
)

// Error is a LexerError: invalid escape, unterminated quoted scalar, tab in
// indentation, invalid directive syntax.
type Error struct {
	Mark    mark.Mark
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("yaml: %s: %s", e.Mark, e.Message)
}

const eof = -1

// Scanner turns a Reader into a Token stream, one token per Next call.
type Scanner struct {
	r *reader.Reader

	flowLevel   int  // depth of [ ] / { } nesting
	atLineStart bool // true at the start of input and right after a '\n'
	pendingEOF  bool
}

// New returns a Scanner reading from r.
func New(r *reader.Reader) *Scanner {
	return &Scanner{r: r, atLineStart: true}
}

// Next returns the next token, or a *Error. Once StreamEnd has been
// returned, further calls keep returning StreamEnd.
func (s *Scanner) Next() (token.Token, error) {
	if s.pendingEOF {
		return s.tok(token.StreamEnd, ""), nil
	}

	if s.flowLevel == 0 && s.atLineStart {
		for {
			indent, blank, err := s.scanIndent()
			if err != nil {
				return token.Token{}, err
			}
			if !blank {
				s.atLineStart = false
				return withIndentHelper(s.tokAt(token.LineStart, "", s.mark()), indent), nil
			}
			// blank or comment-only line: consumed by scanIndent up to and
			// including its newline (or EOF); loop to the next line.
			if s.r.AtEOF() {
				break
			}
		}
	}

	s.skipInlineSpaceAndComments()

	if s.r.AtEOF() {
		s.pendingEOF = true
		return s.tok(token.StreamEnd, ""), nil
	}

	c := s.r.Peek()

	switch {
	case c == '\n':
		s.r.Advance()
		s.atLineStart = true
		return s.Next()
	case c == '%' && s.atLineStartColumn():
		return s.scanDirective()
	case c == '-' && s.r.PeekAt(1) == '-' && s.r.PeekAt(2) == '-' && isBreakSpaceOrEOF(s.r.PeekAt(3)) && s.atLineStartColumn():
		s.advanceN(3)
		return s.tok(token.DirectivesEnd, "---"), nil
	case c == '.' && s.r.PeekAt(1) == '.' && s.r.PeekAt(2) == '.' && isBreakSpaceOrEOF(s.r.PeekAt(3)) && s.atLineStartColumn():
		s.advanceN(3)
		return s.tok(token.DocumentEnd, "..."), nil
	case c == '-' && isBreakSpaceOrEOF(s.r.PeekAt(1)):
		s.r.Advance()
		return s.tok(token.Dash, "-"), nil
	case c == '?' && (s.flowLevel > 0 || isBreakSpaceOrEOF(s.r.PeekAt(1))):
		s.r.Advance()
		return s.tok(token.QuestionMark, "?"), nil
	case c == ':' && (s.flowLevel > 0 || isBreakSpaceOrEOF(s.r.PeekAt(1))):
		s.r.Advance()
		return s.tok(token.Colon, ":"), nil
	case c == ',' && s.flowLevel > 0:
		s.r.Advance()
		return s.tok(token.Comma, ","), nil
	case c == '[':
		s.r.Advance()
		s.flowLevel++
		return s.tok(token.OpeningBracket, "["), nil
	case c == ']':
		s.r.Advance()
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		return s.tok(token.ClosingBracket, "]"), nil
	case c == '{':
		s.r.Advance()
		s.flowLevel++
		return s.tok(token.OpeningBrace, "{"), nil
	case c == '}':
		s.r.Advance()
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		return s.tok(token.ClosingBrace, "}"), nil
	case c == '&':
		return s.scanAnchorOrAlias(token.Anchor)
	case c == '*':
		return s.scanAnchorOrAlias(token.Alias)
	case c == '!':
		return s.scanTag()
	case c == '|' || c == '>':
		return s.scanBlockScalarHeader(c)
	case c == '\'':
		return s.scanSingleQuoted()
	case c == '"':
		return s.scanDoubleQuoted()
	case c == '#':
		s.skipComment()
		return s.Next()
	default:
		return s.scanPlain()
	}
}

// ---- small helpers -------------------------------------------------------

func (s *Scanner) mark() mark.Mark { return s.r.Mark() }

func (s *Scanner) tok(k token.Kind, text string) token.Token {
	return s.tokAt(k, text, s.mark())
}

func (s *Scanner) tokAt(k token.Kind, text string, m mark.Mark) token.Token {
	return token.Token{
		Kind:        k,
		Text:        text,
		StartLine:   m.Line,
		StartColumn: m.Column,
		EndLine:     s.r.Mark().Line,
		EndColumn:   s.r.Mark().Column,
	}
}

// withIndentHelper sets a token's Indent; only LineStart tokens need it.
func withIndentHelper(t token.Token, n int) token.Token { t.Indent = n; return t }

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.r.Advance()
	}
}

func isBreakSpaceOrEOF(c rune) bool {
	return c == eof || c == '\n' || c == ' ' || c == '\t'
}

func isFlowIndicator(c rune) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// atLineStartColumn reports whether the cursor sits at column 1, which is
// where directives and document markers are required to start.
func (s *Scanner) atLineStartColumn() bool {
	return s.r.Mark().Column == 1
}

// scanIndent consumes leading spaces on a new line. It returns blank=true
// (and consumes through the line's end) for a line that is empty or
// comment-only, so the caller can loop to the next physical line without
// emitting a LineStart for it. A tab encountered while scanning
// indentation is a LexerError (YAML 1.2 forbids tabs for indentation).
func (s *Scanner) scanIndent() (indent int, blank bool, err error) {
	for s.r.Peek() == ' ' {
		s.r.Advance()
		indent++
	}
	if s.r.Peek() == '\t' {
		return 0, false, &Error{Mark: s.mark(), Message: "tab character used for indentation"}
	}
	c := s.r.Peek()
	if c == eof {
		return indent, true, nil
	}
	if c == '\n' {
		s.r.Advance()
		return indent, true, nil
	}
	if c == '#' {
		s.skipComment()
		if s.r.Peek() == '\n' {
			s.r.Advance()
		}
		return indent, true, nil
	}
	return indent, false, nil
}

// skipInlineSpaceAndComments consumes spaces/tabs and a trailing comment on
// the current line, but stops before consuming the line break itself.
func (s *Scanner) skipInlineSpaceAndComments() {
	for {
		switch s.r.Peek() {
		case ' ', '\t':
			s.r.Advance()
			continue
		case '#':
			s.skipComment()
			continue
		}
		return
	}
}

func (s *Scanner) skipComment() {
	for s.r.Peek() != '\n' && s.r.Peek() != eof {
		s.r.Advance()
	}
}

// ---- directives -----------------------------------------------------------

func (s *Scanner) scanDirective() (token.Token, error) {
	start := s.mark()
	s.r.Advance() // '%'
	var name strings.Builder
	for !isBreakSpaceOrEOF(s.r.Peek()) {
		name.WriteRune(s.r.Peek())
		s.r.Advance()
	}
	switch name.String() {
	case "YAML":
		s.skipInlineSpaceAndComments()
		var v strings.Builder
		for !isBreakSpaceOrEOF(s.r.Peek()) {
			v.WriteRune(s.r.Peek())
			s.r.Advance()
		}
		if !strings.Contains(v.String(), ".") {
			return token.Token{}, &Error{Mark: start, Message: "malformed %YAML directive"}
		}
		return s.tokAt(token.YAMLDirective, v.String(), start), nil
	case "TAG":
		s.skipInlineSpaceAndComments()
		var v strings.Builder
		for s.r.Peek() != '\n' && s.r.Peek() != eof {
			v.WriteRune(s.r.Peek())
			s.r.Advance()
		}
		parts := strings.Fields(v.String())
		if len(parts) != 2 {
			return token.Token{}, &Error{Mark: start, Message: "malformed %TAG directive"}
		}
		return s.tokAt(token.TagDirective, parts[0]+" "+parts[1], start), nil
	default:
		for s.r.Peek() != '\n' && s.r.Peek() != eof {
			s.r.Advance()
		}
		return s.tokAt(token.UnknownDirective, name.String(), start), nil
	}
}

// ---- anchors and aliases ----------------------------------------------------

func isAnchorChar(c rune) bool {
	switch c {
	case ',', '[', ']', '{', '}', ' ', '\t', '\n', eof, ':':
		return false
	}
	return true
}

func (s *Scanner) scanAnchorOrAlias(kind token.Kind) (token.Token, error) {
	start := s.mark()
	s.r.Advance() // '&' or '*'
	var name strings.Builder
	for isAnchorChar(s.r.Peek()) {
		name.WriteRune(s.r.Peek())
		s.r.Advance()
	}
	if name.Len() == 0 {
		return token.Token{}, &Error{Mark: start, Message: "empty anchor name"}
	}
	return s.tokAt(kind, name.String(), start), nil
}

// ---- tags -------------------------------------------------------------------

func (s *Scanner) scanTag() (token.Token, error) {
	start := s.mark()
	s.r.Advance() // '!'
	if s.r.Peek() == '<' {
		s.r.Advance()
		var uri strings.Builder
		for s.r.Peek() != '>' {
			if s.r.Peek() == eof || s.r.Peek() == '\n' {
				return token.Token{}, &Error{Mark: start, Message: "unterminated verbatim tag"}
			}
			uri.WriteRune(s.r.Peek())
			s.r.Advance()
		}
		s.r.Advance() // '>'
		return s.tokAt(token.VerbatimTag, uri.String(), start), nil
	}
	// "!", "!!", "!handle!", or "!suffix".
	var handle strings.Builder
	handle.WriteByte('!')
	if s.r.Peek() == '!' {
		handle.WriteByte('!')
		s.r.Advance()
	} else {
		for isTagHandleChar(s.r.Peek()) {
			handle.WriteRune(s.r.Peek())
			s.r.Advance()
		}
		if s.r.Peek() == '!' {
			handle.WriteByte('!')
			s.r.Advance()
		} else {
			// no closing '!': what we scanned is actually tag suffix of "!"
			return s.finishPrimaryTag(start, handle.String()[1:])
		}
	}
	var suffix strings.Builder
	for isTagSuffixChar(s.r.Peek()) {
		c, err := s.readPossiblyPercentEscaped()
		if err != nil {
			return token.Token{}, err
		}
		suffix.WriteRune(c)
	}
	return s.tokAt(token.TagHandle, handle.String()+"\x00"+suffix.String(), start), nil
}

// finishPrimaryTag handles the bare "!suffix" shorthand (handle "!").
func (s *Scanner) finishPrimaryTag(start mark.Mark, already string) (token.Token, error) {
	var suffix strings.Builder
	suffix.WriteString(already)
	for isTagSuffixChar(s.r.Peek()) {
		c, err := s.readPossiblyPercentEscaped()
		if err != nil {
			return token.Token{}, err
		}
		suffix.WriteRune(c)
	}
	if suffix.Len() == 0 {
		return s.tokAt(token.TagHandle, "!\x00", start), nil // non-specific "!"
	}
	return s.tokAt(token.TagHandle, "!\x00"+suffix.String(), start), nil
}

func isTagHandleChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}

func isTagSuffixChar(c rune) bool {
	switch c {
	case eof, '\n', ' ', '\t', ',', '[', ']', '{', '}':
		return false
	}
	return true
}

func (s *Scanner) readPossiblyPercentEscaped() (rune, error) {
	if s.r.Peek() == '%' {
		start := s.mark()
		s.r.Advance()
		hex := make([]byte, 0, 2)
		for i := 0; i < 2; i++ {
			c := s.r.Peek()
			if !isHexDigit(c) {
				return 0, &Error{Mark: start, Message: "invalid %-escape in tag"}
			}
			hex = append(hex, byte(c))
			s.r.Advance()
		}
		v, _ := strconv.ParseInt(string(hex), 16, 32)
		return rune(v), nil
	}
	c := s.r.Peek()
	s.r.Advance()
	return c, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ---- quoted scalars ----------------------------------------------------------

func (s *Scanner) scanSingleQuoted() (token.Token, error) {
	start := s.mark()
	s.r.Advance() // opening '\''
	var sb strings.Builder
	for {
		c := s.r.Peek()
		switch {
		case c == eof:
			return token.Token{}, &Error{Mark: start, Message: "unterminated single-quoted scalar"}
		case c == '\'' && s.r.PeekAt(1) == '\'':
			sb.WriteByte('\'')
			s.advanceN(2)
		case c == '\'':
			s.r.Advance()
			t := s.tokAt(token.Scalar, foldPlainLines(sb.String()), start)
			t.Style = token.SingleQuoted
			return t, nil
		case c == '\n':
			sb.WriteByte('\n')
			s.r.Advance()
		default:
			sb.WriteRune(c)
			s.r.Advance()
		}
	}
}

func (s *Scanner) scanDoubleQuoted() (token.Token, error) {
	start := s.mark()
	s.r.Advance() // opening '"'
	var sb strings.Builder
	for {
		c := s.r.Peek()
		switch {
		case c == eof:
			return token.Token{}, &Error{Mark: start, Message: "unterminated double-quoted scalar"}
		case c == '"':
			s.r.Advance()
			t := s.tokAt(token.Scalar, sb.String(), start)
			t.Style = token.DoubleQuoted
			return t, nil
		case c == '\\':
			r, err := s.scanEscape(start)
			if err != nil {
				return token.Token{}, err
			}
			if r >= 0 {
				sb.WriteRune(r)
			}
		case c == '\n':
			// Raw line breaks are folded here rather than after the closing
			// quote, so a newline produced by a "\n" escape is kept.
			folded := strings.TrimRight(sb.String(), " \t")
			breaks := 0
			for ; c == '\n' || c == ' ' || c == '\t'; c = s.r.Peek() {
				if c == '\n' {
					breaks++
				}
				s.r.Advance()
			}
			if breaks == 1 {
				folded += " "
			}
			sb.Reset()
			sb.WriteString(folded + strings.Repeat("\n", breaks-1))
		default:
			sb.WriteRune(c)
			s.r.Advance()
		}
	}
}

// scanEscape decodes one backslash escape in a double-quoted scalar, per
// the full YAML 1.2 escape table. A line-continuation
// escape ("\\\n" followed by leading whitespace) produces no character and
// returns a negative rune.
func (s *Scanner) scanEscape(start mark.Mark) (rune, error) {
	s.r.Advance() // '\\'
	c := s.r.Peek()
	simple := map[rune]rune{
		'0': 0, 'a': '\a', 'b': '\b', 't': '\t', 'n': '\n', 'v': '\v',
		'f': '\f', 'r': '\r', 'e': 0x1B, '"': '"', '\\': '\\',
		'N': 0x85, '_': 0xA0, 'L': 0x2028, 'P': 0x2029, ' ': ' ', '\t': '\t',
	}
	if r, ok := simple[c]; ok {
		s.r.Advance()
		return r, nil
	}
	switch c {
	case '\n':
		s.r.Advance()
		for s.r.Peek() == ' ' || s.r.Peek() == '\t' {
			s.r.Advance()
		}
		return -1, nil
	case 'x':
		return s.scanHexEscape(start, 2)
	case 'u':
		return s.scanHexEscape(start, 4)
	case 'U':
		return s.scanHexEscape(start, 8)
	}
	return 0, &Error{Mark: start, Message: fmt.Sprintf("unknown escape sequence %q", "\\"+string(c))}
}

func (s *Scanner) scanHexEscape(start mark.Mark, n int) (rune, error) {
	s.r.Advance() // x/u/U
	hex := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		c := s.r.Peek()
		if !isHexDigit(c) {
			return 0, &Error{Mark: start, Message: "invalid hex escape"}
		}
		hex = append(hex, byte(c))
		s.r.Advance()
	}
	v, err := strconv.ParseInt(string(hex), 16, 64)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, &Error{Mark: start, Message: "invalid unicode escape"}
	}
	return rune(v), nil
}

// foldPlainLines applies the same line-folding a plain/quoted scalar's
// embedded line breaks get: a single break becomes a space, consecutive
// breaks beyond the first become literal newlines.
func foldPlainLines(raw string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) == 1 {
		return raw
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(lines[0], " \t"))
	blankRun := 0
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blankRun++
			continue
		}
		if blankRun == 0 {
			sb.WriteByte(' ')
		} else {
			for i := 0; i < blankRun; i++ {
				sb.WriteByte('\n')
			}
		}
		blankRun = 0
		sb.WriteString(strings.TrimRight(strings.TrimLeft(line, " \t"), " \t"))
	}
	return sb.String()
}

// ---- plain scalars ------------------------------------------------------------

func (s *Scanner) scanPlain() (token.Token, error) {
	start := s.mark()
	startCol := start.Column
	var raw strings.Builder

	for {
		c := s.r.Peek()
		if c == eof {
			break
		}
		if c == '\n' {
			if !s.plainContinues(startCol) {
				break
			}
			raw.WriteByte('\n')
			s.r.Advance()
			continue
		}
		if c == ':' && (s.flowLevel > 0 || isBreakSpaceOrEOF(s.r.PeekAt(1))) {
			break
		}
		if c == '#' && raw.Len() > 0 && isSpaceOrTab(lastRune(raw.String())) {
			break
		}
		if s.flowLevel > 0 && isFlowIndicator(c) {
			break
		}
		raw.WriteRune(c)
		s.r.Advance()
	}
	content := foldPlainLines(strings.TrimRight(raw.String(), " \t"))
	t := s.tokAt(token.ScalarPart, content, start)
	t.Style = token.Plain
	t.Hint = hints.Classify(content)
	return t, nil
}

func isSpaceOrTab(c rune) bool { return c == ' ' || c == '\t' }

func lastRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// plainContinues looks past the upcoming line break to decide whether a
// plain scalar folds onto the next line: in flow context it always may
// (subject to the usual stop characters); in block context the next
// non-blank line must be indented further than the scalar's starting
// column and must not itself be a document marker.
func (s *Scanner) plainContinues(startCol int) bool {
	if s.flowLevel > 0 {
		return true
	}
	save := *s.r
	defer func() { *s.r = save }()

	s.r.Advance() // the '\n' under consideration
	for {
		indent := 0
		for s.r.Peek() == ' ' {
			s.r.Advance()
			indent++
		}
		c := s.r.Peek()
		if c == '\n' {
			s.r.Advance()
			continue
		}
		if c == eof {
			return false
		}
		if indent+1 <= startCol {
			return false
		}
		if c == '-' && s.r.PeekAt(1) == '-' && s.r.PeekAt(2) == '-' {
			return false
		}
		if c == '.' && s.r.PeekAt(1) == '.' && s.r.PeekAt(2) == '.' {
			return false
		}
		return true
	}
}

// ---- block scalars (literal/folded) --------------------------------------------

// scanBlockScalarHeader scans the "|" or ">" indicator plus its optional
// chomping indicator and explicit indentation indicator, then reads the
// block body itself, honoring YAML's block-scalar folding and chomping
// rules.
// It returns a fully-resolved Scalar token (the body is read eagerly,
// unlike every other token kind, because block scalars own their trailing
// blank lines and only the scanner knows where those end).
func (s *Scanner) scanBlockScalarHeader(indicator rune) (token.Token, error) {
	start := s.mark()
	s.r.Advance() // '|' or '>'
	folded := indicator == '>'

	chomping := token.ClipChomping
	explicitIndent := 0
	for {
		c := s.r.Peek()
		switch {
		case c == '-':
			chomping = token.StripChomping
			s.r.Advance()
		case c == '+':
			chomping = token.KeepChomping
			s.r.Advance()
		case c >= '1' && c <= '9':
			explicitIndent = int(c - '0')
			s.r.Advance()
		default:
			goto headerDone
		}
	}
headerDone:
	s.skipInlineSpaceAndComments()
	if s.r.Peek() == '\n' {
		s.r.Advance()
	} else if s.r.Peek() != eof {
		return token.Token{}, &Error{Mark: start, Message: "unexpected content after block scalar header"}
	}

	lines, indent, err := s.readBlockLines(explicitIndent, start)
	if err != nil {
		return token.Token{}, err
	}
	_ = indent
	body := assembleBlockScalar(lines, folded, chomping)

	t := s.tokAt(token.Scalar, body, start)
	t.Style = token.Literal
	if folded {
		t.Style = token.Folded
	}
	t.Chomping = chomping
	t.BlockIndent = explicitIndent
	return t, nil
}

// readBlockLines reads raw (not yet folded/chomped) physical lines that
// belong to the block scalar, stripping the established indentation from
// each. If explicitIndent is 0, the indentation is established by the
// first non-blank line.
func (s *Scanner) readBlockLines(explicitIndent int, start mark.Mark) ([]string, int, error) {
	var lines []string
	indent := explicitIndent
	for {
		if s.r.AtEOF() {
			break
		}
		lineStart := *s.r
		col := 0
		for s.r.Peek() == ' ' {
			s.r.Advance()
			col++
		}
		c := s.r.Peek()
		if c == '\n' {
			lines = append(lines, "")
			s.r.Advance()
			continue
		}
		if c == eof {
			break
		}
		if indent == 0 {
			indent = col
			if indent == 0 {
				// a zero-indent first content line ends the block scalar
				// immediately (nothing belongs to it).
				*s.r = lineStart
				break
			}
		}
		if col < indent {
			*s.r = lineStart
			break
		}
		// Spaces beyond the established indentation belong to the content
		// (e.g. a nested literal block), not to the margin being stripped.
		extra := col - indent
		var text strings.Builder
		for i := 0; i < extra; i++ {
			text.WriteByte(' ')
		}
		for s.r.Peek() != '\n' && s.r.Peek() != eof {
			text.WriteRune(s.r.Peek())
			s.r.Advance()
		}
		if s.r.Peek() == '\n' {
			s.r.Advance()
		}
		lines = append(lines, text.String())
	}
	return lines, indent, nil
}

// assembleBlockScalar applies folding (for ">") and chomping to the raw,
// indentation-stripped lines a block scalar header collected.
func assembleBlockScalar(lines []string, folded bool, chomping token.Chomping) string {
	trailingBlanks := countTrailingBlank(lines)
	lines = lines[:len(lines)-trailingBlanks]

	var sb strings.Builder
	if folded {
		blankRun := 0
		first := true
		for _, l := range lines {
			if l == "" {
				blankRun++
				continue
			}
			if !first {
				if blankRun == 0 {
					sb.WriteByte(' ')
				} else {
					for i := 0; i < blankRun; i++ {
						sb.WriteByte('\n')
					}
				}
			}
			blankRun = 0
			sb.WriteString(l)
			first = false
		}
	} else {
		for i, l := range lines {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(l)
		}
	}

	switch chomping {
	case token.StripChomping:
		return sb.String()
	case token.KeepChomping:
		s := sb.String()
		for i := 0; i < trailingBlanks+1 && len(lines) > 0; i++ {
			s += "\n"
		}
		return s
	default: // clip
		if len(lines) == 0 {
			return ""
		}
		return sb.String() + "\n"
	}
}

func countTrailingBlank(lines []string) int {
	n := 0
	for i := len(lines) - 1; i >= 0 && lines[i] == ""; i-- {
		n++
	}
	return n
}
