// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package parser turns a token stream into the structural Event stream.
// Grounded on the grammar comment and peekToken/skipToken token-queue
// discipline in go.yaml.in/yaml/v2's
// internal/libyaml/parser.go (stateMachine, parseBlockSequenceEntry,
// parseBlockMappingKey, parseFlowSequenceEntry, parseFlowMappingKey,
// processEmptyScalar, processDirectives, appendTagDirective), adapted from
// go.yaml.in/yaml/v2's own two-pass scan-then-resolve design to single-pass
// resolution: tag and anchor ids are assigned as each token is consumed,
// since the scanner already classifies plain scalars and the tag/anchor
// tables are themselves part of this package's dependency surface.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/event"
	"github.com/yamlcore/core/internal/hints"
	"github.com/yamlcore/core/internal/mark"
	"github.com/yamlcore/core/internal/reader"
	"github.com/yamlcore/core/internal/scanner"
	"github.com/yamlcore/core/internal/tag"
	"github.com/yamlcore/core/internal/token"
)

// Error is a ParserError: a grammatical violation the token stream itself
// was lexically valid for.
type Error struct {
	Mark    mark.Mark
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("yaml: %s: %s", e.Mark, e.Message)
}

// Warning is a non-fatal diagnostic: a document parsed successfully despite
// something worth a caller's attention (an off-spec version directive, a
// directive redefined mid-document).
type Warning struct {
	Mark    mark.Mark
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("yaml: %s: %s", w.Mark, w.Message)
}

type phase int

const (
	phaseNotStarted phase = iota
	phaseInStream
	phaseDone
)

// Parser pulls events out of a token stream one at a time. It satisfies
// event.Stream.
type Parser struct {
	sc  tokenSource
	buf []token.Token

	tags    *tag.Library
	anchors *anchor.Table
	handles map[string]string
	warn    func(Warning)

	queue []event.Event
	qpos  int
	phase phase
	err   error
}

// OnWarning registers f to receive non-fatal diagnostics as they are
// produced, mirroring go.yaml.in/yaml/v2's practice of surfacing this class of
// problem as a value rather than writing to a logger. Returns p for
// chaining. A nil f (the default) discards warnings.
func (p *Parser) OnWarning(f func(Warning)) *Parser {
	p.warn = f
	return p
}

func (p *Parser) warnf(m mark.Mark, format string, args ...interface{}) {
	if p.warn == nil {
		return
	}
	p.warn(Warning{Mark: m, Message: fmt.Sprintf(format, args...)})
}

// tokenSource is the subset of *scanner.Scanner the parser depends on,
// kept as an interface so tests can feed a canned token sequence directly.
type tokenSource interface {
	Next() (token.Token, error)
}

// New returns a Parser reading from r.
func New(r *reader.Reader) *Parser {
	return NewFromTokens(scanner.New(r))
}

// NewFromTokens builds a Parser directly from a token source, for testing
// the parser in isolation from the lexer.
func NewFromTokens(src tokenSource) *Parser {
	return &Parser{
		sc:      src,
		tags:    tag.Core(),
		anchors: anchor.New(),
		handles: tag.DefaultHandles(),
	}
}

// Tags returns the tag library this parser resolves shorthand and
// verbatim tags against. Sharing it with a Presenter lets custom tag URIs
// registered while parsing round-trip back to the same ids while
// presenting.
func (p *Parser) Tags() *tag.Library {
	return p.tags
}

// Next returns the next event, or an error. Once a terminal StreamEnd or
// error has been produced, further calls keep returning it.
func (p *Parser) Next() (event.Event, error) {
	if p.err != nil {
		return event.Event{}, p.err
	}
	if p.qpos < len(p.queue) {
		e := p.queue[p.qpos]
		p.qpos++
		return e, nil
	}
	switch p.phase {
	case phaseNotStarted:
		p.phase = phaseInStream
		p.queue = []event.Event{event.NewStreamStart()}
		p.qpos = 0
		return p.Next()
	case phaseInStream:
		p.queue = nil
		p.qpos = 0
		done, err := p.parseDocumentPhase()
		if err != nil {
			p.err = err
			return event.Event{}, err
		}
		if done {
			p.phase = phaseDone
		}
		return p.Next()
	default:
		return event.NewStreamEnd(), nil
	}
}

// ---- token buffering ------------------------------------------------------

func (p *Parser) fill(n int) error {
	for len(p.buf) <= n {
		t, err := p.sc.Next()
		if err != nil {
			return err
		}
		if t.Kind == token.LineStart {
			// A pseudo-token: its Indent duplicates the StartColumn the
			// next real token already carries, so the parser never needs
			// to see it directly.
			continue
		}
		p.buf = append(p.buf, t)
		if t.Kind == token.StreamEnd {
			break
		}
	}
	return nil
}

func (p *Parser) peekN(n int) (token.Token, error) {
	if err := p.fill(n); err != nil {
		return token.Token{}, err
	}
	if n >= len(p.buf) {
		return p.buf[len(p.buf)-1], nil // StreamEnd, repeated
	}
	return p.buf[n], nil
}

func (p *Parser) advance() token.Token {
	t := p.buf[0]
	if len(p.buf) > 1 {
		p.buf = p.buf[1:]
	} else if t.Kind != token.StreamEnd {
		p.buf = p.buf[:0]
	}
	return t
}

func isBlockTerminator(k token.Kind) bool {
	switch k {
	case token.StreamEnd, token.DirectivesEnd, token.DocumentEnd:
		return true
	}
	return false
}

// ---- document / directive handling -----------------------------------------

// parseDocumentPhase parses exactly one document's worth of events into
// p.queue, followed by the closing StreamEnd when nothing is left after it.
func (p *Parser) parseDocumentPhase() (done bool, err error) {
	p.anchors.Reset()
	p.handles = tag.DefaultHandles()
	var version *event.Version
	sawVersion := false
	seenHandles := map[string]bool{}

	for {
		tok, err := p.peekN(0)
		if err != nil {
			return false, err
		}
		switch tok.Kind {
		case token.YAMLDirective:
			p.advance()
			if sawVersion {
				p.warnf(startMark(tok), "repeated %%YAML directive in the same document")
			}
			sawVersion = true
			v, err := parseVersion(tok)
			if err != nil {
				return false, &Error{Mark: startMark(tok), Message: err.Error()}
			}
			if v.Major != 1 || v.Minor != 2 {
				p.warnf(startMark(tok), "document specifies YAML %d.%d, not 1.2", v.Major, v.Minor)
			}
			version = v
		case token.TagDirective:
			p.advance()
			handle, uri, ok := strings.Cut(tok.Text, " ")
			if !ok {
				return false, &Error{Mark: startMark(tok), Message: "malformed %TAG directive"}
			}
			if seenHandles[handle] {
				p.warnf(startMark(tok), "redefinition of tag handle %q", handle)
			}
			seenHandles[handle] = true
			p.handles[handle] = uri
		case token.UnknownDirective:
			p.advance()
		default:
			goto directivesDone
		}
	}
directivesDone:

	tok, err := p.peekN(0)
	if err != nil {
		return false, err
	}

	explicitStart := tok.Kind == token.DirectivesEnd
	if explicitStart {
		p.advance()
	}
	p.queue = append(p.queue, event.NewDocumentStart(explicitStart, version))

	tok, err = p.peekN(0)
	if err != nil {
		return false, err
	}
	if isBlockTerminator(tok.Kind) {
		// A document whose body is entirely absent, whether because the
		// stream held nothing at all or because a "---"/"..." marker was
		// immediately followed by another marker or the stream's end, still
		// resolves to a value: the empty plain scalar under the null tag.
		p.queue = append(p.queue, event.NewScalar(tag.Null, anchor.None, "", token.Plain))
	} else if err := p.parseBlockNode(1); err != nil {
		return false, err
	}

	explicitEnd := false
	for {
		tok, err = p.peekN(0)
		if err != nil {
			return false, err
		}
		if tok.Kind != token.DocumentEnd {
			break
		}
		p.advance()
		explicitEnd = true
	}
	p.queue = append(p.queue, event.NewDocumentEnd(explicitEnd))

	tok, err = p.peekN(0)
	if err != nil {
		return false, err
	}
	if tok.Kind == token.StreamEnd {
		p.queue = append(p.queue, event.NewStreamEnd())
		return true, nil
	}
	return false, nil
}

func startMark(t token.Token) mark.Mark {
	return mark.Mark{Line: t.StartLine, Column: t.StartColumn}
}

func parseVersion(tok token.Token) (*event.Version, error) {
	major, minor, ok := strings.Cut(tok.Text, ".")
	if !ok {
		return nil, fmt.Errorf("malformed %%YAML version %q", tok.Text)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return nil, fmt.Errorf("malformed %%YAML version %q", tok.Text)
	}
	min, err := strconv.Atoi(minor)
	if err != nil {
		return nil, fmt.Errorf("malformed %%YAML version %q", tok.Text)
	}
	return &event.Version{Major: uint16(maj), Minor: uint16(min)}, nil
}

// ---- properties (tag/anchor) -----------------------------------------------

func (p *Parser) parseProperties() (anchor.ID, tag.ID, error) {
	anchorID := anchor.None
	tagID := tag.None
	for i := 0; i < 2; i++ {
		tok, err := p.peekN(0)
		if err != nil {
			return anchor.None, tag.None, err
		}
		switch tok.Kind {
		case token.Anchor:
			if anchorID != anchor.None {
				return anchor.None, tag.None, &Error{Mark: startMark(tok), Message: "duplicate anchor property"}
			}
			p.advance()
			anchorID = p.anchors.Declare(tok.Text)
		case token.TagHandle, token.VerbatimTag:
			if tagID != tag.None {
				return anchor.None, tag.None, &Error{Mark: startMark(tok), Message: "duplicate tag property"}
			}
			p.advance()
			id, err := p.resolveTagToken(tok)
			if err != nil {
				return anchor.None, tag.None, err
			}
			tagID = id
		default:
			return anchorID, tagID, nil
		}
	}
	return anchorID, tagID, nil
}

func (p *Parser) resolveTagToken(tok token.Token) (tag.ID, error) {
	if tok.Kind == token.VerbatimTag {
		if tok.Text == "!" {
			return tag.NonSpecificExclamation, nil
		}
		return p.tags.RegisterURI(tok.Text), nil
	}
	handle, suffix, _ := strings.Cut(tok.Text, "\x00")
	if handle == "!" && suffix == "" {
		return tag.NonSpecificExclamation, nil
	}
	resolved, ok := tag.ResolveHandle(p.handles, handle, suffix)
	if !ok {
		return tag.None, &Error{Mark: startMark(tok), Message: fmt.Sprintf("undefined tag handle %q", handle)}
	}
	return p.tags.RegisterURI(resolved), nil
}

func (p *Parser) resolveScalarTag(explicit tag.ID, hint hints.Kind, style token.ScalarStyle) tag.ID {
	if explicit == tag.NonSpecificExclamation {
		return tag.Str
	}
	if explicit != tag.None && explicit != tag.NonSpecificQuestion {
		return explicit
	}
	if style != token.Plain {
		return tag.Str
	}
	switch hint {
	case hints.Null:
		return tag.Null
	case hints.BoolTrue, hints.BoolFalse:
		return tag.Bool
	case hints.Integer:
		return tag.Int
	case hints.Float, hints.FloatInf, hints.FloatNaN:
		return tag.Float
	default:
		return tag.Str
	}
}

func (p *Parser) resolveCollectionTag(explicit, def tag.ID) tag.ID {
	if explicit == tag.NonSpecificExclamation {
		return def
	}
	if explicit != tag.None && explicit != tag.NonSpecificQuestion {
		return explicit
	}
	return def
}

func (p *Parser) appendEmptyScalar(tagID tag.ID, anchorID anchor.ID) {
	p.queue = append(p.queue, event.NewScalar(p.resolveScalarTag(tagID, hints.Null, token.Plain), anchorID, "", token.Plain))
}

// ---- block context ----------------------------------------------------------

// parseBlockNode consumes exactly one node (scalar, alias, block
// collection, or flow collection appearing in block context) and appends
// its events to p.queue. minColumn is the minimum column the caller has
// already verified content exists at; callers that might find nothing
// there handle the empty-node case themselves before calling in.
func (p *Parser) parseBlockNode(minColumn int) error {
	anchorID, tagID, err := p.parseProperties()
	if err != nil {
		return err
	}
	tok, err := p.peekN(0)
	if err != nil {
		return err
	}

	if isBlockTerminator(tok.Kind) || tok.StartColumn < minColumn {
		p.appendEmptyScalar(tagID, anchorID)
		return nil
	}

	switch tok.Kind {
	case token.Alias:
		p.advance()
		id, ok := p.anchors.Lookup(tok.Text)
		if !ok {
			return &Error{Mark: startMark(tok), Message: fmt.Sprintf("undefined alias %q", tok.Text)}
		}
		p.queue = append(p.queue, event.NewAlias(id))
		return nil
	case token.Dash:
		return p.parseBlockSequence(tok.StartColumn, tagID, anchorID)
	case token.QuestionMark:
		return p.parseBlockMapping(tok.StartColumn, tagID, anchorID)
	case token.OpeningBracket, token.OpeningBrace:
		return p.parseFlowValue(tagID, anchorID)
	case token.Scalar, token.ScalarPart:
		next, err := p.peekN(1)
		if err != nil {
			return err
		}
		if next.Kind == token.Colon && tok.EndLine == next.StartLine {
			return p.parseBlockMapping(tok.StartColumn, tagID, anchorID)
		}
		p.advance()
		style := token.Plain
		hint := tok.Hint
		if tok.Kind == token.Scalar {
			style = tok.Style
			hint = hints.Unknown
		}
		p.queue = append(p.queue, event.NewScalar(p.resolveScalarTag(tagID, hint, style), anchorID, tok.Text, style))
		return nil
	default:
		return &Error{Mark: startMark(tok), Message: fmt.Sprintf("unexpected %s in block context", tok.Kind)}
	}
}

// parseBlockSequence parses a "- item" run, including the indentless-
// sequence form where the items sit at the same column as the mapping key
// whose value they are.
func (p *Parser) parseBlockSequence(boundColumn int, tagID tag.ID, anchorID anchor.ID) error {
	p.queue = append(p.queue, event.NewSequenceStart(p.resolveCollectionTag(tagID, tag.Seq), anchorID, event.Block))
	for {
		tok, err := p.peekN(0)
		if err != nil {
			return err
		}
		if tok.Kind != token.Dash || tok.StartColumn != boundColumn {
			break
		}
		dash := tok
		p.advance()

		item, err := p.peekN(0)
		if err != nil {
			return err
		}
		switch {
		case isBlockTerminator(item.Kind):
			p.appendEmptyScalar(tag.None, anchor.None)
		case item.StartLine != dash.StartLine && item.StartColumn <= boundColumn && item.Kind != token.Dash:
			p.appendEmptyScalar(tag.None, anchor.None)
		default:
			childMin := boundColumn + 1
			if item.Kind == token.Dash && item.StartLine != dash.StartLine && item.StartColumn >= boundColumn {
				childMin = item.StartColumn
			}
			if err := p.parseBlockNode(childMin); err != nil {
				return err
			}
		}
	}
	p.queue = append(p.queue, event.NewSequenceEnd())
	return nil
}

// parseBlockMapping parses a run of "key: value" (or "? key\n: value")
// entries at boundColumn.
func (p *Parser) parseBlockMapping(boundColumn int, tagID tag.ID, anchorID anchor.ID) error {
	p.queue = append(p.queue, event.NewMappingStart(p.resolveCollectionTag(tagID, tag.Map), anchorID, event.Block))
	for {
		tok, err := p.peekN(0)
		if err != nil {
			return err
		}
		if isBlockTerminator(tok.Kind) || tok.StartColumn != boundColumn {
			break
		}

		if tok.Kind == token.QuestionMark {
			p.advance()
			if err := p.parseExplicitKey(boundColumn + 1); err != nil {
				return err
			}
		} else if tok.Kind == token.Scalar || tok.Kind == token.ScalarPart {
			p.advance()
			style := token.Plain
			hint := tok.Hint
			if tok.Kind == token.Scalar {
				style = tok.Style
				hint = hints.Unknown
			}
			p.queue = append(p.queue, event.NewScalar(p.resolveScalarTag(tag.None, hint, style), anchor.None, tok.Text, style))
		} else {
			return &Error{Mark: startMark(tok), Message: fmt.Sprintf("unexpected %s as mapping key", tok.Kind)}
		}

		colon, err := p.peekN(0)
		if err != nil {
			return err
		}
		if colon.Kind != token.Colon {
			return &Error{Mark: startMark(colon), Message: "expected ':'"}
		}
		p.advance()

		val, err := p.peekN(0)
		if err != nil {
			return err
		}
		switch {
		case isBlockTerminator(val.Kind):
			p.appendEmptyScalar(tag.None, anchor.None)
		case val.StartLine != colon.StartLine && val.StartColumn <= boundColumn && val.Kind != token.Dash:
			p.appendEmptyScalar(tag.None, anchor.None)
		default:
			childMin := boundColumn + 1
			if val.Kind == token.Dash && val.StartLine != colon.StartLine && val.StartColumn >= boundColumn {
				childMin = val.StartColumn
			}
			if err := p.parseBlockNode(childMin); err != nil {
				return err
			}
		}
	}
	p.queue = append(p.queue, event.NewMappingEnd())
	return nil
}

// parseExplicitKey parses the key node following a "?" indicator, which
// may be entirely absent ("?" immediately followed by ":").
func (p *Parser) parseExplicitKey(minColumn int) error {
	tok, err := p.peekN(0)
	if err != nil {
		return err
	}
	if isBlockTerminator(tok.Kind) || tok.Kind == token.Colon || tok.StartColumn < minColumn {
		p.appendEmptyScalar(tag.None, anchor.None)
		return nil
	}
	return p.parseBlockNode(minColumn)
}

// ---- flow context -------------------------------------------------------------

// parseFlowNode parses one flow node, reading its own anchor/tag
// properties first.
func (p *Parser) parseFlowNode() error {
	anchorID, tagID, err := p.parseProperties()
	if err != nil {
		return err
	}
	return p.parseFlowValue(tagID, anchorID)
}

// parseFlowValue dispatches on the already-peeked token with anchor/tag
// properties already resolved by the caller.
func (p *Parser) parseFlowValue(tagID tag.ID, anchorID anchor.ID) error {
	tok, err := p.peekN(0)
	if err != nil {
		return err
	}
	switch tok.Kind {
	case token.OpeningBracket:
		p.advance()
		p.queue = append(p.queue, event.NewSequenceStart(p.resolveCollectionTag(tagID, tag.Seq), anchorID, event.Flow))
		for {
			t, err := p.peekN(0)
			if err != nil {
				return err
			}
			if t.Kind == token.ClosingBracket {
				p.advance()
				break
			}
			if t.Kind == token.StreamEnd || isBlockTerminator(t.Kind) {
				return &Error{Mark: startMark(t), Message: "unterminated flow sequence"}
			}
			if err := p.parseFlowSequenceEntry(); err != nil {
				return err
			}
			t2, err := p.peekN(0)
			if err != nil {
				return err
			}
			if t2.Kind == token.Comma {
				p.advance()
			}
		}
		p.queue = append(p.queue, event.NewSequenceEnd())
		return nil
	case token.OpeningBrace:
		p.advance()
		p.queue = append(p.queue, event.NewMappingStart(p.resolveCollectionTag(tagID, tag.Map), anchorID, event.Flow))
		for {
			t, err := p.peekN(0)
			if err != nil {
				return err
			}
			if t.Kind == token.ClosingBrace {
				p.advance()
				break
			}
			if t.Kind == token.StreamEnd || isBlockTerminator(t.Kind) {
				return &Error{Mark: startMark(t), Message: "unterminated flow mapping"}
			}
			if err := p.parseFlowMappingEntry(); err != nil {
				return err
			}
			t2, err := p.peekN(0)
			if err != nil {
				return err
			}
			if t2.Kind == token.Comma {
				p.advance()
			}
		}
		p.queue = append(p.queue, event.NewMappingEnd())
		return nil
	case token.Alias:
		p.advance()
		id, ok := p.anchors.Lookup(tok.Text)
		if !ok {
			return &Error{Mark: startMark(tok), Message: fmt.Sprintf("undefined alias %q", tok.Text)}
		}
		p.queue = append(p.queue, event.NewAlias(id))
		return nil
	case token.Scalar, token.ScalarPart:
		p.advance()
		style := token.Plain
		hint := tok.Hint
		if tok.Kind == token.Scalar {
			style = tok.Style
			hint = hints.Unknown
		}
		p.queue = append(p.queue, event.NewScalar(p.resolveScalarTag(tagID, hint, style), anchorID, tok.Text, style))
		return nil
	default:
		p.appendEmptyScalar(tagID, anchorID)
		return nil
	}
}

// parseFlowSequenceEntry parses one "[...]" element: a plain flow node, or
// the "key: value"/"? key : value" compact-mapping shorthand the grammar's
// flow_sequence_entry production allows.
func (p *Parser) parseFlowSequenceEntry() error {
	anchorID, tagID, err := p.parseProperties()
	if err != nil {
		return err
	}
	tok, err := p.peekN(0)
	if err != nil {
		return err
	}

	if tok.Kind == token.QuestionMark {
		p.advance()
		p.queue = append(p.queue, event.NewMappingStart(tag.Map, anchorID, event.Flow))
		if err := p.parseFlowValue(tagID, anchor.None); err != nil {
			return err
		}
		t, err := p.peekN(0)
		if err != nil {
			return err
		}
		if t.Kind == token.Colon {
			p.advance()
			if err := p.parseFlowNode(); err != nil {
				return err
			}
		} else {
			p.appendEmptyScalar(tag.None, anchor.None)
		}
		p.queue = append(p.queue, event.NewMappingEnd())
		return nil
	}

	if tok.Kind == token.Scalar || tok.Kind == token.ScalarPart {
		next, err := p.peekN(1)
		if err != nil {
			return err
		}
		if next.Kind == token.Colon {
			p.advance()
			style := token.Plain
			hint := tok.Hint
			if tok.Kind == token.Scalar {
				style = tok.Style
				hint = hints.Unknown
			}
			p.queue = append(p.queue, event.NewMappingStart(tag.Map, anchorID, event.Flow))
			p.queue = append(p.queue, event.NewScalar(p.resolveScalarTag(tagID, hint, style), anchor.None, tok.Text, style))
			p.advance() // colon
			t2, err := p.peekN(0)
			if err != nil {
				return err
			}
			if t2.Kind == token.Comma || t2.Kind == token.ClosingBracket {
				p.appendEmptyScalar(tag.None, anchor.None)
			} else if err := p.parseFlowNode(); err != nil {
				return err
			}
			p.queue = append(p.queue, event.NewMappingEnd())
			return nil
		}
	}

	return p.parseFlowValue(tagID, anchorID)
}

// parseFlowMappingEntry parses one "{...}" entry: "key: value", "key"
// alone (value defaults to null), or "? key : value".
func (p *Parser) parseFlowMappingEntry() error {
	tok, err := p.peekN(0)
	if err != nil {
		return err
	}
	if tok.Kind == token.QuestionMark {
		p.advance()
	}
	if err := p.parseFlowNode(); err != nil {
		return err
	}
	t, err := p.peekN(0)
	if err != nil {
		return err
	}
	if t.Kind == token.Colon {
		p.advance()
		t2, err := p.peekN(0)
		if err != nil {
			return err
		}
		if t2.Kind == token.Comma || t2.Kind == token.ClosingBrace {
			p.appendEmptyScalar(tag.None, anchor.None)
		} else if err := p.parseFlowNode(); err != nil {
			return err
		}
		return nil
	}
	// bare key in "{a, b}" shorthand, or "? key" with no ':' — value is null.
	p.appendEmptyScalar(tag.None, anchor.None)
	return nil
}
