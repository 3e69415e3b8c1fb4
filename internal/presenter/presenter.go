// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package presenter renders an Event stream back into YAML text.
// Grounded on go.yaml.in/yaml/v2's buffer/put/putLineBreak/write
// primitives in internal/libyaml/emitter.go and the Options surface its
// api.go exposes through NewEmitter/SetIndent/SetWidth/SetCanonical/
// SetUnicode/SetLineBreak, generalized from go.yaml.in/yaml/v2's fixed encode
// pipeline to drive directly off this package's own Event/tag.ID/
// anchor.ID model instead of reflecting over Go values.
package presenter

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/event"
	"github.com/yamlcore/core/internal/hints"
	"github.com/yamlcore/core/internal/tag"
)

// Containers selects whether block/flow style is chosen per the source
// event's hint, or forced uniformly.
type Containers int8

const (
	Mixed Containers = iota // honor each collection's CollectionStyle; Any defaults to Block
	Block                   // force every collection to block style
	Flow                    // force every collection to flow style
)

// Quoting selects how plain-safe scalars are still quoted.
type Quoting int8

const (
	QuoteMinimal Quoting = iota // quote only scalars that are not plain-safe
	QuoteStrings                // always double-quote scalars classified as String
	QuoteAll                    // always double-quote every scalar
)

// Error is a PresenterError: a request the Options can't honor, as opposed
// to a failure writing to the underlying io.Writer.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "yaml: " + e.Message
}

// TagStyle selects how explicit tags are rendered.
type TagStyle int8

const (
	TagShorthand TagStyle = iota // "!!str", "!local", custom handles from Handles
	TagVerbatim                  // always "!<full-uri>"
)

// Options configures the presenter. The zero value is a usable, sane
// default (2-space indent, Mixed containers, no line-length limit).
type Options struct {
	IndentationStep int // spaces per nesting level; 0 means 2
	Containers      Containers
	MaxLineLength   int // not read: output lines are never wrapped, whatever the value
	Quoting         Quoting
	CondenseFlow    bool // "{a:1,b:2}" instead of "{a: 1, b: 2}"
	ExplicitKeys    bool // always emit "? key\n: value" even for simple keys
	TagStyle        TagStyle
	Handles         map[string]string // handle -> prefix, beyond the two defaults; declared by %TAG in every document
	Tags            *tag.Library      // nil uses a fresh core-schema library

	// JSON forces Containers to Flow and suppresses tag output entirely
	// (every collection and scalar is written in its bare JSON-compatible
	// form), and restricts the stream to a single document: a second
	// DocumentStart makes Present return an *Error.
	JSON bool
}

func (o Options) indent() int {
	if o.IndentationStep <= 0 {
		return 2
	}
	return o.IndentationStep
}

// Presenter writes an Event stream to an io.Writer as YAML text.
type Presenter struct {
	w    *bufio.Writer
	opts Options
	tags *tag.Library

	anchorNames  map[anchor.ID]string
	nextAnchorID int

	col        int // current output column, 1-based, for MaxLineLength
	lineIsOpen bool
}

// New returns a Presenter writing to w with opts.
func New(w io.Writer, opts Options) *Presenter {
	tags := opts.Tags
	if tags == nil {
		tags = tag.Core()
	}
	return &Presenter{
		w:           bufio.NewWriter(w),
		opts:        opts,
		tags:        tags,
		anchorNames: map[anchor.ID]string{},
	}
}

// Present drains s and writes every document it produces. It returns after
// the stream's StreamEnd, or on the first error from s or from writing.
func (p *Presenter) Present(s event.Stream) error {
	documents := 0
	for {
		e, err := s.Next()
		if err != nil {
			return err
		}
		switch e.Type {
		case event.StreamStart:
			continue
		case event.StreamEnd:
			return p.w.Flush()
		case event.DocumentStart:
			if p.opts.JSON && documents > 0 {
				return &Error{Message: "JSON compatibility mode supports only a single document"}
			}
			documents++
			if err := p.presentDocument(s, e); err != nil {
				return err
			}
		default:
			return fmt.Errorf("yaml: unexpected %s at stream level", e.Type)
		}
	}
}

func (p *Presenter) presentDocument(s event.Stream, start event.Event) error {
	p.anchorNames = map[anchor.ID]string{}
	p.nextAnchorID = 1

	if start.Version != nil {
		p.writeLine(fmt.Sprintf("%%YAML %d.%d", start.Version.Major, start.Version.Minor))
	}
	var handles []string
	if !p.opts.JSON {
		for h := range p.opts.Handles {
			handles = append(handles, h)
		}
		sort.Strings(handles)
	}
	for _, h := range handles {
		p.writeLine("%TAG " + h + " " + p.opts.Handles[h])
	}
	if start.Explicit || start.Version != nil || len(handles) > 0 {
		p.writeLine("---")
	}

	e, err := s.Next()
	if err != nil {
		return err
	}
	if e.Type != event.DocumentEnd {
		switch {
		case isEmptyScalar(e):
			// A document whose entire body is the implicit null scalar
			// renders as nothing at all: the document boundary markers
			// (or their absence) already say everything there is to say.
		default:
			if err := p.presentNode(s, e, 0, false); err != nil {
				return err
			}
			if p.lineIsOpen {
				p.newline()
			}
		}
		e, err = s.Next()
		if err != nil {
			return err
		}
	}
	if e.Type != event.DocumentEnd {
		return fmt.Errorf("yaml: expected DocumentEnd, got %s", e.Type)
	}
	if e.Explicit {
		p.writeLine("...")
	}
	return nil
}

// presentNode writes one node (the event already read) at the given
// indentation column. inFlow reports whether we are already inside a flow
// collection, where block children are never legal.
func (p *Presenter) presentNode(s event.Stream, e event.Event, col int, inFlow bool) error {
	switch e.Type {
	case event.Scalar:
		return p.presentScalar(e, col)
	case event.Alias:
		p.write("*" + p.nameFor(e.Target))
		return nil
	case event.SequenceStart:
		return p.presentSequence(s, e, col, inFlow)
	case event.MappingStart:
		return p.presentMapping(s, e, col, inFlow)
	default:
		return fmt.Errorf("yaml: unexpected %s where a node was expected", e.Type)
	}
}

func (p *Presenter) useFlow(style event.CollectionStyle) bool {
	if p.opts.JSON {
		return true
	}
	switch p.opts.Containers {
	case Block:
		return false
	case Flow:
		return true
	default:
		return style == event.Flow
	}
}

func (p *Presenter) presentSequence(s event.Stream, start event.Event, col int, inFlow bool) error {
	p.writeProps(start.Tag, tag.Seq, start.Anchor)
	flow := inFlow || p.useFlow(start.CollectionStyle)
	if flow {
		return p.presentFlowSequence(s, col)
	}
	return p.presentBlockSequence(s, col)
}

func (p *Presenter) presentFlowSequence(s event.Stream, col int) error {
	p.write("[")
	first := true
	for {
		e, err := s.Next()
		if err != nil {
			return err
		}
		if e.Type == event.SequenceEnd {
			p.write("]")
			return nil
		}
		if !first {
			p.write(",")
			if !p.opts.CondenseFlow {
				p.write(" ")
			}
		}
		first = false
		if err := p.presentNode(s, e, col, true); err != nil {
			return err
		}
	}
}

func (p *Presenter) presentBlockSequence(s event.Stream, col int) error {
	childCol := col + p.opts.indent()
	empty := true
	for {
		e, err := s.Next()
		if err != nil {
			return err
		}
		if e.Type == event.SequenceEnd {
			if empty {
				p.write("[]")
			}
			return nil
		}
		empty = false
		if p.lineIsOpen {
			p.newline()
		}
		p.pad(col)
		p.write("-")
		p.write(" ")
		if err := p.presentNode(s, e, childCol, false); err != nil {
			return err
		}
	}
}

func (p *Presenter) presentMapping(s event.Stream, start event.Event, col int, inFlow bool) error {
	p.writeProps(start.Tag, tag.Map, start.Anchor)
	flow := inFlow || p.useFlow(start.CollectionStyle)
	if flow {
		return p.presentFlowMapping(s, col)
	}
	return p.presentBlockMapping(s, col)
}

func (p *Presenter) presentFlowMapping(s event.Stream, col int) error {
	p.write("{")
	first := true
	for {
		key, err := s.Next()
		if err != nil {
			return err
		}
		if key.Type == event.MappingEnd {
			p.write("}")
			return nil
		}
		if !first {
			p.write(",")
			if !p.opts.CondenseFlow {
				p.write(" ")
			}
		}
		first = false
		if err := p.presentNode(s, key, col, true); err != nil {
			return err
		}
		p.write(":")
		if !p.opts.CondenseFlow {
			p.write(" ")
		}
		val, err := s.Next()
		if err != nil {
			return err
		}
		if err := p.presentNode(s, val, col, true); err != nil {
			return err
		}
	}
}

func (p *Presenter) presentBlockMapping(s event.Stream, col int) error {
	childCol := col + p.opts.indent()
	empty := true
	for {
		key, err := s.Next()
		if err != nil {
			return err
		}
		if key.Type == event.MappingEnd {
			if empty {
				p.write("{}")
			}
			return nil
		}
		empty = false
		if p.lineIsOpen {
			p.newline()
		}
		p.pad(col)

		simple := key.Type == event.Scalar && !p.opts.ExplicitKeys
		if simple {
			if err := p.presentNode(s, key, col, false); err != nil {
				return err
			}
			p.write(":")
		} else {
			p.write("?")
			p.write(" ")
			if err := p.presentNode(s, key, childCol, false); err != nil {
				return err
			}
			p.newline()
			p.pad(col)
			p.write(":")
		}

		val, err := s.Next()
		if err != nil {
			return err
		}
		if isEmptyScalar(val) {
			continue
		}
		p.write(" ")
		if err := p.presentNode(s, val, childCol, false); err != nil {
			return err
		}
	}
}

func isEmptyScalar(e event.Event) bool {
	return e.Type == event.Scalar && e.Content == "" && e.Tag == tag.Null && e.Anchor == anchor.None
}

// ---- scalars ----------------------------------------------------------------

func (p *Presenter) presentScalar(e event.Event, col int) error {
	if p.opts.JSON && e.Tag == tag.Null && e.Content == "" {
		p.write("null")
		return nil
	}
	style := e.ScalarStyle
	quoting := p.opts.Quoting
	if p.opts.JSON && quoting == QuoteMinimal {
		quoting = QuoteStrings
	}
	if quoting == QuoteAll {
		style = event.DoubleQuoted
	} else if quoting == QuoteStrings && hints.Classify(e.Content) == hints.String {
		style = event.DoubleQuoted
	} else if style == event.AnyScalarStyle || style == event.Plain {
		if !isPlainSafe(e.Content, e.Tag) {
			style = event.DoubleQuoted
		}
	}

	// The tag is only worth spelling out when writing the scalar in its
	// chosen style would otherwise read back with a different implicit
	// tag; a quoted or block style already pins the implicit tag to str.
	implicit := tag.Str
	if style == event.Plain || style == event.AnyScalarStyle {
		implicit = tagForHint(hints.Classify(e.Content))
	}
	p.writeProps(e.Tag, implicit, e.Anchor)

	switch style {
	case event.SingleQuoted:
		p.write(singleQuote(e.Content))
	case event.DoubleQuoted:
		p.write(doubleQuote(e.Content))
	case event.Literal:
		p.presentLiteral(e.Content, col)
	case event.Folded:
		p.presentFolded(e.Content, col)
	default:
		p.write(e.Content)
	}
	return nil
}

func tagForHint(h hints.Kind) tag.ID {
	switch h {
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

var reUnsafePlain = regexp.MustCompile(`[\x00-\x1f\x7f]|^[\s]|[\s]$`)

// isPlainSafe reports whether content can be written without quoting: no
// control characters, no leading/trailing whitespace, not empty, and (when
// its implicit tag would not match the declared tag) not ambiguous with
// another core-schema scalar form.
func isPlainSafe(content string, declaredTag tag.ID) bool {
	if content == "" {
		return false
	}
	if reUnsafePlain.MatchString(content) {
		return false
	}
	if strings.ContainsAny(content, "#") && strings.Contains(content, " #") {
		return false
	}
	switch content[0] {
	case '!', '&', '*', '-', '?', '|', '>', '%', '@', '`', '"', '\'', ',', '[', ']', '{', '}', ':':
		return false
	}
	if strings.Contains(content, ": ") || strings.HasSuffix(content, ":") {
		return false
	}
	if strings.ContainsAny(content, "\n") {
		return false
	}
	h := hints.Classify(content)
	if declaredTag == tag.Str && h != hints.String && h != hints.Unknown {
		// a string tagged explicitly as !!str must not read back as a
		// different implicit type once its tag is dropped.
		return false
	}
	return true
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var doubleQuoteEscapes = map[rune]string{
	'\\': `\\`, '"': `\"`, '\n': `\n`, '\t': `\t`, '\r': `\r`,
	0: `\0`, '\a': `\a`, '\b': `\b`, '\v': `\v`, '\f': `\f`,
}

func doubleQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if esc, ok := doubleQuoteEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, "\\x%02X", r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// presentLiteral writes content (the scalar's fully-resolved value) as a
// literal block scalar at the given indentation column, choosing the
// chomping indicator that reproduces content's own trailing-newline count
// exactly.
func (p *Presenter) presentLiteral(content string, col int) {
	p.presentBlockScalar('|', content, col)
}

// presentFolded writes content as a folded block scalar. Lines are never
// wrapped; each "\n" in content is written as a line break followed by an
// empty line, since a single break between two text lines of a folded
// scalar reads back as a space.
func (p *Presenter) presentFolded(content string, col int) {
	p.presentBlockScalar('>', content, col)
}

func (p *Presenter) presentBlockScalar(indicator byte, content string, col int) {
	switch {
	case !strings.HasSuffix(content, "\n"):
		p.write(string(indicator) + "-")
	case strings.HasSuffix(content, "\n\n"):
		p.write(string(indicator) + "+")
	default:
		p.write(string(indicator)) // clip: exactly one trailing newline, the default
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	seenText := false
	for _, l := range lines {
		p.newline()
		if l != "" {
			if indicator == '>' && seenText {
				p.newline()
			}
			seenText = true
			p.pad(col)
			p.write(l)
		}
	}
	// keep chomping: every trailing newline beyond the first is an empty line.
	if extra := len(content) - len(strings.TrimRight(content, "\n")) - 1; extra > 0 {
		p.newline()
		for i := 0; i < extra; i++ {
			p.newline()
		}
	}
}

// ---- tags and anchors --------------------------------------------------------

func (p *Presenter) writeProps(explicit tag.ID, implicit tag.ID, a anchor.ID) {
	if p.opts.JSON {
		return
	}
	if explicit != tag.None && explicit != implicit {
		p.write(p.renderTag(explicit))
		p.write(" ")
	}
	if a != anchor.None {
		p.write("&" + p.nameFor(a))
		p.write(" ")
	}
}

func (p *Presenter) renderTag(id tag.ID) string {
	uri, ok := p.tags.URIOf(id)
	if !ok {
		return "!"
	}
	if p.opts.TagStyle != TagVerbatim {
		if short, ok := p.shorthandFor(uri); ok {
			return short
		}
	}
	return "!<" + uri + ">"
}

// shorthandFor renders uri using whichever registered handle's prefix it
// extends, preferring a custom handle from Options.Handles over the
// built-in "!!" core-schema prefix. A local tag ("!local") is already in
// shorthand form and is returned as is.
func (p *Presenter) shorthandFor(uri string) (string, bool) {
	for handle, prefix := range p.opts.Handles {
		if prefix != "" && strings.HasPrefix(uri, prefix) {
			return handle + uri[len(prefix):], true
		}
	}
	if strings.HasPrefix(uri, "!") {
		return uri, true
	}
	if short := tag.ShortURI(uri); short != uri {
		return short, true
	}
	return "", false
}

func (p *Presenter) nameFor(id anchor.ID) string {
	if name, ok := p.anchorNames[id]; ok {
		return name
	}
	name := fmt.Sprintf("a%d", p.nextAnchorID)
	p.nextAnchorID++
	p.anchorNames[id] = name
	return name
}

// ---- low-level output ---------------------------------------------------------

func (p *Presenter) write(s string) {
	p.w.WriteString(s)
	p.col += len(s)
	p.lineIsOpen = true
}

func (p *Presenter) writeLine(s string) {
	if p.lineIsOpen {
		p.newline()
	}
	p.write(s)
	p.newline()
}

func (p *Presenter) newline() {
	p.w.WriteByte('\n')
	p.col = 0
	p.lineIsOpen = false
}

func (p *Presenter) pad(col int) {
	p.w.WriteString(strings.Repeat(" ", col))
	p.col = col
	p.lineIsOpen = true
}
