// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package core is the public facade over the event parser and presenter:
// read a YAML character stream into events with NewParser, write events
// back out with NewPresenter. It has nothing to hide beyond that core:
// there is no reflection-based Marshal/Unmarshal surface, no DOM, and no
// JSON conversion layer — those are left as external collaborators built
// on top of the Event stream this package exposes.
package core

import (
	"io"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/event"
	"github.com/yamlcore/core/internal/parser"
	"github.com/yamlcore/core/internal/presenter"
	"github.com/yamlcore/core/internal/reader"
	"github.com/yamlcore/core/internal/tag"
)

// Re-exported so callers never need to import an internal package.
type (
	// Event is one item of a structural event stream.
	Event = event.Event
	// EventType discriminates an Event's variant.
	EventType = event.Type
	// Stream is the pull-based producer contract both Parser and
	// Presenter's input satisfy.
	Stream = event.Stream
	// Version is a parsed "%YAML major.minor" directive.
	Version = event.Version
	// CollectionStyle selects block or flow presentation for a mapping
	// or sequence.
	CollectionStyle = event.CollectionStyle
	// ScalarStyle selects a scalar's presentation form.
	ScalarStyle = event.ScalarStyle
	// TagID names a tag URI registered in a Tags library.
	TagID = tag.ID
	// AnchorID names an anchor within the document that declared it.
	AnchorID = anchor.ID
	// Tags is a bidirectional tag-URI <-> TagID library.
	Tags = tag.Library
	// Options configures a Presenter.
	Options = presenter.Options
	// Containers selects how a Presenter chooses block vs. flow style.
	Containers = presenter.Containers
	// Quoting selects how a Presenter quotes otherwise plain-safe
	// scalars.
	Quoting = presenter.Quoting
	// TagStyle selects how a Presenter renders explicit tags.
	TagStyle = presenter.TagStyle
	// Warning is a non-fatal parser diagnostic.
	Warning = parser.Warning
)

const (
	StreamStart   = event.StreamStart
	StreamEnd     = event.StreamEnd
	DocumentStart = event.DocumentStart
	DocumentEnd   = event.DocumentEnd
	MappingStart  = event.MappingStart
	MappingEnd    = event.MappingEnd
	SequenceStart = event.SequenceStart
	SequenceEnd   = event.SequenceEnd
	Scalar        = event.Scalar
	Alias         = event.Alias
)

const (
	AnyStyle = event.AnyStyle
	Block    = event.Block
	Flow     = event.Flow
)

const (
	AnyScalarStyle = event.AnyScalarStyle
	Plain          = event.Plain
	SingleQuoted   = event.SingleQuoted
	DoubleQuoted   = event.DoubleQuoted
	Literal        = event.Literal
	Folded         = event.Folded
)

const (
	Mixed = presenter.Mixed
	// BlockContainers forces every collection to block style.
	BlockContainers = presenter.Block
	// FlowContainers forces every collection to flow style.
	FlowContainers = presenter.Flow
)

const (
	QuoteMinimal = presenter.QuoteMinimal
	QuoteStrings = presenter.QuoteStrings
	QuoteAll     = presenter.QuoteAll
)

const (
	TagShorthand = presenter.TagShorthand
	TagVerbatim  = presenter.TagVerbatim
)

// NoAnchor and NoTag are the sentinel "not set" ids for AnchorID and TagID.
const (
	NoAnchor = anchor.None
	NoTag    = tag.None
)

// FailsafeTags, CoreTags and ExtendedTags build a fresh Tags library seeded
// with the failsafe, core, or YAML-1.1-compatibility schema respectively.
func FailsafeTags() *Tags { return tag.Failsafe() }
func CoreTags() *Tags     { return tag.Core() }
func ExtendedTags() *Tags { return tag.Extended() }

// Parser reads a YAML character stream and produces an Event stream. It
// satisfies Stream.
type Parser struct {
	p *parser.Parser
}

// NewParser returns a Parser reading the entirety of r. All of r is read
// into memory before NewParser returns; events are then produced lazily,
// one per call to Next.
func NewParser(r io.Reader) (*Parser, error) {
	rd, err := reader.New(r)
	if err != nil {
		return nil, err
	}
	return &Parser{p: parser.New(rd)}, nil
}

// OnWarning registers f to receive non-fatal diagnostics produced while
// parsing (an off-1.2 version directive, a redefined handle). Returns p
// for chaining. Must be called before the first call to Next.
func (p *Parser) OnWarning(f func(Warning)) *Parser {
	p.p.OnWarning(f)
	return p
}

// Next returns the next event, or an error. Once StreamEnd or an error has
// been produced, further calls keep returning it.
func (p *Parser) Next() (Event, error) {
	return p.p.Next()
}

// Tags returns the tag library this parser resolves shorthand and
// verbatim tags against. Pass it to a Presenter's Options.Tags to keep
// custom tag URIs round-tripping to the same ids across a parse-then-
// present pipeline.
func (p *Parser) Tags() *Tags {
	return p.p.Tags()
}

// Parse reads all of r and returns its fully drained Event stream. A
// convenience wrapper around NewParser and event.Drain for callers that
// don't need streaming or a warning callback.
func Parse(r io.Reader) ([]Event, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}
	return event.Drain(p)
}

// Presenter writes an Event stream to an io.Writer as YAML text.
type Presenter struct {
	pr *presenter.Presenter
}

// NewPresenter returns a Presenter writing to w with opts.
func NewPresenter(w io.Writer, opts Options) *Presenter {
	return &Presenter{pr: presenter.New(w, opts)}
}

// Present drains s and writes every document it produces.
func (p *Presenter) Present(s Stream) error {
	return p.pr.Present(s)
}

// Present is a convenience wrapper that drains events into w using opts in
// a single call, for callers that already have an in-memory event slice
// and don't need to reuse a Presenter across streams.
func Present(w io.Writer, events []Event, opts Options) error {
	return NewPresenter(w, opts).Present(event.NewSlice(events))
}

// CheckWellFormed verifies the structural invariant every valid Event
// stream must hold. See event.CheckWellFormed for the exact rules.
func CheckWellFormed(events []Event) error {
	return event.CheckWellFormed(events)
}
