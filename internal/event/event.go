// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package event defines the tagged-union Event type and the pull-based
// Stream interface shared by the parser and the presenter. Grounded on
// go.yaml.in/yaml/v2's EventType/Event (internal/libyaml/yaml.go) and its NewXxxEvent
// constructors (internal/libyaml/api.go), adapted from byte-slice
// tag/anchor fields to this package's integer tag.ID/anchor.ID ids.
package event

import (
	"fmt"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/mark"
	"github.com/yamlcore/core/internal/tag"
	"github.com/yamlcore/core/internal/token"
)

// CollectionStyle is the presentation style of a mapping or sequence.
type CollectionStyle int8

const (
	AnyStyle CollectionStyle = iota
	Block
	Flow
)

func (s CollectionStyle) String() string {
	switch s {
	case Block:
		return "Block"
	case Flow:
		return "Flow"
	default:
		return "Any"
	}
}

// ScalarStyle mirrors token.ScalarStyle at the event layer, keeping the
// event package's public surface free of an internal/token dependency for
// anyone consuming just the event model.
type ScalarStyle = token.ScalarStyle

const (
	AnyScalarStyle = token.AnyScalarStyle
	Plain          = token.Plain
	SingleQuoted   = token.SingleQuoted
	DoubleQuoted   = token.DoubleQuoted
	Literal        = token.Literal
	Folded         = token.Folded
)

// Type discriminates the Event tagged union.
type Type int8

const (
	NoEvent Type = iota
	StreamStart
	StreamEnd
	DocumentStart
	DocumentEnd
	MappingStart
	MappingEnd
	SequenceStart
	SequenceEnd
	Scalar
	Alias
)

func (t Type) String() string {
	names := [...]string{
		"NoEvent", "StreamStart", "StreamEnd", "DocumentStart", "DocumentEnd",
		"MappingStart", "MappingEnd", "SequenceStart", "SequenceEnd",
		"Scalar", "Alias",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "Unknown"
	}
	return names[t]
}

// Version is a parsed "%YAML major.minor" directive.
type Version struct {
	Major, Minor uint16
}

// Event is a tagged union. Only the fields relevant to Type are
// meaningful; others are left at their zero value. Unlike go.yaml.in/yaml/v2's
// single flat C-style struct, field access is not panic-guarded by kind
// (Go has no sum types; callers are expected to switch on Type the way the
// parser itself does).
type Event struct {
	Type Type
	Mark mark.Mark

	// DocumentStart / DocumentEnd
	Explicit bool
	Version  *Version // DocumentStart only; nil if no %YAML directive

	// MappingStart / SequenceStart / Scalar
	Tag    tag.ID
	Anchor anchor.ID

	// MappingStart / SequenceStart
	CollectionStyle CollectionStyle

	// Scalar
	Content     string
	ScalarStyle ScalarStyle

	// Alias
	Target anchor.ID
}

func (e Event) String() string {
	switch e.Type {
	case Scalar:
		return fmt.Sprintf("Scalar(%q, tag=%d, anchor=%d, style=%s)", e.Content, e.Tag, e.Anchor, e.ScalarStyle)
	case Alias:
		return fmt.Sprintf("Alias(target=%d)", e.Target)
	case MappingStart, SequenceStart:
		return fmt.Sprintf("%s(tag=%d, anchor=%d, style=%s)", e.Type, e.Tag, e.Anchor, e.CollectionStyle)
	default:
		return e.Type.String()
	}
}

// Constructors, mirroring go.yaml.in/yaml/v2's NewStreamStartEvent/NewScalarEvent/...

func NewStreamStart() Event { return Event{Type: StreamStart} }
func NewStreamEnd() Event   { return Event{Type: StreamEnd} }

func NewDocumentStart(explicit bool, version *Version) Event {
	return Event{Type: DocumentStart, Explicit: explicit, Version: version}
}

func NewDocumentEnd(explicit bool) Event {
	return Event{Type: DocumentEnd, Explicit: explicit}
}

func NewMappingStart(id tag.ID, a anchor.ID, style CollectionStyle) Event {
	return Event{Type: MappingStart, Tag: id, Anchor: a, CollectionStyle: style}
}

func NewMappingEnd() Event { return Event{Type: MappingEnd} }

func NewSequenceStart(id tag.ID, a anchor.ID, style CollectionStyle) Event {
	return Event{Type: SequenceStart, Tag: id, Anchor: a, CollectionStyle: style}
}

func NewSequenceEnd() Event { return Event{Type: SequenceEnd} }

func NewScalar(id tag.ID, a anchor.ID, content string, style ScalarStyle) Event {
	return Event{Type: Scalar, Tag: id, Anchor: a, Content: content, ScalarStyle: style}
}

func NewAlias(target anchor.ID) Event { return Event{Type: Alias, Target: target} }

// Stream is the pull-based producer contract: consumers call Next
// repeatedly until a StreamEnd (or an error) is returned. Both
// *parser.Parser and any in-memory event slice (see Slice) satisfy it.
type Stream interface {
	Next() (Event, error)
}

// Slice adapts a pre-built []Event (e.g. the output of a test fixture, or
// of another Stream fully drained) into a Stream, for feeding the
// presenter directly without a live parser.
type Slice struct {
	events []Event
	pos    int
}

// NewSlice returns a Stream that replays events in order.
func NewSlice(events []Event) *Slice { return &Slice{events: events} }

func (s *Slice) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return NewStreamEnd(), nil
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}

// Drain pulls every event out of a Stream into a slice, stopping at (and
// including) the first StreamEnd or the first error.
func Drain(s Stream) ([]Event, error) {
	var out []Event
	for {
		e, err := s.Next()
		if err != nil {
			return out, err
		}
		out = append(out, e)
		if e.Type == StreamEnd {
			return out, nil
		}
	}
}

// CheckWellFormed verifies the structural invariant every valid event
// stream must hold: every *Start is matched by the corresponding *End,
// every document open is closed, StreamStart/StreamEnd bracket the whole
// stream, and every Alias targets an anchor declared earlier in the same
// document.
func CheckWellFormed(events []Event) error {
	if len(events) == 0 || events[0].Type != StreamStart {
		return fmt.Errorf("event stream does not begin with StreamStart")
	}
	var stack []Type
	seenAnchors := map[anchor.ID]bool{}
	for i, e := range events {
		switch e.Type {
		case StreamStart:
			if i != 0 {
				return fmt.Errorf("StreamStart at position %d, want 0", i)
			}
		case DocumentStart:
			stack = append(stack, DocumentStart)
			seenAnchors = map[anchor.ID]bool{}
		case DocumentEnd:
			if len(stack) == 0 || stack[len(stack)-1] != DocumentStart {
				return fmt.Errorf("DocumentEnd without matching DocumentStart at position %d", i)
			}
			stack = stack[:len(stack)-1]
		case MappingStart:
			stack = append(stack, MappingStart)
			if e.Anchor != anchor.None {
				seenAnchors[e.Anchor] = true
			}
		case MappingEnd:
			if len(stack) == 0 || stack[len(stack)-1] != MappingStart {
				return fmt.Errorf("MappingEnd without matching MappingStart at position %d", i)
			}
			stack = stack[:len(stack)-1]
		case SequenceStart:
			stack = append(stack, SequenceStart)
			if e.Anchor != anchor.None {
				seenAnchors[e.Anchor] = true
			}
		case SequenceEnd:
			if len(stack) == 0 || stack[len(stack)-1] != SequenceStart {
				return fmt.Errorf("SequenceEnd without matching SequenceStart at position %d", i)
			}
			stack = stack[:len(stack)-1]
		case Scalar:
			if e.Anchor != anchor.None {
				seenAnchors[e.Anchor] = true
			}
		case Alias:
			if !seenAnchors[e.Target] {
				return fmt.Errorf("alias at position %d targets undeclared anchor %d", i, e.Target)
			}
		case StreamEnd:
			if i != len(events)-1 {
				return fmt.Errorf("StreamEnd before end of stream at position %d", i)
			}
			if len(stack) != 0 {
				return fmt.Errorf("%d collection(s)/document(s) left open at StreamEnd", len(stack))
			}
		}
	}
	if events[len(events)-1].Type != StreamEnd {
		return fmt.Errorf("event stream does not end with StreamEnd")
	}
	return nil
}
