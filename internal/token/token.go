// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package token defines the lexer's token vocabulary and the scalar-style
// enum shared with the event model. Grounded on go.yaml.in/yaml/v2's TokenType/
// Token definitions in internal/libyaml/yaml.go, expanded with the
// plain-scalar type hint ScalarPart carries.
package token

import "github.com/yamlcore/core/internal/hints"

// ScalarStyle is the lexical form a scalar was written in.
type ScalarStyle int8

const (
	AnyScalarStyle ScalarStyle = iota
	Plain
	SingleQuoted
	DoubleQuoted
	Literal
	Folded
)

func (s ScalarStyle) String() string {
	switch s {
	case Plain:
		return "Plain"
	case SingleQuoted:
		return "SingleQuoted"
	case DoubleQuoted:
		return "DoubleQuoted"
	case Literal:
		return "Literal"
	case Folded:
		return "Folded"
	default:
		return "Any"
	}
}

// Kind enumerates the token kinds the lexer can produce.
type Kind int

const (
	NoToken Kind = iota
	StreamEnd
	LineStart // carries Indent
	DirectivesEnd
	DocumentEnd
	YAMLDirective
	TagDirective
	VersionPart
	TagHandle
	TagURI
	TagSuffix
	VerbatimTag
	UnknownDirective
	UnknownDirectiveParam
	Dash
	QuestionMark
	Colon
	Comma
	OpeningBrace
	ClosingBrace
	OpeningBracket
	ClosingBracket
	Pipe
	Greater
	Plus
	BlockIndentationIndicator
	Anchor
	Alias
	Scalar    // quoted or block scalar, content fully resolved
	ScalarPart // plain scalar fragment, carries a type Hint
	Comment
)

func (k Kind) String() string {
	names := [...]string{
		"NoToken", "StreamEnd", "LineStart", "DirectivesEnd", "DocumentEnd",
		"YAMLDirective", "TagDirective", "VersionPart", "TagHandle", "TagURI",
		"TagSuffix", "VerbatimTag", "UnknownDirective", "UnknownDirectiveParam",
		"Dash", "QuestionMark", "Colon", "Comma", "OpeningBrace", "ClosingBrace",
		"OpeningBracket", "ClosingBracket", "Pipe", "Greater", "Plus",
		"BlockIndentationIndicator", "Anchor", "Alias", "Scalar", "ScalarPart",
		"Comment",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Token is one lexical unit produced by the scanner.
type Token struct {
	Kind Kind

	StartLine, StartColumn int
	EndLine, EndColumn     int

	// Text carries the decoded token content: scalar content, anchor/alias
	// name, tag handle or suffix, directive parameter, comment text.
	Text string

	// Style is set for Scalar/ScalarPart tokens.
	Style ScalarStyle

	// Hint is set for ScalarPart tokens: the plain scalar's inferred type,
	// computed once by the scanner so the parser need not re-scan it.
	Hint hints.Kind

	// Indent is set for LineStart tokens: the indentation column (0-based
	// count of leading spaces) of the new line.
	Indent int

	// Chomping/BlockIndent are set for block scalars (Literal/Folded).
	Chomping    Chomping
	BlockIndent int // 0 means "not explicitly given"
}

// Chomping is the trailing-newline handling mode of a block scalar.
type Chomping int8

const (
	ClipChomping Chomping = iota // default: keep exactly one trailing newline
	StripChomping                // remove all trailing newlines
	KeepChomping                 // keep all trailing newlines
)
