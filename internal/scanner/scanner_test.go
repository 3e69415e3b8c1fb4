// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/core/internal/hints"
	"github.com/yamlcore/core/internal/reader"
	"github.com/yamlcore/core/internal/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	r, err := reader.NewFromBytes([]byte(src))
	require.NoError(t, err)
	s := New(r)
	var out []token.Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == token.StreamEnd {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestScanLineStartEmitsIndent(t *testing.T) {
	toks := scan(t, "  foo\n")
	require.Equal(t, token.LineStart, toks[0].Kind)
	require.Equal(t, 2, toks[0].Indent)
	require.Equal(t, token.ScalarPart, toks[1].Kind)
	require.Equal(t, "foo", toks[1].Text)
}

func TestScanBlankLinesAreSkipped(t *testing.T) {
	toks := scan(t, "\n\nfoo\n")
	require.Equal(t, []token.Kind{token.LineStart, token.ScalarPart, token.StreamEnd}, kinds(toks))
}

func TestScanYAMLDirective(t *testing.T) {
	toks := scan(t, "%YAML 1.2\n---\n")
	require.Equal(t, token.YAMLDirective, toks[1].Kind)
	require.Equal(t, "1.2", toks[1].Text)
	require.Equal(t, token.DirectivesEnd, toks[3].Kind)
}

func TestScanMalformedYAMLDirective(t *testing.T) {
	r, err := reader.NewFromBytes([]byte("%YAML 12\n"))
	require.NoError(t, err)
	s := New(r)
	_, err = s.Next() // LineStart
	require.NoError(t, err)
	_, err = s.Next() // the malformed directive itself
	require.Error(t, err)
}

func TestScanTagDirective(t *testing.T) {
	toks := scan(t, "%TAG !e! tag:example.com,2000:\n---\n")
	require.Equal(t, token.TagDirective, toks[1].Kind)
	require.Equal(t, "!e! tag:example.com,2000:", toks[1].Text)
}

func TestScanFlowPunctuationTracksFlowLevel(t *testing.T) {
	toks := scan(t, "[a, b]\n")
	require.Equal(t, []token.Kind{
		token.LineStart, token.OpeningBracket, token.ScalarPart, token.Comma,
		token.ScalarPart, token.ClosingBracket, token.StreamEnd,
	}, kinds(toks))
}

func TestScanDashAndColonAreBlockIndicators(t *testing.T) {
	toks := scan(t, "- a: b\n")
	require.Equal(t, token.LineStart, toks[0].Kind)
	require.Equal(t, token.Dash, toks[1].Kind)
	require.Equal(t, token.ScalarPart, toks[2].Kind)
	require.Equal(t, "a", toks[2].Text)
	require.Equal(t, token.Colon, toks[3].Kind)
}

func TestScanColonInsidePlainScalarIsNotIndicator(t *testing.T) {
	toks := scan(t, "http://example.com\n")
	require.Equal(t, token.ScalarPart, toks[1].Kind)
	require.Equal(t, "http://example.com", toks[1].Text)
}

func TestScanAnchorAndAlias(t *testing.T) {
	toks := scan(t, "&a1 val\n*a1\n")
	require.Equal(t, token.Anchor, toks[1].Kind)
	require.Equal(t, "a1", toks[1].Text)
	aliasTok := toks[len(toks)-2]
	require.Equal(t, token.Alias, aliasTok.Kind)
	require.Equal(t, "a1", aliasTok.Text)
}

func TestScanEmptyAnchorIsError(t *testing.T) {
	r, err := reader.NewFromBytes([]byte("& foo\n"))
	require.NoError(t, err)
	s := New(r)
	_, err = s.Next() // LineStart
	require.NoError(t, err)
	_, err = s.Next() // the bare '&' itself
	require.Error(t, err)
}

func TestScanVerbatimTag(t *testing.T) {
	toks := scan(t, "!<tag:example.com,2000:foo> bar\n")
	require.Equal(t, token.VerbatimTag, toks[1].Kind)
	require.Equal(t, "tag:example.com,2000:foo", toks[1].Text)
}

func TestScanShorthandTag(t *testing.T) {
	toks := scan(t, "!!str foo\n")
	require.Equal(t, token.TagHandle, toks[1].Kind)
	require.Equal(t, "!!\x00str", toks[1].Text)
}

func TestScanNonSpecificTag(t *testing.T) {
	toks := scan(t, "! foo\n")
	require.Equal(t, token.TagHandle, toks[1].Kind)
	require.Equal(t, "!\x00", toks[1].Text)
}

func TestScanSingleQuotedEscapesQuote(t *testing.T) {
	toks := scan(t, "'it''s'\n")
	require.Equal(t, token.Scalar, toks[1].Kind)
	require.Equal(t, "it's", toks[1].Text)
	require.Equal(t, token.SingleQuoted, toks[1].Style)
}

func TestScanDoubleQuotedEscapes(t *testing.T) {
	toks := scan(t, `"a\tb\nc\x41"` + "\n")
	require.Equal(t, token.Scalar, toks[1].Kind)
	require.Equal(t, "a\tb\ncA", toks[1].Text)
}

func TestScanDoubleQuotedUnicodeEscape(t *testing.T) {
	toks := scan(t, `"\U000000E9"` + "\n")
	require.Equal(t, "é", toks[1].Text)
}

func TestScanDoubleQuotedLineContinuation(t *testing.T) {
	toks := scan(t, "\"a\\\n   b\"\n")
	require.Equal(t, "ab", toks[1].Text)
}

func TestScanDoubleQuotedUnknownEscapeErrors(t *testing.T) {
	r, err := reader.NewFromBytes([]byte(`"\q"` + "\n"))
	require.NoError(t, err)
	sc := New(r)
	_, err = sc.Next() // LineStart
	require.NoError(t, err)
	_, err = sc.Next() // the quoted scalar itself
	require.Error(t, err)
}

func TestScanPlainScalarFoldsContinuationLines(t *testing.T) {
	toks := scan(t, "foo\n  bar\n  baz\n")
	require.Equal(t, "foo bar baz", toks[1].Text)
}

func TestScanPlainScalarStopsAtLesserIndent(t *testing.T) {
	toks := scan(t, "foo\nbar\n")
	require.Equal(t, "foo", toks[1].Text)
}

func TestScanPlainScalarHint(t *testing.T) {
	toks := scan(t, "42\n")
	require.Equal(t, "42", toks[1].Text)
	require.Equal(t, hints.Integer, toks[1].Hint)
}

func TestScanCommentIsSkipped(t *testing.T) {
	toks := scan(t, "foo # a comment\nbar\n")
	require.Equal(t, "foo", toks[1].Text)
}

func TestScanLiteralBlockScalarClipChomping(t *testing.T) {
	toks := scan(t, "|\n  line1\n  line2\n")
	require.Equal(t, token.Scalar, toks[1].Kind)
	require.Equal(t, token.Literal, toks[1].Style)
	require.Equal(t, "line1\nline2\n", toks[1].Text)
}

func TestScanLiteralBlockScalarStripChomping(t *testing.T) {
	toks := scan(t, "|-\n  line1\n  line2\n\n\n")
	require.Equal(t, "line1\nline2", toks[1].Text)
}

func TestScanLiteralBlockScalarKeepChomping(t *testing.T) {
	toks := scan(t, "|+\n  line1\n\n\n")
	require.Equal(t, "line1\n\n\n", toks[1].Text)
}

func TestScanFoldedBlockScalarFoldsLines(t *testing.T) {
	toks := scan(t, ">\n  line1\n  line2\n\n  line3\n")
	require.Equal(t, token.Folded, toks[1].Style)
	require.Equal(t, "line1 line2\nline3\n", toks[1].Text)
}

func TestScanBlockScalarExplicitIndent(t *testing.T) {
	// explicit indent of 2 strips only 2 spaces of margin, leaving the
	// extra 2 spaces of "    line1" as literal content.
	toks := scan(t, "|2\n    line1\n")
	require.Equal(t, "  line1\n", toks[1].Text)
}

func TestScanDocumentEndMarker(t *testing.T) {
	toks := scan(t, "foo\n...\n")
	require.Contains(t, kinds(toks), token.DocumentEnd)
}
