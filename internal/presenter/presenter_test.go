// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package presenter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/event"
	"github.com/yamlcore/core/internal/tag"
)

func render(t *testing.T, opts Options, events []event.Event) string {
	t.Helper()
	var buf bytes.Buffer
	p := New(&buf, opts)
	require.NoError(t, p.Present(event.NewSlice(events)))
	return buf.String()
}

func TestPresentScalarDocument(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewScalar(tag.Str, anchor.None, "hello", event.Plain),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "hello\n", render(t, Options{}, events))
}

func TestPresentBlockMapping(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewMappingStart(tag.Map, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.None, "a", event.Plain),
		event.NewScalar(tag.Int, anchor.None, "1", event.Plain),
		event.NewScalar(tag.Str, anchor.None, "b", event.Plain),
		event.NewScalar(tag.Str, anchor.None, "two", event.Plain),
		event.NewMappingEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "a: 1\nb: two\n", render(t, Options{}, events))
}

func TestPresentBlockSequence(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewSequenceStart(tag.Seq, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.None, "one", event.Plain),
		event.NewScalar(tag.Str, anchor.None, "two", event.Plain),
		event.NewSequenceEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "- one\n- two\n", render(t, Options{}, events))
}

func TestPresentFlowSequence(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewSequenceStart(tag.Seq, anchor.None, event.Flow),
		event.NewScalar(tag.Int, anchor.None, "1", event.Plain),
		event.NewScalar(tag.Int, anchor.None, "2", event.Plain),
		event.NewScalar(tag.Int, anchor.None, "3", event.Plain),
		event.NewSequenceEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "[1, 2, 3]\n", render(t, Options{}, events))
}

func TestPresentFlowMapping(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewMappingStart(tag.Map, anchor.None, event.Flow),
		event.NewScalar(tag.Str, anchor.None, "a", event.Plain),
		event.NewScalar(tag.Int, anchor.None, "1", event.Plain),
		event.NewMappingEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "{a: 1}\n", render(t, Options{}, events))
}

func TestPresentForceBlockContainers(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewSequenceStart(tag.Seq, anchor.None, event.Flow),
		event.NewScalar(tag.Str, anchor.None, "x", event.Plain),
		event.NewSequenceEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "- x\n", render(t, Options{Containers: Block}, events))
}

func TestPresentEmptyValueOmitsSpace(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewMappingStart(tag.Map, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.None, "a", event.Plain),
		event.NewScalar(tag.Null, anchor.None, "", event.Plain),
		event.NewMappingEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "a:\n", render(t, Options{}, events))
}

func TestPresentQuotesAmbiguousPlainScalar(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewScalar(tag.Str, anchor.None, "true", event.Plain),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "\"true\"\n", render(t, Options{}, events))
}

func TestPresentExplicitDocumentMarkers(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(true, nil),
		event.NewScalar(tag.Str, anchor.None, "x", event.Plain),
		event.NewDocumentEnd(true),
		event.NewStreamEnd(),
	}
	require.Equal(t, "---\nx\n...\n", render(t, Options{}, events))
}

func TestPresentAnchorAndAlias(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewSequenceStart(tag.Seq, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.ID(1), "x", event.Plain),
		event.NewAlias(anchor.ID(1)),
		event.NewSequenceEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "- &a1 x\n- *a1\n", render(t, Options{}, events))
}

func TestPresentExplicitTagWithoutHandleRendersVerbatim(t *testing.T) {
	lib := tag.Core()
	id := lib.RegisterURI("tag:example.com,2000:foo")
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewScalar(id, anchor.None, "bar", event.Plain),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	out := render(t, Options{Tags: lib}, events)
	require.Equal(t, "!<tag:example.com,2000:foo> bar\n", out)
}

func TestPresentLiteralBlockScalar(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewMappingStart(tag.Map, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.None, "text", event.Plain),
		event.NewScalar(tag.Str, anchor.None, "line1\nline2\n", event.Literal),
		event.NewMappingEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "text: |\n  line1\n  line2\n", render(t, Options{}, events))
}

func TestPresentEmptyDocumentRendersNothing(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewScalar(tag.Null, anchor.None, "", event.Plain),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "", render(t, Options{}, events))
}

func TestPresentExplicitMarkerOnlyDocumentRendersJustTheMarker(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(true, nil),
		event.NewScalar(tag.Null, anchor.None, "", event.Plain),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "---\n", render(t, Options{}, events))
}

func TestPresentJSONRendersNullLiteral(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewMappingStart(tag.Map, anchor.None, event.Block),
		event.NewScalar(tag.Str, anchor.None, "a", event.Plain),
		event.NewScalar(tag.Null, anchor.None, "", event.Plain),
		event.NewMappingEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, `{"a": null}`+"\n", render(t, Options{JSON: true}, events))
}

func TestPresentCondenseFlow(t *testing.T) {
	events := []event.Event{
		event.NewStreamStart(),
		event.NewDocumentStart(false, nil),
		event.NewSequenceStart(tag.Seq, anchor.None, event.Flow),
		event.NewScalar(tag.Int, anchor.None, "1", event.Plain),
		event.NewScalar(tag.Int, anchor.None, "2", event.Plain),
		event.NewSequenceEnd(),
		event.NewDocumentEnd(false),
		event.NewStreamEnd(),
	}
	require.Equal(t, "[1,2]\n", render(t, Options{CondenseFlow: true}, events))
}
