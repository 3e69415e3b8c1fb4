// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore/core/internal/anchor"
	"github.com/yamlcore/core/internal/tag"
)

func TestSliceReplaysThenStreamEnd(t *testing.T) {
	s := NewSlice([]Event{NewStreamStart(), NewScalar(tag.None, anchor.None, "x", Plain)})
	e, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, StreamStart, e.Type)

	e, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, Scalar, e.Type)
	require.Equal(t, "x", e.Content)

	e, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, StreamEnd, e.Type)

	e, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, StreamEnd, e.Type, "Next past the end keeps returning StreamEnd")
}

func TestDrainStopsAtStreamEnd(t *testing.T) {
	events := []Event{NewStreamStart(), NewDocumentStart(false, nil), NewDocumentEnd(false), NewStreamEnd()}
	out, err := Drain(NewSlice(events))
	require.NoError(t, err)
	require.Equal(t, events, out)
}

func TestCheckWellFormedAcceptsBalancedStream(t *testing.T) {
	a := anchor.New()
	id := a.Declare("x")
	events := []Event{
		NewStreamStart(),
		NewDocumentStart(false, nil),
		NewSequenceStart(tag.Seq, id, Block),
		NewScalar(tag.Str, anchor.None, "one", Plain),
		NewAlias(id),
		NewSequenceEnd(),
		NewDocumentEnd(false),
		NewStreamEnd(),
	}
	require.NoError(t, CheckWellFormed(events))
}

func TestCheckWellFormedRejectsUnmatchedEnd(t *testing.T) {
	events := []Event{NewStreamStart(), NewMappingEnd(), NewStreamEnd()}
	require.Error(t, CheckWellFormed(events))
}

func TestCheckWellFormedRejectsDanglingAlias(t *testing.T) {
	events := []Event{NewStreamStart(), NewAlias(anchor.ID(7)), NewStreamEnd()}
	require.Error(t, CheckWellFormed(events))
}

func TestCheckWellFormedRejectsUnclosedCollection(t *testing.T) {
	events := []Event{NewStreamStart(), NewMappingStart(tag.Map, anchor.None, Block), NewStreamEnd()}
	require.Error(t, CheckWellFormed(events))
}

func TestCheckWellFormedResetsAnchorScopePerDocument(t *testing.T) {
	a := anchor.New()
	id := a.Declare("x")
	events := []Event{
		NewStreamStart(),
		NewDocumentStart(false, nil),
		NewScalar(tag.Str, id, "one", Plain),
		NewDocumentEnd(false),
		NewDocumentStart(false, nil),
		NewAlias(id), // anchor scope does not cross documents
		NewDocumentEnd(false),
		NewStreamEnd(),
	}
	require.Error(t, CheckWellFormed(events))
}

func TestEventStringSummarizesScalar(t *testing.T) {
	e := NewScalar(tag.Str, anchor.None, "hi", Plain)
	require.Contains(t, e.String(), "hi")
}
