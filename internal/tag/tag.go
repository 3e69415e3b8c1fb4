// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package tag implements the bidirectional tag-URI <-> small-integer-id
// mapping, plus the failsafe/core/extended predefined schema tiers.
// Grounded on go.yaml.in/yaml/v2's NULL_TAG..MAP_TAG/BINARY_TAG/MERGE_TAG
// constants in internal/libyaml/yaml.go, generalized from ad-hoc string
// constants to a registered id space.
package tag

import "strings"

// ID is an opaque small integer identifying a tag URI. The zero value is
// never assigned to a registered URI; it is reserved for "no tag set".
type ID int32

// Reserved ids.
const (
	None       ID = 0 // sentinel: no tag has been set yet
	NonSpecificExclamation ID = 1 // "!"
	NonSpecificQuestion    ID = 2 // "?"

	firstCoreID ID = 10
)

// Well-known core-schema URIs and their reserved ids, assigned in the same
// order go.yaml.in/yaml/v2 declares its tag constants.
const (
	uriStr       = "tag:yaml.org,2002:str"
	uriSeq       = "tag:yaml.org,2002:seq"
	uriMap       = "tag:yaml.org,2002:map"
	uriNull      = "tag:yaml.org,2002:null"
	uriBool      = "tag:yaml.org,2002:bool"
	uriInt       = "tag:yaml.org,2002:int"
	uriFloat     = "tag:yaml.org,2002:float"
	uriOmap      = "tag:yaml.org,2002:omap"
	uriPairs     = "tag:yaml.org,2002:pairs"
	uriSet       = "tag:yaml.org,2002:set"
	uriBinary    = "tag:yaml.org,2002:binary"
	uriMerge     = "tag:yaml.org,2002:merge"
	uriTimestamp = "tag:yaml.org,2002:timestamp"
	uriValue     = "tag:yaml.org,2002:value"
	uriYAML      = "tag:yaml.org,2002:yaml"
)

const (
	Str ID = firstCoreID + iota
	Seq
	Map
	Null
	Bool
	Int
	Float
	Omap
	Pairs
	Set
	Binary
	Merge
	Timestamp
	Value
	YAML

	firstCustomID // custom URIs are assigned ids starting here
)

var reservedURIs = map[ID]string{
	Str: uriStr, Seq: uriSeq, Map: uriMap,
	Null: uriNull, Bool: uriBool, Int: uriInt, Float: uriFloat,
	Omap: uriOmap, Pairs: uriPairs, Set: uriSet, Binary: uriBinary,
	Merge: uriMerge, Timestamp: uriTimestamp, Value: uriValue, YAML: uriYAML,
}

// Library is a bidirectional tag-URI <-> ID mapping. The zero value is not
// usable; construct one with New, Failsafe, Core, or Extended.
type Library struct {
	byURI map[string]ID
	byID  map[ID]string
	next  ID
}

// New returns a Library containing only the two non-specific tags.
func New() *Library {
	l := &Library{
		byURI: map[string]ID{},
		byID:  map[ID]string{},
		next:  firstCustomID,
	}
	return l
}

func (l *Library) seed(ids ...ID) *Library {
	for _, id := range ids {
		uri := reservedURIs[id]
		l.byURI[uri] = id
		l.byID[id] = uri
	}
	return l
}

// Failsafe returns a Library with the failsafe schema: "!", "?", !!str,
// !!seq, !!map.
func Failsafe() *Library {
	return New().seed(Str, Seq, Map)
}

// Core returns a Library with the core schema: failsafe plus !!null,
// !!bool, !!int, !!float.
func Core() *Library {
	return New().seed(Str, Seq, Map, Null, Bool, Int, Float)
}

// Extended returns a Library with the core schema plus the YAML 1.1
// compatibility tags: !!omap, !!pairs, !!set, !!binary, !!merge,
// !!timestamp, !!value, !!yaml.
func Extended() *Library {
	return New().seed(Str, Seq, Map, Null, Bool, Int, Float,
		Omap, Pairs, Set, Binary, Merge, Timestamp, Value, YAML)
}

// RegisterURI idempotently registers uri and returns its id, assigning the
// next available custom id on first sight.
func (l *Library) RegisterURI(uri string) ID {
	if id, ok := l.byURI[uri]; ok {
		return id
	}
	id := l.next
	l.next++
	l.byURI[uri] = id
	l.byID[id] = uri
	return id
}

// URIOf is the reverse lookup: uri, ok := lib.URIOf(id).
func (l *Library) URIOf(id ID) (string, bool) {
	switch id {
	case None:
		return "", false
	case NonSpecificExclamation:
		return "!", true
	case NonSpecificQuestion:
		return "?", true
	}
	uri, ok := l.byID[id]
	return uri, ok
}

// ResolveHandle concatenates the registered expansion of a tag handle
// ("!", "!!", or a custom "!h!") with suffix. expansions maps handle ->
// prefix URI, as populated from %TAG directives plus the two built-in
// defaults.
func ResolveHandle(expansions map[string]string, handle, suffix string) (string, bool) {
	prefix, ok := expansions[handle]
	if !ok {
		return "", false
	}
	return prefix + suffix, true
}

// DefaultHandles returns the handle table every new document starts with:
// {!: !, !!: tag:yaml.org,2002:}.
func DefaultHandles() map[string]string {
	return map[string]string{
		"!":  "!",
		"!!": "tag:yaml.org,2002:",
	}
}

// IsNonSpecific reports whether id is one of the two placeholder tags.
func IsNonSpecific(id ID) bool {
	return id == NonSpecificExclamation || id == NonSpecificQuestion
}

// ShortURI renders uri using a "!!" shorthand when it falls under the core
// schema prefix, for diagnostics and presenter defaults.
func ShortURI(uri string) string {
	const corePrefix = "tag:yaml.org,2002:"
	if strings.HasPrefix(uri, corePrefix) {
		return "!!" + uri[len(corePrefix):]
	}
	return uri
}
