// Copyright 2025 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package hints classifies a plain scalar's lexical form under the YAML 1.2
// core schema. Grounded on go.yaml.in/yaml/v2's resolver contract observed through
// internal/libyaml/resolver_test.go's "resolve-default"/"resolve-infer"
// fixtures (the resolver's own source was not retrieved), cross-checked
// against the YAML 1.2 core schema specification's regular expressions.
package hints

import "regexp"

// Kind is the result of classifying a plain scalar.
type Kind int

const (
	Unknown Kind = iota
	Null
	BoolTrue
	BoolFalse
	Integer
	Float
	FloatInf
	FloatNaN
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case BoolTrue:
		return "BoolTrue"
	case BoolFalse:
		return "BoolFalse"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case FloatInf:
		return "FloatInf"
	case FloatNaN:
		return "FloatNaN"
	case String:
		return "String"
	default:
		return "Unknown"
	}
}

// The core-schema regular expressions: true|True|TRUE|false|False|FALSE for
// booleans; null|Null|NULL|~
// (plus empty string, handled specially below) for null; signed/unsigned
// decimal for integers; the standard floating regex including
// .inf/.Inf/.INF and .nan/.NaN/.NAN.
var (
	reNull     = regexp.MustCompile(`^(null|Null|NULL|~)$`)
	reTrue     = regexp.MustCompile(`^(true|True|TRUE)$`)
	reFalse    = regexp.MustCompile(`^(false|False|FALSE)$`)
	reInt      = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)$`)
	reIntOctal = regexp.MustCompile(`^0o[0-7]+$`)
	reIntHex   = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	reFloat    = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
	reFloatInf = regexp.MustCompile(`^[-+]?\.(inf|Inf|INF)$`)
	reFloatNaN = regexp.MustCompile(`^\.(nan|NaN|NAN)$`)
)

// Classify is a pure function: equal inputs produce equal outputs. An
// unquoted empty string classifies as Null, per YAML 1.2 (an empty plain
// scalar has no lexical form to match any other rule).
func Classify(s string) Kind {
	switch {
	case s == "":
		return Null
	case reNull.MatchString(s):
		return Null
	case reTrue.MatchString(s):
		return BoolTrue
	case reFalse.MatchString(s):
		return BoolFalse
	case reFloatNaN.MatchString(s):
		return FloatNaN
	case reFloatInf.MatchString(s):
		return FloatInf
	case reInt.MatchString(s), reIntOctal.MatchString(s), reIntHex.MatchString(s):
		return Integer
	case reFloat.MatchString(s) && containsFloatMarker(s):
		return Float
	default:
		return String
	}
}

// containsFloatMarker requires a '.' or exponent so that a bare integer
// already matched above is never reclassified as a float.
func containsFloatMarker(s string) bool {
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}
