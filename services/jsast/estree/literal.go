// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estree

import (
	"encoding/json"
	"math"
	"strings"
)

// LiteralKind selects which value field of a Literal is meaningful.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralString
	LiteralNumber
	LiteralBoolean
	LiteralRegExp
)

// String returns a human-readable kind name.
func (k LiteralKind) String() string {
	switch k {
	case LiteralNull:
		return "null"
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	case LiteralRegExp:
		return "regexp"
	default:
		return "unknown"
	}
}

// NewString returns a string literal. Raw is left for the caller to fill.
func NewString(s string) *Literal {
	return &Literal{Kind: LiteralString, StringValue: s}
}

// NewNumber returns a numeric literal.
func NewNumber(f float64) *Literal {
	return &Literal{Kind: LiteralNumber, NumberValue: f}
}

// NewBoolean returns true or false.
func NewBoolean(b bool) *Literal {
	return &Literal{Kind: LiteralBoolean, BoolValue: b}
}

// NewNull returns the null literal.
func NewNull() *Literal {
	return &Literal{Kind: LiteralNull, Raw: "null"}
}

// NewRegExp returns a regular expression literal.
func NewRegExp(pattern, flags string) *Literal {
	return &Literal{
		Kind:  LiteralRegExp,
		Raw:   "/" + pattern + "/" + flags,
		Regex: &RegExp{Pattern: pattern, Flags: flags},
	}
}

// FormatNumber renders f the way ECMAScript Number::toString does.
//
// Description:
//
//	encoding/json formats float64 with the ES6 number-to-string algorithm,
//	which is exactly what both the serialized tree and generated source
//	need. Infinities and NaN have no JSON form and are spelled out.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "NaN"
	}
	return string(b)
}

// MarshalJSON encodes the literal with its value between type and raw,
// matching the order produced by reference JavaScript parsers.
func (n *Literal) MarshalJSON() ([]byte, error) {
	var value string
	switch n.Kind {
	case LiteralString:
		b, err := marshalString(n.StringValue)
		if err != nil {
			return nil, err
		}
		value = string(b)
	case LiteralNumber:
		if math.IsInf(n.NumberValue, 0) || math.IsNaN(n.NumberValue) {
			// JSON.stringify maps non-finite numbers to null; raw keeps the text.
			value = "null"
		} else {
			value = FormatNumber(n.NumberValue)
		}
	case LiteralBoolean:
		if n.BoolValue {
			value = "true"
		} else {
			value = "false"
		}
	case LiteralRegExp:
		value = "{}"
	default:
		value = "null"
	}

	type plain Literal
	rest, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`{"type":"Literal","value":`)
	sb.WriteString(value)
	if len(rest) > 2 {
		sb.WriteByte(',')
		sb.Write(rest[1:])
	} else {
		sb.WriteByte('}')
	}
	return []byte(sb.String()), nil
}

// IsInteger reports whether a numeric literal holds an integral value that
// prints without a fraction or exponent.
func (n *Literal) IsInteger() bool {
	if n.Kind != LiteralNumber {
		return false
	}
	s := FormatNumber(n.NumberValue)
	return !strings.ContainsAny(s, ".eEIN")
}
