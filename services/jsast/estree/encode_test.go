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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_FieldOrder(t *testing.T) {
	prog := &Program{
		Body: []Statement{
			&VariableDeclaration{
				Declarations: []*VariableDeclarator{{
					ID:   &Identifier{Name: "x"},
					Init: &Literal{Kind: LiteralNumber, NumberValue: 1, Raw: "1"},
				}},
				Kind: KindLet,
			},
		},
		SourceType: SourceTypeScript,
	}

	out, err := Encode(prog, "")
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"Program","body":[{"type":"VariableDeclaration","declarations":[{"type":"VariableDeclarator",`+
			`"id":{"type":"Identifier","name":"x"},"init":{"type":"Literal","value":1,"raw":"1"}}],"kind":"let"}],`+
			`"sourceType":"script"}`,
		out)
}

func TestEncode_Indented(t *testing.T) {
	prog := &Program{Body: []Statement{&EmptyStatement{}}, SourceType: SourceTypeScript}
	out, err := Encode(prog, DefaultIndent)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"type\": \"Program\",\n  \"body\": [\n    {\n      \"type\": \"EmptyStatement\"\n    }\n  ],\n  \"sourceType\": \"script\"\n}", out)
}

func TestEncode_NullChildren(t *testing.T) {
	prog := &Program{Body: []Statement{&ReturnStatement{}}, SourceType: SourceTypeScript}
	out, err := Encode(prog, "")
	require.NoError(t, err)
	assert.Contains(t, out, `{"type":"ReturnStatement","argument":null}`)
}

func TestEncode_Positions(t *testing.T) {
	id := &Identifier{Name: "a"}
	id.Range = &Range{0, 1}
	id.Loc = &SourceLocation{Start: Location{Line: 1, Column: 0}, End: Location{Line: 1, Column: 1}}
	prog := &Program{Body: []Statement{&ExpressionStatement{Expression: id}}, SourceType: SourceTypeScript}

	out, err := Encode(prog, "")
	require.NoError(t, err)
	assert.Contains(t, out,
		`{"type":"Identifier","name":"a","range":[0,1],"loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":1}}}`)
}

func TestEncode_Literals(t *testing.T) {
	tests := []struct {
		name string
		lit  *Literal
		want string
	}{
		{"string no html escape", &Literal{Kind: LiteralString, StringValue: "<a&b>", Raw: "'<a&b>'"},
			`{"type":"Literal","value":"<a&b>","raw":"'<a&b>'"}`},
		{"integer", &Literal{Kind: LiteralNumber, NumberValue: 42, Raw: "42"},
			`{"type":"Literal","value":42,"raw":"42"}`},
		{"fraction", &Literal{Kind: LiteralNumber, NumberValue: 0.5, Raw: ".5"},
			`{"type":"Literal","value":0.5,"raw":".5"}`},
		{"infinity", &Literal{Kind: LiteralNumber, NumberValue: math.Inf(1), Raw: "1e999"},
			`{"type":"Literal","value":null,"raw":"1e999"}`},
		{"boolean", &Literal{Kind: LiteralBoolean, BoolValue: false, Raw: "false"},
			`{"type":"Literal","value":false,"raw":"false"}`},
		{"null", NewNull(), `{"type":"Literal","value":null,"raw":"null"}`},
		{"regexp", NewRegExp("a|b", "gi"),
			`{"type":"Literal","value":{},"raw":"/a|b/gi","regex":{"pattern":"a|b","flags":"gi"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.lit.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestEncode_NilProgram(t *testing.T) {
	_, err := Encode(nil, "")
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	prog, err := Decode(letX)
	require.NoError(t, err)

	out, err := Encode(prog, DefaultIndent)
	require.NoError(t, err)

	again, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, prog, again)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{123456789012, "123456789012"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestLoneSurrogates(t *testing.T) {
	const hi, lo = "\xed\xa0\x80", "\xed\xb0\x80" // U+D800, U+DC00

	t.Run("AppendUTF16", func(t *testing.T) {
		assert.Equal(t, "\U0001F600", string(AppendUTF16(nil, []uint16{0xD83D, 0xDE00})))
		assert.Equal(t, hi+"a", string(AppendUTF16(nil, []uint16{0xD800, 'a'})))
		assert.Equal(t, lo+hi, string(AppendUTF16(nil, []uint16{0xDC00, 0xD800})))
	})

	t.Run("LoneSurrogate", func(t *testing.T) {
		u, ok := LoneSurrogate("x"+lo, 1)
		assert.True(t, ok)
		assert.Equal(t, uint16(0xDC00), u)
		_, ok = LoneSurrogate("\ud7ff", 0)
		assert.False(t, ok, "U+D7FF is an ordinary character")
		assert.False(t, HasLoneSurrogate("plain \U0001F600"))
		assert.True(t, HasLoneSurrogate("\ud7ff"+hi))
	})

	tests := []struct {
		name  string
		value string
		json  string
	}{
		{"high", hi, `"\ud800"`},
		{"low between text", "a" + lo + "b", `"a\udc00b"`},
		{"reversed pair", lo + hi, `"\udc00\ud800"`},
		{"with quotes", `"` + hi + `"`, `"\"\ud800\""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit := NewString(tt.value)
			lit.Raw = "'x'"
			prog := &Program{Body: []Statement{&ExpressionStatement{Expression: lit}}, SourceType: SourceTypeScript}

			out, err := Encode(prog, "")
			require.NoError(t, err)
			assert.Contains(t, out, `"value":`+tt.json)
			assert.NotContains(t, out, "\uFFFD")

			back, err := Decode(out)
			require.NoError(t, err)
			got := back.Body[0].(*ExpressionStatement).Expression.(*Literal)
			assert.Equal(t, tt.value, got.StringValue)
		})
	}

	t.Run("escaped backslash is not an escape", func(t *testing.T) {
		prog, err := Decode(`{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
			`{"type":"Literal","value":"\\ud800","raw":"'\\\\ud800'"}}],"sourceType":"script"}`)
		require.NoError(t, err)
		got := prog.Body[0].(*ExpressionStatement).Expression.(*Literal)
		assert.Equal(t, `\ud800`, got.StringValue)
	})
}
