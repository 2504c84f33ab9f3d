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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_Order(t *testing.T) {
	prog, err := Decode(letX)
	require.NoError(t, err)

	var types []string
	Walk(prog, func(n Node) bool {
		types = append(types, n.Type())
		return true
	})
	assert.Equal(t, []string{
		TypeProgram, TypeVariableDeclaration, TypeVariableDeclarator, TypeIdentifier, TypeLiteral,
	}, types)
	assert.Equal(t, 5, Count(prog))
}

func TestWalk_SkipsNilChildren(t *testing.T) {
	// Label is a nil *Identifier; Walk must not visit it.
	prog := &Program{Body: []Statement{&BreakStatement{}}}
	assert.Equal(t, 2, Count(prog))
}

func TestWalk_Prune(t *testing.T) {
	prog, err := Decode(letX)
	require.NoError(t, err)

	visited := 0
	Walk(prog, func(n Node) bool {
		visited++
		_, isDecl := n.(*VariableDeclaration)
		return !isDecl
	})
	assert.Equal(t, 2, visited)
}

func TestStripPositions(t *testing.T) {
	in := `{"type": "Program", "body": [{"type": "EmptyStatement", "range": [0, 1]}], "range": [0, 1]}`
	prog, err := Decode(in)
	require.NoError(t, err)
	require.True(t, prog.Body[0].Position().HasPosition())

	StripPositions(prog)
	assert.False(t, prog.HasPosition())
	assert.False(t, prog.Body[0].Position().HasPosition())
}
