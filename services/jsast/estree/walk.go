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

import "reflect"

// Children returns the direct child nodes of n in field order.
// Absent optional children and array holes are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if !IsNil(c) {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *WithStatement:
		add(n.Object)
		add(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *LabeledStatement:
		add(n.Label)
		add(n.Body)
	case *BreakStatement:
		add(n.Label)
	case *ContinueStatement:
		add(n.Label)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Test)
		for _, s := range n.Consequent {
			add(s)
		}
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		add(n.Block)
		add(n.Handler)
		add(n.Finalizer)
	case *CatchClause:
		add(n.Param)
		add(n.Body)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *ForOfStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *FunctionDeclaration:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *FunctionExpression:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ArrowFunctionExpression:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID)
		add(n.Init)
	case *ClassDeclaration:
		add(n.ID)
		add(n.SuperClass)
		add(n.Body)
	case *ClassExpression:
		add(n.ID)
		add(n.SuperClass)
		add(n.Body)
	case *ClassBody:
		for _, m := range n.Body {
			add(m)
		}
	case *MethodDefinition:
		add(n.Key)
		add(n.Value)
	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			add(s)
		}
		add(n.Source)
	case *ImportSpecifier:
		add(n.Local)
		add(n.Imported)
	case *ImportDefaultSpecifier:
		add(n.Local)
	case *ImportNamespaceSpecifier:
		add(n.Local)
	case *ExportNamedDeclaration:
		add(n.Declaration)
		for _, s := range n.Specifiers {
			add(s)
		}
		add(n.Source)
	case *ExportSpecifier:
		add(n.Local)
		add(n.Exported)
	case *ExportDefaultDeclaration:
		add(n.Declaration)
	case *ExportAllDeclaration:
		add(n.Source)
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key)
		add(n.Value)
	case *TemplateLiteral:
		// Quasis and expressions interleave in source order.
		for i, q := range n.Quasis {
			add(q)
			if i < len(n.Expressions) {
				add(n.Expressions[i])
			}
		}
	case *TaggedTemplateExpression:
		add(n.Tag)
		add(n.Quasi)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	case *YieldExpression:
		add(n.Argument)
	case *AwaitExpression:
		add(n.Argument)
	case *SpreadElement:
		add(n.Argument)
	case *MetaProperty:
		add(n.Meta)
		add(n.Property)
	case *ObjectPattern:
		for _, p := range n.Properties {
			add(p)
		}
	case *ArrayPattern:
		for _, e := range n.Elements {
			add(e)
		}
	case *RestElement:
		add(n.Argument)
	case *AssignmentPattern:
		add(n.Left)
		add(n.Right)
	}
	return out
}

// Walk visits n and its descendants depth-first in source order. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if IsNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// StripPositions clears range and loc on every node under n.
func StripPositions(n Node) {
	Walk(n, func(c Node) bool {
		if b := c.Position(); b != nil {
			b.Range = nil
			b.Loc = nil
		}
		return true
	})
}

// IsNil reports a nil Node, including a typed nil pointer stored in the
// interface.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
