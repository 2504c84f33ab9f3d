// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package codegen

import (
	"strings"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// expr renders e, parenthesized when its precedence is below prec.
func (p *printer) expr(e estree.Expression, prec int) string {
	return p.exprCall(e, prec, true)
}

// exprCall is expr with control over bare calls. A new-expression callee is
// rendered with allowCall false so that "new (f())()" keeps its parentheses.
func (p *printer) exprCall(e estree.Expression, prec int, allowCall bool) string {
	if estree.IsNil(e) {
		p.fail(nil, "missing expression")
	}
	text := p.expression(e, allowCall)
	_, isCall := e.(*estree.CallExpression)
	if precedenceOf(e) < prec || (isCall && !allowCall) {
		return "(" + text + ")"
	}
	return text
}

func (p *printer) expression(e estree.Expression, allowCall bool) string {
	switch e := e.(type) {
	case *estree.Identifier:
		return p.identifier(e)

	case *estree.Literal:
		return p.literal(e)

	case *estree.ThisExpression:
		return "this"

	case *estree.Super:
		return "super"

	case *estree.ArrayExpression:
		return p.array(len(e.Elements), func(i int) string {
			if estree.IsNil(e.Elements[i]) {
				return ""
			}
			return p.expr(e.Elements[i], precAssignment)
		})

	case *estree.ObjectExpression:
		return p.object(e.Properties, false)

	case *estree.FunctionExpression:
		return p.function(e)

	case *estree.ArrowFunctionExpression:
		return p.arrow(e)

	case *estree.ClassExpression:
		return p.class(e, e.ID, e.SuperClass, e.Body)

	case *estree.TemplateLiteral:
		return p.template(e)

	case *estree.TaggedTemplateExpression:
		p.need(e, e.Tag, "tag")
		if e.Quasi == nil {
			p.fail(e, "missing quasi")
		}
		return p.exprCall(e.Tag, precCall, allowCall) + p.template(e.Quasi)

	case *estree.UnaryExpression:
		return p.unary(e)

	case *estree.UpdateExpression:
		p.need(e, e.Argument, "argument")
		if !estree.UpdateOperators[e.Operator] {
			p.fail(e, "invalid operator %q", e.Operator)
		}
		if e.Prefix {
			return joinUnary(e.Operator, p.expr(e.Argument, precUnary))
		}
		return p.expr(e.Argument, precCall) + e.Operator

	case *estree.BinaryExpression:
		if !estree.BinaryOperators[e.Operator] {
			p.fail(e, "invalid operator %q", e.Operator)
		}
		return p.binary(e, e.Operator, e.Left, e.Right)

	case *estree.LogicalExpression:
		if !estree.LogicalOperators[e.Operator] {
			p.fail(e, "invalid operator %q", e.Operator)
		}
		return p.binary(e, e.Operator, e.Left, e.Right)

	case *estree.AssignmentExpression:
		p.need(e, e.Left, "left")
		p.need(e, e.Right, "right")
		if !estree.AssignmentOperators[e.Operator] {
			p.fail(e, "invalid operator %q", e.Operator)
		}
		return p.pattern(e.Left) + " " + e.Operator + " " + p.expr(e.Right, precAssignment)

	case *estree.ConditionalExpression:
		p.need(e, e.Test, "test")
		return p.expr(e.Test, precLogicalOR) +
			" ? " + p.expr(e.Consequent, precAssignment) +
			" : " + p.expr(e.Alternate, precAssignment)

	case *estree.CallExpression:
		p.need(e, e.Callee, "callee")
		return p.exprCall(e.Callee, precCall, true) + p.arguments(e.Arguments)

	case *estree.NewExpression:
		p.need(e, e.Callee, "callee")
		return "new " + p.exprCall(e.Callee, precNew, false) + p.arguments(e.Arguments)

	case *estree.MemberExpression:
		return p.member(e, allowCall)

	case *estree.SequenceExpression:
		if len(e.Expressions) == 0 {
			p.fail(e, "empty sequence")
		}
		parts := make([]string, len(e.Expressions))
		for i, x := range e.Expressions {
			parts[i] = p.expr(x, precAssignment)
		}
		return strings.Join(parts, ", ")

	case *estree.YieldExpression:
		text := "yield"
		if e.Delegate {
			text += "*"
		}
		if !estree.IsNil(e.Argument) {
			text += " " + p.expr(e.Argument, precYield)
		}
		return text

	case *estree.AwaitExpression:
		p.need(e, e.Argument, "argument")
		return "await " + p.expr(e.Argument, precUnary)

	case *estree.SpreadElement:
		p.need(e, e.Argument, "argument")
		return "..." + p.expr(e.Argument, precAssignment)

	case *estree.MetaProperty:
		if e.Meta == nil || e.Property == nil {
			p.fail(e, "missing meta or property")
		}
		return p.identifier(e.Meta) + "." + p.identifier(e.Property)
	}

	p.fail(e, "not an expression")
	return ""
}

func (p *printer) identifier(id *estree.Identifier) string {
	if id == nil {
		p.fail(nil, "missing identifier")
	}
	if id.Name == "" {
		p.fail(id, "empty name")
	}
	return id.Name
}

// array renders n comma-separated elements, where an empty element is a
// hole. A trailing hole needs its own comma.
func (p *printer) array(n int, elem func(i int) string) string {
	if n == 0 {
		return "[]"
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = elem(i)
	}
	text := "[" + strings.Join(parts, ", ")
	if parts[n-1] == "" {
		text += ","
	}
	return text + "]"
}

func (p *printer) arguments(args []estree.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.expr(a, precAssignment)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) member(e *estree.MemberExpression, allowCall bool) string {
	p.need(e, e.Object, "object")
	p.need(e, e.Property, "property")

	obj := p.exprCall(e.Object, precCall, allowCall)
	if lit, ok := e.Object.(*estree.Literal); ok && lit.Kind == estree.LiteralNumber && !strings.HasPrefix(obj, "(") {
		// "1.toString" would read the dot as a decimal point.
		obj = "(" + obj + ")"
	}

	if e.Computed {
		return obj + "[" + p.expr(e.Property, precSequence) + "]"
	}
	id, ok := e.Property.(*estree.Identifier)
	if !ok {
		p.fail(e, "non-computed property must be an Identifier")
	}
	return obj + "." + p.identifier(id)
}

func (p *printer) unary(e *estree.UnaryExpression) string {
	p.need(e, e.Argument, "argument")
	if !estree.UnaryOperators[e.Operator] {
		p.fail(e, "invalid operator %q", e.Operator)
	}
	arg := p.expr(e.Argument, precUnary)
	if len(e.Operator) > 1 {
		return e.Operator + " " + arg
	}
	return joinUnary(e.Operator, arg)
}

// joinUnary keeps "- -x" and "+ ++x" from fusing into other tokens.
func joinUnary(op, arg string) string {
	last := op[len(op)-1]
	if (last == '+' || last == '-') && len(arg) > 0 && arg[0] == last {
		return op + " " + arg
	}
	return op + arg
}

func (p *printer) binary(e estree.Expression, op string, left, right estree.Expression) string {
	p.need(e, left, "left")
	p.need(e, right, "right")

	prec := binaryPrecedence[op]
	leftPrec, rightPrec := prec, prec+1
	if op == "**" {
		// Exponentiation is right-associative.
		leftPrec, rightPrec = prec+1, prec
	}

	l := p.expr(left, leftPrec)
	r := p.expr(right, rightPrec)

	if op == "**" && isUnaryLike(left) {
		l = "(" + l + ")"
	}
	if mixesCoalesce(op, left) && precedenceOf(left) >= leftPrec {
		l = "(" + l + ")"
	}
	if mixesCoalesce(op, right) && precedenceOf(right) >= rightPrec {
		r = "(" + r + ")"
	}
	return l + " " + op + " " + r
}

// isUnaryLike reports operands that cannot appear unparenthesized on the
// left of "**".
func isUnaryLike(e estree.Expression) bool {
	switch e := e.(type) {
	case *estree.UnaryExpression, *estree.AwaitExpression:
		return true
	case *estree.Literal:
		return e.Kind == estree.LiteralNumber && isNegative(e.NumberValue)
	}
	return false
}

// mixesCoalesce reports a "??" operand of "||"/"&&" or the reverse, which
// the grammar only accepts parenthesized.
func mixesCoalesce(op string, operand estree.Expression) bool {
	l, ok := operand.(*estree.LogicalExpression)
	if !ok {
		return false
	}
	if op == "??" {
		return l.Operator == "||" || l.Operator == "&&"
	}
	if op == "||" || op == "&&" {
		return l.Operator == "??"
	}
	return false
}

func (p *printer) template(t *estree.TemplateLiteral) string {
	if len(t.Quasis) != len(t.Expressions)+1 {
		p.fail(t, "%d quasis for %d expressions", len(t.Quasis), len(t.Expressions))
	}
	var sb strings.Builder
	sb.WriteByte('`')
	for i, q := range t.Quasis {
		if q == nil {
			p.fail(t, "nil quasi")
		}
		sb.WriteString(q.Value.Raw)
		if i < len(t.Expressions) {
			sb.WriteString("${")
			sb.WriteString(p.expr(t.Expressions[i], precSequence))
			sb.WriteByte('}')
		}
	}
	sb.WriteByte('`')
	return sb.String()
}

// =============================================================================
// Functions and classes
// =============================================================================

func (p *printer) function(fn *estree.FunctionExpression) string {
	text := ""
	if fn.Async {
		text = "async "
	}
	text += "function"
	if fn.Generator {
		text += "*"
	}
	if fn.ID != nil {
		text += " " + p.identifier(fn.ID)
	} else {
		text += " "
	}
	return text + p.functionTail(fn)
}

// functionTail renders "(params) { body }".
func (p *printer) functionTail(fn *estree.FunctionExpression) string {
	if fn.Body == nil {
		p.fail(fn, "missing body")
	}
	return p.params(fn.Params) + " " + p.block(fn.Body)
}

func (p *printer) params(params []estree.Pattern) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = p.pattern(param)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) arrow(a *estree.ArrowFunctionExpression) string {
	p.need(a, a.Body, "body")
	text := ""
	if a.Async {
		text = "async "
	}
	text += p.params(a.Params) + " => "

	switch body := a.Body.(type) {
	case *estree.BlockStatement:
		return text + p.block(body)
	case estree.Expression:
		b := p.expr(body, precAssignment)
		if strings.HasPrefix(b, "{") {
			b = "(" + b + ")"
		}
		return text + b
	}
	p.fail(a, "body is %s", a.Body.Type())
	return ""
}

// class renders a class declaration or expression.
func (p *printer) class(n estree.Node, id *estree.Identifier, superClass estree.Expression, body *estree.ClassBody) string {
	if body == nil {
		p.fail(n, "missing body")
	}
	text := "class"
	if id != nil {
		text += " " + p.identifier(id)
	}
	if !estree.IsNil(superClass) {
		text += " extends " + p.expr(superClass, precCall)
	}
	text += " {\n"
	text += p.nested(func() string {
		var sb strings.Builder
		for _, m := range body.Body {
			if m == nil {
				p.fail(body, "nil method")
			}
			sb.WriteString(p.pad() + p.method(m) + "\n")
		}
		return sb.String()
	})
	return text + p.pad() + "}"
}

func (p *printer) method(m *estree.MethodDefinition) string {
	if m.Value == nil {
		p.fail(m, "missing value")
	}
	text := ""
	if m.Static {
		text = "static "
	}
	switch m.Kind {
	case estree.MethodKindGet, estree.MethodKindSet:
		return text + m.Kind + " " + p.propertyKey(m, m.Key, m.Computed) + p.functionTail(m.Value)
	case estree.MethodKindMethod, estree.MethodKindConstructor:
		return text + p.methodSignature(m, m.Key, m.Computed, m.Value)
	}
	p.fail(m, "invalid kind %q", m.Kind)
	return ""
}

// methodSignature renders "async *key(params) { body }".
func (p *printer) methodSignature(n estree.Node, key estree.Expression, computed bool, fn *estree.FunctionExpression) string {
	text := ""
	if fn.Async {
		text = "async "
	}
	if fn.Generator {
		text += "*"
	}
	return text + p.propertyKey(n, key, computed) + p.functionTail(fn)
}

func (p *printer) propertyKey(n estree.Node, key estree.Expression, computed bool) string {
	p.need(n, key, "key")
	if computed {
		return "[" + p.expr(key, precAssignment) + "]"
	}
	switch k := key.(type) {
	case *estree.Identifier:
		return p.identifier(k)
	case *estree.Literal:
		if k.Kind == estree.LiteralString || (k.Kind == estree.LiteralNumber && !isNegative(k.NumberValue)) {
			return p.literal(k)
		}
	}
	p.fail(n, "invalid key %s", key.Type())
	return ""
}

// =============================================================================
// Objects and patterns
// =============================================================================

// object renders object literals and object patterns, one member per line.
func (p *printer) object(props []estree.Node, pattern bool) string {
	if len(props) == 0 {
		return "{}"
	}
	lines := p.nested(func() string {
		parts := make([]string, len(props))
		for i, prop := range props {
			parts[i] = p.pad() + p.objectMember(prop, pattern)
		}
		return strings.Join(parts, ",\n")
	})
	return "{\n" + lines + "\n" + p.pad() + "}"
}

func (p *printer) objectMember(n estree.Node, pattern bool) string {
	if estree.IsNil(n) {
		p.fail(nil, "nil property")
	}
	switch m := n.(type) {
	case *estree.Property:
		return p.property(m, pattern)
	case *estree.SpreadElement:
		if pattern {
			p.fail(m, "spread in pattern")
		}
		return p.expr(m, precAssignment)
	case *estree.RestElement:
		if !pattern {
			p.fail(m, "rest in object expression")
		}
		return p.pattern(m)
	}
	p.fail(n, "not an object member")
	return ""
}

func (p *printer) property(prop *estree.Property, pattern bool) string {
	p.need(prop, prop.Value, "value")

	switch prop.Kind {
	case estree.PropertyKindGet, estree.PropertyKindSet:
		fn, ok := prop.Value.(*estree.FunctionExpression)
		if !ok {
			p.fail(prop, "accessor value must be a FunctionExpression")
		}
		return prop.Kind + " " + p.propertyKey(prop, prop.Key, prop.Computed) + p.functionTail(fn)
	case estree.PropertyKindInit:
	default:
		p.fail(prop, "invalid kind %q", prop.Kind)
	}

	if prop.Method {
		fn, ok := prop.Value.(*estree.FunctionExpression)
		if !ok {
			p.fail(prop, "method value must be a FunctionExpression")
		}
		return p.methodSignature(prop, prop.Key, prop.Computed, fn)
	}

	if prop.Shorthand && !prop.Computed {
		if key, ok := prop.Key.(*estree.Identifier); ok {
			switch v := prop.Value.(type) {
			case *estree.Identifier:
				if v.Name == key.Name {
					return p.identifier(v)
				}
			case *estree.AssignmentPattern:
				if left, ok := v.Left.(*estree.Identifier); ok && left.Name == key.Name {
					return p.pattern(v)
				}
			}
		}
	}

	key := p.propertyKey(prop, prop.Key, prop.Computed)
	if pattern {
		pat, ok := prop.Value.(estree.Pattern)
		if !ok {
			p.fail(prop, "value is not a pattern")
		}
		return key + ": " + p.pattern(pat)
	}
	value, ok := prop.Value.(estree.Expression)
	if !ok {
		p.fail(prop, "value is not an expression")
	}
	return key + ": " + p.expr(value, precAssignment)
}

// pattern renders a binding or assignment target.
func (p *printer) pattern(n estree.Pattern) string {
	if estree.IsNil(n) {
		p.fail(nil, "missing pattern")
	}
	switch n := n.(type) {
	case *estree.Identifier:
		return p.identifier(n)
	case *estree.MemberExpression:
		return p.expr(n, precCall)
	case *estree.ObjectPattern:
		return p.object(n.Properties, true)
	case *estree.ArrayPattern:
		return p.array(len(n.Elements), func(i int) string {
			if estree.IsNil(n.Elements[i]) {
				return ""
			}
			return p.pattern(n.Elements[i])
		})
	case *estree.RestElement:
		return "..." + p.pattern(n.Argument)
	case *estree.AssignmentPattern:
		p.need(n, n.Right, "right")
		return p.pattern(n.Left) + " = " + p.expr(n.Right, precAssignment)
	}
	p.fail(n, "not a pattern")
	return ""
}
