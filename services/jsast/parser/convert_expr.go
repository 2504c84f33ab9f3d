// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// =============================================================================
// Expressions
// =============================================================================

func (c *converter) expression(n *sitter.Node) estree.Expression {
	if n == nil {
		c.endOfInput()
	}

	switch n.Type() {
	case jsNodeParenthesized:
		inner := firstNamed(n)
		if inner == nil {
			c.unexpected(n)
		}
		return c.expression(inner)

	case jsNodeIdentifier, jsNodeUndefined:
		return c.identifier(n)

	case jsNodeThis:
		return at(c, &estree.ThisExpression{}, n)

	case jsNodeSuper:
		return at(c, &estree.Super{}, n)

	case jsNodeNumber:
		return c.numberLiteral(n)

	case jsNodeString:
		return c.stringLiteral(n)

	case jsNodeTemplateString:
		return c.templateLiteral(n)

	case jsNodeRegex:
		pattern := c.text(c.field(n, "pattern"))
		flags := ""
		if f := n.ChildByFieldName("flags"); f != nil {
			flags = c.text(f)
		}
		lit := estree.NewRegExp(pattern, flags)
		lit.Raw = c.text(n)
		return at(c, lit, n)

	case jsNodeTrue, jsNodeFalse:
		lit := estree.NewBoolean(n.Type() == jsNodeTrue)
		lit.Raw = c.text(n)
		return at(c, lit, n)

	case jsNodeNull:
		return at(c, estree.NewNull(), n)

	case jsNodeArray:
		return at(c, &estree.ArrayExpression{Elements: c.arrayElements(n)}, n)

	case jsNodeObject:
		return c.objectExpression(n)

	case jsNodeFunctionExpression, jsNodeFunction, jsNodeGeneratorFunction:
		return at(c, c.function(n), n)

	case jsNodeArrowFunction:
		return c.arrowFunction(n)

	case jsNodeClass:
		return at(c, c.class(n), n)

	case jsNodeCallExpression:
		return c.callExpression(n)

	case jsNodeNewExpression:
		return c.newExpression(n)

	case jsNodeMemberExpression, jsNodeSubscriptExpression:
		return c.memberExpression(n)

	case jsNodeAssignmentExpression:
		return c.assignment(n, "=")

	case jsNodeAugmentedAssignment:
		return c.assignment(n, c.text(c.field(n, "operator")))

	case jsNodeUnaryExpression:
		return c.unaryExpression(n)

	case jsNodeUpdateExpression:
		return c.updateExpression(n)

	case jsNodeBinaryExpression:
		return c.binaryExpression(n)

	case jsNodeTernaryExpression:
		return at(c, &estree.ConditionalExpression{
			Test:       c.expression(c.field(n, "condition")),
			Consequent: c.expression(c.field(n, "consequence")),
			Alternate:  c.expression(c.field(n, "alternative")),
		}, n)

	case jsNodeSequenceExpression:
		seq := &estree.SequenceExpression{}
		c.flattenSequence(n, &seq.Expressions)
		return at(c, seq, n)

	case jsNodeYieldExpression:
		y := &estree.YieldExpression{Delegate: hasToken(n, jsNodeStar)}
		if arg := firstNamed(n); arg != nil {
			y.Argument = c.expression(arg)
		}
		return at(c, y, n)

	case jsNodeAwaitExpression:
		arg := firstNamed(n)
		if arg == nil {
			c.unexpected(n)
		}
		return at(c, &estree.AwaitExpression{Argument: c.expression(arg)}, n)

	case jsNodeSpreadElement:
		return c.spreadElement(n)

	case jsNodeMetaProperty:
		if strings.Join(strings.Fields(c.text(n)), "") != "new.target" {
			c.unsupported(n, "import.meta")
		}
		meta := &estree.Identifier{Name: "new"}
		prop := &estree.Identifier{Name: "target"}
		if kids := children(n); len(kids) == 3 {
			at(c, meta, kids[0])
			at(c, prop, kids[2])
		}
		return at(c, &estree.MetaProperty{Meta: meta, Property: prop}, n)

	case jsNodeImport:
		c.unsupported(n, "dynamic import")

	case jsNodeOptionalChain:
		c.unsupported(n, "optional chaining")

	case jsNodePrivatePropertyIdent:
		c.unsupported(n, "private class members")

	case jsNodeJSXElement, jsNodeJSXSelfClosing, jsNodeJSXFragment:
		c.unsupported(n, "JSX")

	case jsNodeGlimmerTemplate:
		c.unsupported(n, "template tags")

	case jsNodeError:
		c.unexpected(n)
	}

	c.unexpected(n)
	return nil
}

// endOfInput reports a missing required child. Tree-sitter flags such trees
// as errors before conversion, so this only guards against grammar drift.
func (c *converter) endOfInput() {
	line, col, _ := c.index.locate(len(c.src))
	panic(bailout{err: &SyntaxError{Line: line, Column: col + 1, Message: "Unexpected end of input", Kind: ErrSyntax}})
}

func (c *converter) identifier(n *sitter.Node) *estree.Identifier {
	return at(c, &estree.Identifier{Name: cookIdentifier(c.text(n))}, n)
}

func (c *converter) stringLiteral(n *sitter.Node) *estree.Literal {
	if n.Type() != jsNodeString {
		c.unexpected(n)
	}
	raw := c.text(n)
	lit := estree.NewString(cookString(raw[1:len(raw)-1], false))
	lit.Raw = raw
	return at(c, lit, n)
}

func (c *converter) numberLiteral(n *sitter.Node) *estree.Literal {
	raw := c.text(n)
	if strings.HasSuffix(raw, "n") {
		c.unsupported(n, "BigInt literal")
	}
	f, err := parseNumber(raw)
	if err != nil {
		c.fail(n, ErrSyntax, "Unexpected token %s", raw)
	}
	lit := estree.NewNumber(f)
	lit.Raw = raw
	return at(c, lit, n)
}

// templateLiteral splits the template text around its substitutions. Each
// element's position covers its delimiters, as ESTree expects.
func (c *converter) templateLiteral(n *sitter.Node) *estree.TemplateLiteral {
	tl := &estree.TemplateLiteral{
		Quasis:      make([]*estree.TemplateElement, 0, 1),
		Expressions: make([]estree.Expression, 0),
	}

	quasi := func(bodyStart, bodyEnd, start, end uint32, tail bool) {
		raw := string(c.src[bodyStart:bodyEnd])
		el := &estree.TemplateElement{
			Value: estree.TemplateValue{Raw: raw, Cooked: cookString(raw, true)},
			Tail:  tail,
		}
		c.place(el, start, end)
		tl.Quasis = append(tl.Quasis, el)
	}

	bodyStart, elemStart := n.StartByte()+1, n.StartByte()
	for _, ch := range named(n) {
		if ch.Type() != jsNodeTemplateSubst {
			continue
		}
		quasi(bodyStart, ch.StartByte(), elemStart, ch.StartByte()+2, false)
		inner := firstNamed(ch)
		if inner == nil {
			c.unexpected(ch)
		}
		tl.Expressions = append(tl.Expressions, c.expression(inner))
		bodyStart, elemStart = ch.EndByte(), ch.EndByte()-1
	}
	quasi(bodyStart, n.EndByte()-1, elemStart, n.EndByte(), true)

	return at(c, tl, n)
}

func (c *converter) flattenSequence(n *sitter.Node, out *[]estree.Expression) {
	for _, ch := range named(n) {
		if ch.Type() == jsNodeSequenceExpression {
			c.flattenSequence(ch, out)
			continue
		}
		*out = append(*out, c.expression(ch))
	}
}

func (c *converter) spreadElement(n *sitter.Node) *estree.SpreadElement {
	arg := firstNamed(n)
	if arg == nil {
		c.unexpected(n)
	}
	return at(c, &estree.SpreadElement{Argument: c.expression(arg)}, n)
}

// elisions walks the children of an array or array pattern between its
// brackets, calling emit for each element and emit(nil) for each hole.
func elisions(n *sitter.Node, emit func(*sitter.Node)) {
	sawElement := false
	for _, ch := range children(n) {
		switch {
		case !ch.IsNamed() && ch.Type() == jsNodeComma:
			if !sawElement {
				emit(nil)
			}
			sawElement = false
		case ch.IsNamed():
			emit(ch)
			sawElement = true
		}
	}
}

func (c *converter) arrayElements(n *sitter.Node) []estree.Expression {
	out := make([]estree.Expression, 0)
	elisions(n, func(ch *sitter.Node) {
		if ch == nil {
			out = append(out, nil)
			return
		}
		out = append(out, c.expression(ch))
	})
	return out
}

// =============================================================================
// Objects and properties
// =============================================================================

func (c *converter) objectExpression(n *sitter.Node) *estree.ObjectExpression {
	obj := &estree.ObjectExpression{Properties: make([]estree.Node, 0)}
	for _, m := range named(n) {
		switch m.Type() {
		case jsNodePair:
			key, computed := c.propertyKey(c.field(m, "key"))
			obj.Properties = append(obj.Properties, at(c, &estree.Property{
				Key:      key,
				Computed: computed,
				Value:    c.expression(c.field(m, "value")),
				Kind:     estree.PropertyKindInit,
			}, m))

		case jsNodeShorthandProperty:
			obj.Properties = append(obj.Properties, at(c, &estree.Property{
				Key:       c.identifier(m),
				Value:     c.identifier(m),
				Kind:      estree.PropertyKindInit,
				Shorthand: true,
			}, m))

		case jsNodeSpreadElement:
			obj.Properties = append(obj.Properties, c.spreadElement(m))

		case jsNodeMethodDefinition:
			obj.Properties = append(obj.Properties, c.objectMethod(m))

		default:
			c.unexpected(m)
		}
	}
	return at(c, obj, n)
}

// propertyKey converts a property name and reports whether it is computed.
func (c *converter) propertyKey(n *sitter.Node) (estree.Expression, bool) {
	switch n.Type() {
	case jsNodePropertyIdentifier, jsNodeIdentifier, jsNodeShorthandProperty, jsNodeShorthandPattern:
		return c.identifier(n), false
	case jsNodeString:
		return c.stringLiteral(n), false
	case jsNodeNumber:
		return c.numberLiteral(n), false
	case jsNodeComputedProperty:
		inner := firstNamed(n)
		if inner == nil {
			c.unexpected(n)
		}
		return c.expression(inner), true
	case jsNodePrivatePropertyIdent:
		c.unsupported(n, "private class members")
	}
	c.unexpected(n)
	return nil, false
}

// methodShape holds what a method_definition says about itself.
type methodShape struct {
	key      estree.Expression
	computed bool
	value    *estree.FunctionExpression
	kind     string // get, set or "" for a plain method
	static   bool
}

func (c *converter) method(n *sitter.Node) methodShape {
	if hasChild(n, jsNodeDecorator) {
		c.unsupported(n, "decorators")
	}

	var shape methodShape
	switch {
	case hasToken(n, jsNodeStaticGet):
		shape.static = true
		shape.kind = estree.MethodKindGet
	case hasToken(n, jsNodeKeywordStatic):
		shape.static = true
	}
	switch {
	case hasToken(n, jsNodeKeywordGet):
		shape.kind = estree.MethodKindGet
	case hasToken(n, jsNodeKeywordSet):
		shape.kind = estree.MethodKindSet
	}

	shape.key, shape.computed = c.propertyKey(c.field(n, "name"))

	params := c.field(n, "parameters")
	body := c.field(n, "body")
	fn := &estree.FunctionExpression{
		Params:    c.params(params),
		Body:      c.functionBody(body),
		Generator: hasToken(n, jsNodeStar),
		Async:     hasToken(n, jsNodeKeywordAsync),
	}
	shape.value = span(c, fn, params, body)
	c.withFunctionStrictness(fn.Body, func() { c.checkParams(params, fn.Params) })

	switch shape.kind {
	case estree.MethodKindGet:
		if len(fn.Params) != 0 {
			c.fail(params, ErrSyntax, "Getter must not have any formal parameters.")
		}
	case estree.MethodKindSet:
		if len(fn.Params) != 1 {
			c.fail(params, ErrSyntax, "Setter must have exactly one formal parameter.")
		}
	}
	return shape
}

func (c *converter) objectMethod(n *sitter.Node) *estree.Property {
	m := c.method(n)
	if m.static {
		c.fail(n, ErrSyntax, "Unexpected token static")
	}
	prop := &estree.Property{
		Key:      m.key,
		Computed: m.computed,
		Value:    m.value,
		Kind:     estree.PropertyKindInit,
	}
	if m.kind == "" {
		prop.Method = true
	} else {
		prop.Kind = m.kind
	}
	return at(c, prop, n)
}

// =============================================================================
// Functions and classes
// =============================================================================

// function converts any function form with a name, parameters and a block
// body. The caller places the result.
func (c *converter) function(n *sitter.Node) *estree.FunctionExpression {
	fn := &estree.FunctionExpression{
		Generator: n.Type() == jsNodeGeneratorFunction || n.Type() == jsNodeGeneratorFuncDecl || hasToken(n, jsNodeStar),
		Async:     hasToken(n, jsNodeKeywordAsync),
	}
	name := n.ChildByFieldName("name")
	if name != nil {
		fn.ID = c.identifier(name)
	}
	paramsNode := c.field(n, "parameters")
	fn.Params = c.params(paramsNode)
	fn.Body = c.functionBody(c.field(n, "body"))

	c.withFunctionStrictness(fn.Body, func() {
		if name != nil {
			c.checkBinding(name, fn.ID, false, msgStrictFunctionName)
		}
		c.checkParams(paramsNode, fn.Params)
	})
	return fn
}

func (c *converter) params(n *sitter.Node) []estree.Pattern {
	out := make([]estree.Pattern, 0)
	for _, p := range named(n) {
		out = append(out, c.pattern(p))
	}
	return out
}

// checkParams applies the strict-mode name rules to converted parameters.
func (c *converter) checkParams(n *sitter.Node, params []estree.Pattern) {
	nodes := named(n)
	for i, p := range params {
		at := n
		if i < len(nodes) {
			at = nodes[i]
		}
		c.checkBinding(at, p, false, msgStrictParamName)
	}
}

// withFunctionStrictness runs check with the strictness of a function whose
// body is body. A "use strict" directive in the body also covers the
// function's name and parameters, which are converted before it.
func (c *converter) withFunctionStrictness(body *estree.BlockStatement, check func()) {
	saved := c.strict
	c.strict = c.strict || hasUseStrict(body)
	check()
	c.strict = saved
}

func hasUseStrict(body *estree.BlockStatement) bool {
	if body == nil {
		return false
	}
	for _, s := range body.Body {
		es, ok := s.(*estree.ExpressionStatement)
		if !ok || es.Directive == "" {
			return false
		}
		if es.Directive == "use strict" {
			return true
		}
	}
	return false
}

func (c *converter) arrowFunction(n *sitter.Node) *estree.ArrowFunctionExpression {
	arrow := &estree.ArrowFunctionExpression{Async: hasToken(n, jsNodeKeywordAsync)}

	paramsNode := n.ChildByFieldName("parameter")
	if paramsNode != nil {
		arrow.Params = []estree.Pattern{c.identifier(paramsNode)}
	} else {
		paramsNode = c.field(n, "parameters")
		arrow.Params = c.params(paramsNode)
	}

	body := c.field(n, "body")
	var block *estree.BlockStatement
	if body.Type() == jsNodeStatementBlock {
		block = c.functionBody(body)
		arrow.Body = block
	} else {
		saved := c.ctl
		c.ctl = control{inFunction: true}
		arrow.Body = c.expression(body)
		c.ctl = saved
		arrow.Expression = true
	}

	c.withFunctionStrictness(block, func() { c.checkParams(paramsNode, arrow.Params) })
	return at(c, arrow, n)
}

// class converts a class declaration or expression. The caller places the
// result.
func (c *converter) class(n *sitter.Node) *estree.ClassExpression {
	if hasChild(n, jsNodeDecorator) {
		c.unsupported(n, "decorators")
	}

	cls := &estree.ClassExpression{}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.ID = c.identifier(name)
	}

	// All parts of a class are strict code.
	strict := c.strict
	c.strict = true
	defer func() { c.strict = strict }()

	for _, ch := range named(n) {
		if ch.Type() != jsNodeClassHeritage {
			continue
		}
		heritage := firstNamed(ch)
		if heritage == nil {
			c.unexpected(ch)
		}
		cls.SuperClass = c.expression(heritage)
	}

	bodyNode := c.field(n, "body")
	body := &estree.ClassBody{Body: make([]*estree.MethodDefinition, 0)}
	hasCtor := false
	for _, m := range named(bodyNode) {
		switch m.Type() {
		case jsNodeMethodDefinition:
			def := c.classMethod(m)
			if def.Kind == estree.MethodKindConstructor {
				if hasCtor {
					c.fail(m, ErrSyntax, "A class may only have one constructor")
				}
				hasCtor = true
			}
			body.Body = append(body.Body, def)
		case jsNodeFieldDefinition:
			c.unsupported(m, "class fields")
		case jsNodeClassStaticBlock:
			c.unsupported(m, "class static block")
		default:
			c.unexpected(m)
		}
	}
	cls.Body = at(c, body, bodyNode)
	return cls
}

func (c *converter) classMethod(n *sitter.Node) *estree.MethodDefinition {
	m := c.method(n)
	def := &estree.MethodDefinition{
		Key:      m.key,
		Computed: m.computed,
		Value:    m.value,
		Kind:     estree.MethodKindMethod,
		Static:   m.static,
	}
	switch {
	case m.kind != "":
		def.Kind = m.kind
	case !m.static && !m.computed && isConstructorKey(m.key):
		def.Kind = estree.MethodKindConstructor
		if m.value.Generator || m.value.Async {
			c.fail(n, ErrSyntax, "Class constructor may not be a%s", constructorFlavor(m.value))
		}
	}
	return at(c, def, n)
}

func isConstructorKey(key estree.Expression) bool {
	switch k := key.(type) {
	case *estree.Identifier:
		return k.Name == "constructor"
	case *estree.Literal:
		return k.Kind == estree.LiteralString && k.StringValue == "constructor"
	}
	return false
}

func constructorFlavor(fn *estree.FunctionExpression) string {
	if fn.Async {
		return "n async method"
	}
	return " generator"
}

// =============================================================================
// Calls and members
// =============================================================================

func (c *converter) rejectOptionalChain(n *sitter.Node) {
	if n.ChildByFieldName("optional_chain") != nil || hasChild(n, jsNodeOptionalChain) || hasToken(n, jsNodeOptionalChainOp) {
		c.unsupported(n, "optional chaining")
	}
}

func (c *converter) callExpression(n *sitter.Node) estree.Expression {
	c.rejectOptionalChain(n)

	fnNode := c.field(n, "function")
	if fnNode.Type() == jsNodeImport {
		c.unsupported(n, "dynamic import")
	}
	callee := c.expression(fnNode)

	args := c.field(n, "arguments")
	if args.Type() == jsNodeTemplateString {
		return at(c, &estree.TaggedTemplateExpression{Tag: callee, Quasi: c.templateLiteral(args)}, n)
	}
	return at(c, &estree.CallExpression{Callee: callee, Arguments: c.arguments(args)}, n)
}

func (c *converter) arguments(n *sitter.Node) []estree.Expression {
	out := make([]estree.Expression, 0)
	if n == nil {
		return out
	}
	for _, a := range named(n) {
		out = append(out, c.expression(a))
	}
	return out
}

func (c *converter) newExpression(n *sitter.Node) *estree.NewExpression {
	callee := c.field(n, "constructor")
	if callee.Type() == jsNodeImport {
		c.unsupported(n, "dynamic import")
	}
	return at(c, &estree.NewExpression{
		Callee:    c.expression(callee),
		Arguments: c.arguments(n.ChildByFieldName("arguments")),
	}, n)
}

func (c *converter) memberExpression(n *sitter.Node) *estree.MemberExpression {
	c.rejectOptionalChain(n)

	objNode := c.field(n, "object")
	if objNode.Type() == jsNodeImport {
		c.unsupported(n, "import.meta")
	}
	m := &estree.MemberExpression{Object: c.expression(objNode)}

	if n.Type() == jsNodeSubscriptExpression {
		m.Computed = true
		m.Property = c.expression(c.field(n, "index"))
		return at(c, m, n)
	}

	prop := c.field(n, "property")
	if prop.Type() == jsNodePrivatePropertyIdent {
		c.unsupported(prop, "private class members")
	}
	m.Property = c.identifier(prop)
	return at(c, m, n)
}

// =============================================================================
// Operators
// =============================================================================

func (c *converter) assignment(n *sitter.Node, op string) *estree.AssignmentExpression {
	if _, ok := estree.AssignmentOperators[op]; !ok {
		c.fail(n, ErrSyntax, "Unexpected token %s", op)
	}
	leftNode := c.field(n, "left")

	var left estree.Pattern
	if op == "=" {
		left = c.pattern(leftNode)
	} else {
		left = c.simpleTarget(leftNode, "Invalid left-hand side in assignment")
	}
	if c.strict {
		for _, id := range boundNames(left, nil) {
			if restrictedName(id.Name) {
				c.fail(leftNode, ErrSyntax, msgStrictLHSAssignment)
			}
		}
	}
	return at(c, &estree.AssignmentExpression{
		Operator: op,
		Left:     left,
		Right:    c.expression(c.field(n, "right")),
	}, n)
}

// simpleTarget accepts only an identifier or member expression.
func (c *converter) simpleTarget(n *sitter.Node, msg string) estree.Pattern {
	for n.Type() == jsNodeParenthesized {
		inner := firstNamed(n)
		if inner == nil {
			c.unexpected(n)
		}
		n = inner
	}
	switch n.Type() {
	case jsNodeIdentifier, jsNodeUndefined:
		return c.identifier(n)
	case jsNodeMemberExpression, jsNodeSubscriptExpression:
		return c.memberExpression(n)
	}
	c.fail(n, ErrSyntax, "%s", msg)
	return nil
}

func (c *converter) unaryExpression(n *sitter.Node) *estree.UnaryExpression {
	op := c.text(c.field(n, "operator"))
	if _, ok := estree.UnaryOperators[op]; !ok {
		c.fail(n, ErrSyntax, "Unexpected token %s", op)
	}
	argNode := c.field(n, "argument")
	if op == "delete" && c.strict && argNode.Type() == jsNodeIdentifier {
		c.fail(n, ErrSyntax, "Delete of an unqualified identifier in strict mode.")
	}
	if argNode.Type() == jsNodeBinaryExpression && c.text(c.field(argNode, "operator")) == "**" {
		// A unary operand of ** must be parenthesized.
		c.fail(c.field(argNode, "operator"), ErrSyntax, "Unexpected token **")
	}
	return at(c, &estree.UnaryExpression{
		Operator: op,
		Argument: c.expression(argNode),
		Prefix:   true,
	}, n)
}

func (c *converter) updateExpression(n *sitter.Node) *estree.UpdateExpression {
	opNode := c.field(n, "operator")
	argNode := c.field(n, "argument")
	prefix := opNode.StartByte() < argNode.StartByte()

	msg := "Invalid left-hand side expression in postfix operation"
	if prefix {
		msg = "Invalid left-hand side expression in prefix operation"
	}
	arg := c.simpleTarget(argNode, msg)
	if id, ok := arg.(*estree.Identifier); ok && c.strict && restrictedName(id.Name) {
		which := "Postfix"
		if prefix {
			which = "Prefix"
		}
		c.fail(argNode, ErrSyntax, "%s increment/decrement may not have eval or arguments operand in strict mode", which)
	}

	return at(c, &estree.UpdateExpression{
		Operator: c.text(opNode),
		Argument: arg.(estree.Expression),
		Prefix:   prefix,
	}, n)
}

func (c *converter) binaryExpression(n *sitter.Node) estree.Expression {
	leftNode := c.field(n, "left")
	if leftNode.Type() == jsNodePrivatePropertyIdent {
		c.unsupported(leftNode, "private class members")
	}
	opNode := c.field(n, "operator")
	op := c.text(opNode)
	if op == "**" && leftNode.Type() == jsNodeUnaryExpression {
		// A unary operand of ** must be parenthesized.
		c.fail(opNode, ErrSyntax, "Unexpected token **")
	}
	left := c.expression(leftNode)
	right := c.expression(c.field(n, "right"))

	if _, ok := estree.LogicalOperators[op]; ok {
		return at(c, &estree.LogicalExpression{Operator: op, Left: left, Right: right}, n)
	}
	if _, ok := estree.BinaryOperators[op]; !ok {
		c.fail(n, ErrSyntax, "Unexpected token %s", op)
	}
	return at(c, &estree.BinaryExpression{Operator: op, Left: left, Right: right}, n)
}

// =============================================================================
// Patterns
// =============================================================================

// pattern converts a binding or assignment target. Tree-sitter reuses the
// expression forms for assignment targets, so both spellings are accepted.
func (c *converter) pattern(n *sitter.Node) estree.Pattern {
	switch n.Type() {
	case jsNodeParenthesized:
		inner := firstNamed(n)
		if inner == nil {
			c.unexpected(n)
		}
		return c.simpleTarget(inner, "Invalid destructuring assignment target")

	case jsNodeIdentifier, jsNodeUndefined, jsNodeShorthandPattern:
		return c.identifier(n)

	case jsNodeMemberExpression, jsNodeSubscriptExpression:
		return c.memberExpression(n)

	case jsNodeObjectPattern, jsNodeObject:
		return c.objectPattern(n)

	case jsNodeArrayPattern, jsNodeArray:
		elems := make([]estree.Pattern, 0)
		elisions(n, func(ch *sitter.Node) {
			if ch == nil {
				elems = append(elems, nil)
				return
			}
			elems = append(elems, c.pattern(ch))
		})
		for i, e := range elems {
			if _, rest := e.(*estree.RestElement); rest && i != len(elems)-1 {
				c.fail(n, ErrSyntax, "Rest element must be last element")
			}
		}
		return at(c, &estree.ArrayPattern{Elements: elems}, n)

	case jsNodeAssignmentPattern, jsNodeAssignmentExpression:
		if n.Type() == jsNodeAssignmentExpression && c.text(tokenOrField(n, "operator", jsNodeAssignOperator)) != "=" {
			break
		}
		return at(c, &estree.AssignmentPattern{
			Left:  c.pattern(c.field(n, "left")),
			Right: c.expression(c.field(n, "right")),
		}, n)

	case jsNodeRestPattern, jsNodeSpreadElement:
		arg := firstNamed(n)
		if arg == nil {
			c.unexpected(n)
		}
		if arg.Type() == jsNodeAssignmentPattern || arg.Type() == jsNodeAssignmentExpression {
			c.fail(arg, ErrSyntax, "Unexpected token =")
		}
		return at(c, &estree.RestElement{Argument: c.pattern(arg)}, n)

	case jsNodePrivatePropertyIdent:
		c.unsupported(n, "private class members")
	}

	c.fail(n, ErrSyntax, "Invalid destructuring assignment target")
	return nil
}

// tokenOrField finds an operator either as a named field or an anonymous token.
func tokenOrField(n *sitter.Node, field, token string) *sitter.Node {
	if f := n.ChildByFieldName(field); f != nil {
		return f
	}
	if t := tokenNode(n, token); t != nil {
		return t
	}
	return n
}

func (c *converter) objectPattern(n *sitter.Node) *estree.ObjectPattern {
	obj := &estree.ObjectPattern{Properties: make([]estree.Node, 0)}
	members := named(n)
	for i, m := range members {
		switch m.Type() {
		case jsNodePairPattern, jsNodePair:
			key, computed := c.propertyKey(c.field(m, "key"))
			obj.Properties = append(obj.Properties, at(c, &estree.Property{
				Key:      key,
				Computed: computed,
				Value:    c.pattern(c.field(m, "value")),
				Kind:     estree.PropertyKindInit,
			}, m))

		case jsNodeShorthandPattern, jsNodeShorthandProperty:
			obj.Properties = append(obj.Properties, at(c, &estree.Property{
				Key:       c.identifier(m),
				Value:     c.identifier(m),
				Kind:      estree.PropertyKindInit,
				Shorthand: true,
			}, m))

		case jsNodeObjectAssignmentPattern:
			left := c.field(m, "left")
			if left.Type() != jsNodeShorthandPattern && left.Type() != jsNodeIdentifier {
				c.fail(left, ErrSyntax, "Invalid destructuring assignment target")
			}
			value := &estree.AssignmentPattern{
				Left:  c.identifier(left),
				Right: c.expression(c.field(m, "right")),
			}
			obj.Properties = append(obj.Properties, at(c, &estree.Property{
				Key:       c.identifier(left),
				Value:     at(c, value, m),
				Kind:      estree.PropertyKindInit,
				Shorthand: true,
			}, m))

		case jsNodeRestPattern, jsNodeSpreadElement:
			if i != len(members)-1 {
				c.fail(m, ErrSyntax, "Rest element must be last element")
			}
			obj.Properties = append(obj.Properties, c.pattern(m))

		default:
			c.fail(m, ErrSyntax, "Invalid destructuring assignment target")
		}
	}
	return at(c, obj, n)
}
