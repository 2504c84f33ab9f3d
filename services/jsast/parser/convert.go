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
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// converter maps a tree-sitter JavaScript tree onto estree nodes.
//
// Conversion stops at the first problem by panicking with a bailout, which
// convert recovers into an ordinary error.
type converter struct {
	src       []byte
	index     *lineIndex
	module    bool
	positions bool

	// strict is set for module code, after a "use strict" directive, and
	// inside class bodies.
	strict bool

	// ctl tracks what break, continue and return may target.
	ctl control
}

// control is the jump-target context of the statement being converted.
type control struct {
	inFunction bool
	loops      int
	switches   int
	labels     []jumpLabel
}

type jumpLabel struct {
	name   string
	isLoop bool
}

type bailout struct {
	err error
}

func (c *converter) convert(root *sitter.Node) (prog *estree.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()
	return c.program(root), nil
}

// =============================================================================
// Helpers
// =============================================================================

func (c *converter) fail(n *sitter.Node, kind error, format string, args ...any) {
	line, col, _ := c.index.locate(int(n.StartByte()))
	panic(bailout{err: &SyntaxError{
		Line:    line,
		Column:  col + 1,
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	}})
}

func (c *converter) unexpected(n *sitter.Node) {
	c.fail(n, ErrSyntax, "Unexpected token %s", firstToken(n, c.src))
}

func (c *converter) unsupported(n *sitter.Node, what string) {
	c.fail(n, ErrUnsupportedSyntax, "Unsupported syntax: %s", what)
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

// place attaches the byte span [start, end) to n when positions are enabled.
func (c *converter) place(n estree.Node, start, end uint32) {
	if !c.positions {
		return
	}
	sl, sc, so := c.index.locate(int(start))
	el, ec, eo := c.index.locate(int(end))
	b := n.Position()
	b.Range = &estree.Range{so, eo}
	b.Loc = &estree.SourceLocation{
		Start: estree.Location{Line: sl, Column: sc},
		End:   estree.Location{Line: el, Column: ec},
	}
}

// at places n over the span of ts and returns n.
func at[T estree.Node](c *converter, n T, ts *sitter.Node) T {
	c.place(n, ts.StartByte(), ts.EndByte())
	return n
}

// span places n from the start of first to the end of last and returns n.
func span[T estree.Node](c *converter, n T, first, last *sitter.Node) T {
	c.place(n, first.StartByte(), last.EndByte())
	return n
}

func isExtra(n *sitter.Node) bool {
	switch n.Type() {
	case jsNodeComment, jsNodeHTMLComment:
		return true
	}
	return false
}

// children returns all non-comment children, named and anonymous.
func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if ch := n.Child(i); ch != nil && !isExtra(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// named returns the named non-comment children.
func named(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if ch := n.NamedChild(i); ch != nil && !isExtra(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// firstNamed returns the first named non-comment child, or nil.
func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch != nil && !isExtra(ch) {
			return ch
		}
	}
	return nil
}

// hasToken reports an anonymous child of the given type.
func hasToken(n *sitter.Node, typ string) bool {
	return tokenNode(n, typ) != nil
}

func tokenNode(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && ch.Type() == typ {
			return ch
		}
	}
	return nil
}

func (c *converter) field(n *sitter.Node, name string) *sitter.Node {
	ch := n.ChildByFieldName(name)
	if ch == nil {
		c.fail(n, ErrSyntax, "Missing %s in %s", name, n.Type())
	}
	return ch
}

// =============================================================================
// Program and statement lists
// =============================================================================

func (c *converter) program(root *sitter.Node) *estree.Program {
	var items []*sitter.Node
	for _, ch := range named(root) {
		if ch.Type() == jsNodeHashBangLine {
			continue
		}
		items = append(items, ch)
	}

	sourceType := estree.SourceTypeScript
	if c.module {
		sourceType = estree.SourceTypeModule
	}
	prog := &estree.Program{Body: c.statementList(items, true), SourceType: sourceType}
	if len(items) > 0 {
		span(c, prog, items[0], items[len(items)-1])
	} else {
		c.place(prog, 0, 0)
	}
	return prog
}

// statementList converts a run of statements. With prologue set, leading
// string-literal expression statements become directives.
func (c *converter) statementList(nodes []*sitter.Node, prologue bool) []estree.Statement {
	out := make([]estree.Statement, 0, len(nodes))
	for _, n := range nodes {
		s := c.statement(n)
		if prologue {
			prologue = c.markDirective(n, s)
			if prologue && s.(*estree.ExpressionStatement).Directive == "use strict" {
				c.strict = true
			}
		}
		out = append(out, s)
	}
	return out
}

func (c *converter) markDirective(n *sitter.Node, s estree.Statement) bool {
	es, ok := s.(*estree.ExpressionStatement)
	if !ok {
		return false
	}
	inner := firstNamed(n)
	if inner == nil || inner.Type() != jsNodeString {
		return false
	}
	lit, ok := es.Expression.(*estree.Literal)
	if !ok || lit.Kind != estree.LiteralString || len(lit.Raw) < 2 {
		return false
	}
	es.Directive = lit.Raw[1 : len(lit.Raw)-1]
	return true
}

// Early errors for names bound in strict code and lexical declarations.
const (
	msgStrictVarName       = "Variable name may not be eval or arguments in strict mode"
	msgStrictParamName     = "Parameter name eval or arguments is not allowed in strict mode"
	msgStrictFunctionName  = "Function name may not be eval or arguments in strict mode"
	msgStrictCatchVariable = "Catch variable may not be eval or arguments in strict mode"
	msgStrictLHSAssignment = "Assignment to eval or arguments is not allowed in strict mode"
	msgLetInLexicalBinding = "let is disallowed as a lexically bound name"
)

// checkBinding rejects the names p declares that are not allowed here:
// "let" in a lexical binding, and eval or arguments in strict code.
func (c *converter) checkBinding(n *sitter.Node, p estree.Node, lexical bool, strictMsg string) {
	for _, id := range boundNames(p, nil) {
		switch {
		case lexical && id.Name == "let":
			c.fail(n, ErrSyntax, msgLetInLexicalBinding)
		case c.strict && restrictedName(id.Name):
			c.fail(n, ErrSyntax, "%s", strictMsg)
		}
	}
}

func restrictedName(name string) bool {
	return name == "eval" || name == "arguments"
}

// boundNames appends the identifiers a binding pattern declares. Default
// values and computed keys bind nothing.
func boundNames(p estree.Node, out []*estree.Identifier) []*estree.Identifier {
	switch p := p.(type) {
	case *estree.Identifier:
		out = append(out, p)
	case *estree.ObjectPattern:
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *estree.Property:
				out = boundNames(prop.Value, out)
			case *estree.RestElement:
				out = boundNames(prop.Argument, out)
			}
		}
	case *estree.ArrayPattern:
		for _, e := range p.Elements {
			if e != nil {
				out = boundNames(e, out)
			}
		}
	case *estree.AssignmentPattern:
		out = boundNames(p.Left, out)
	case *estree.RestElement:
		out = boundNames(p.Argument, out)
	}
	return out
}

func (c *converter) block(n *sitter.Node) *estree.BlockStatement {
	return at(c, &estree.BlockStatement{Body: c.statementList(named(n), false)}, n)
}

// functionBody converts a function's statement block with a fresh jump context.
func (c *converter) functionBody(n *sitter.Node) *estree.BlockStatement {
	saved, strict := c.ctl, c.strict
	c.ctl = control{inFunction: true}
	defer func() { c.ctl, c.strict = saved, strict }()

	return at(c, &estree.BlockStatement{Body: c.statementList(named(n), true)}, n)
}

// =============================================================================
// Statements
// =============================================================================

func (c *converter) statement(n *sitter.Node) estree.Statement {
	switch n.Type() {
	case jsNodeExpressionStatement:
		inner := firstNamed(n)
		if inner == nil {
			c.unexpected(n)
		}
		return at(c, &estree.ExpressionStatement{Expression: c.expression(inner)}, n)

	case jsNodeVariableDeclaration, jsNodeLexicalDeclaration:
		return c.variableDeclaration(n, false)

	case jsNodeFunctionDeclaration, jsNodeGeneratorFuncDecl:
		return c.functionDeclaration(n)

	case jsNodeClassDeclaration:
		return c.classDeclaration(n)

	case jsNodeStatementBlock:
		return c.block(n)

	case jsNodeEmptyStatement:
		return at(c, &estree.EmptyStatement{}, n)

	case jsNodeDebuggerStatement:
		return at(c, &estree.DebuggerStatement{}, n)

	case jsNodeIfStatement:
		return c.ifStatement(n)

	case jsNodeSwitchStatement:
		return c.switchStatement(n)

	case jsNodeForStatement:
		return c.forStatement(n)

	case jsNodeForInStatement:
		return c.forInStatement(n)

	case jsNodeWhileStatement:
		test := c.expression(c.field(n, "condition"))
		body := c.loopBody(c.field(n, "body"))
		return at(c, &estree.WhileStatement{Test: test, Body: body}, n)

	case jsNodeDoStatement:
		body := c.loopBody(c.field(n, "body"))
		test := c.expression(c.field(n, "condition"))
		return at(c, &estree.DoWhileStatement{Body: body, Test: test}, n)

	case jsNodeTryStatement:
		return c.tryStatement(n)

	case jsNodeWithStatement:
		if c.strict {
			c.fail(n, ErrSyntax, "Strict mode code may not include a with statement")
		}
		obj := c.expression(c.field(n, "object"))
		return at(c, &estree.WithStatement{Object: obj, Body: c.statement(c.field(n, "body"))}, n)

	case jsNodeReturnStatement:
		if !c.ctl.inFunction {
			c.fail(n, ErrSyntax, "Illegal return statement")
		}
		ret := &estree.ReturnStatement{}
		if arg := firstNamed(n); arg != nil {
			ret.Argument = c.expression(arg)
		}
		return at(c, ret, n)

	case jsNodeThrowStatement:
		arg := firstNamed(n)
		if arg == nil {
			c.unexpected(n)
		}
		return at(c, &estree.ThrowStatement{Argument: c.expression(arg)}, n)

	case jsNodeBreakStatement:
		return c.breakStatement(n)

	case jsNodeContinueStatement:
		return c.continueStatement(n)

	case jsNodeLabeledStatement:
		return c.labeledStatement(n)

	case jsNodeImportStatement:
		if !c.module {
			c.fail(n, ErrSyntax, "Unexpected token import")
		}
		return c.importDeclaration(n)

	case jsNodeExportStatement:
		if !c.module {
			c.fail(n, ErrSyntax, "Unexpected token export")
		}
		return c.exportDeclaration(n)

	case jsNodeClassStaticBlock:
		c.unsupported(n, "class static block")

	case jsNodeError:
		c.unexpected(n)
	}

	c.unsupported(n, n.Type())
	return nil
}

func (c *converter) ifStatement(n *sitter.Node) *estree.IfStatement {
	stmt := &estree.IfStatement{
		Test:       c.expression(c.field(n, "condition")),
		Consequent: c.statement(c.field(n, "consequence")),
	}
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		if alt.Type() == jsNodeElseClause {
			alt = firstNamed(alt)
			if alt == nil {
				c.unexpected(n)
			}
		}
		stmt.Alternate = c.statement(alt)
	}
	return at(c, stmt, n)
}

func (c *converter) switchStatement(n *sitter.Node) *estree.SwitchStatement {
	stmt := &estree.SwitchStatement{
		Discriminant: c.expression(c.field(n, "value")),
		Cases:        make([]*estree.SwitchCase, 0),
	}

	c.ctl.switches++
	defer func() { c.ctl.switches-- }()

	hasDefault := false
	for _, ch := range named(c.field(n, "body")) {
		sc := &estree.SwitchCase{}
		var body []*sitter.Node
		switch ch.Type() {
		case jsNodeSwitchCase:
			value := c.field(ch, "value")
			sc.Test = c.expression(value)
			for _, s := range named(ch) {
				if s.StartByte() == value.StartByte() && s.EndByte() == value.EndByte() {
					continue
				}
				body = append(body, s)
			}
		case jsNodeSwitchDefault:
			if hasDefault {
				c.fail(ch, ErrSyntax, "More than one default clause in switch statement")
			}
			hasDefault = true
			body = named(ch)
		default:
			c.unexpected(ch)
		}
		sc.Consequent = c.statementList(body, false)
		stmt.Cases = append(stmt.Cases, at(c, sc, ch))
	}
	return at(c, stmt, n)
}

func (c *converter) loopBody(n *sitter.Node) estree.Statement {
	c.ctl.loops++
	defer func() { c.ctl.loops-- }()
	return c.statement(n)
}

func (c *converter) forStatement(n *sitter.Node) *estree.ForStatement {
	stmt := &estree.ForStatement{}

	if init := n.ChildByFieldName("initializer"); init != nil {
		switch init.Type() {
		case jsNodeEmptyStatement, jsNodeSemicolon:
		case jsNodeLexicalDeclaration, jsNodeVariableDeclaration:
			stmt.Init = c.variableDeclaration(init, true)
		case jsNodeExpressionStatement:
			stmt.Init = c.expression(firstNamed(init))
		default:
			stmt.Init = c.expression(init)
		}
	}

	if cond := n.ChildByFieldName("condition"); cond != nil {
		switch cond.Type() {
		case jsNodeEmptyStatement, jsNodeSemicolon:
		case jsNodeExpressionStatement:
			stmt.Test = c.expression(firstNamed(cond))
		default:
			stmt.Test = c.expression(cond)
		}
	}

	if inc := n.ChildByFieldName("increment"); inc != nil {
		stmt.Update = c.expression(inc)
	}

	stmt.Body = c.loopBody(c.field(n, "body"))
	return at(c, stmt, n)
}

// forInStatement handles both for-in and for-of, which share one grammar rule.
func (c *converter) forInStatement(n *sitter.Node) estree.Statement {
	if hasToken(n, jsNodeKeywordAwait) {
		c.unsupported(n, "for await")
	}

	leftNode := c.field(n, "left")
	var left estree.Node
	if kind := n.ChildByFieldName("kind"); kind != nil {
		decl := &estree.VariableDeclarator{ID: c.pattern(leftNode)}
		last := leftNode
		if value := n.ChildByFieldName("value"); value != nil {
			decl.Init = c.expression(value)
			last = value
		}
		span(c, decl, leftNode, last)
		c.checkBinding(leftNode, decl.ID, c.text(kind) != estree.KindVar, msgStrictVarName)
		vd := &estree.VariableDeclaration{
			Declarations: []*estree.VariableDeclarator{decl},
			Kind:         c.text(kind),
		}
		left = span(c, vd, kind, last)
	} else {
		left = c.pattern(leftNode)
	}

	op := n.ChildByFieldName("operator")
	isOf := op != nil && c.text(op) == "of"
	rightNode := c.field(n, "right")
	if isOf && rightNode.Type() == jsNodeSequenceExpression {
		// for-of takes an AssignmentExpression; the comma ends it.
		if comma := tokenNode(rightNode, ","); comma != nil {
			c.fail(comma, ErrSyntax, "Unexpected token ,")
		}
		c.fail(rightNode, ErrSyntax, "Unexpected token ,")
	}
	right := c.expression(rightNode)
	body := c.loopBody(c.field(n, "body"))

	if isOf {
		return at(c, &estree.ForOfStatement{Left: left, Right: right, Body: body}, n)
	}
	return at(c, &estree.ForInStatement{Left: left, Right: right, Body: body}, n)
}

func (c *converter) tryStatement(n *sitter.Node) *estree.TryStatement {
	stmt := &estree.TryStatement{Block: c.block(c.field(n, "body"))}

	if h := n.ChildByFieldName("handler"); h != nil {
		clause := &estree.CatchClause{}
		if param := h.ChildByFieldName("parameter"); param != nil {
			clause.Param = c.pattern(param)
			c.checkBinding(param, clause.Param, false, msgStrictCatchVariable)
		}
		clause.Body = c.block(c.field(h, "body"))
		stmt.Handler = at(c, clause, h)
	}
	if f := n.ChildByFieldName("finalizer"); f != nil {
		stmt.Finalizer = c.block(c.field(f, "body"))
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		c.fail(n, ErrSyntax, "Missing catch or finally after try")
	}
	return at(c, stmt, n)
}

func (c *converter) label(n *sitter.Node) *estree.Identifier {
	ln := n.ChildByFieldName("label")
	if ln == nil {
		for _, ch := range named(n) {
			if ch.Type() == jsNodeStatementLabel {
				ln = ch
				break
			}
		}
	}
	if ln == nil {
		return nil
	}
	return c.identifier(ln)
}

func (c *converter) findLabel(name string) (jumpLabel, bool) {
	for i := len(c.ctl.labels) - 1; i >= 0; i-- {
		if c.ctl.labels[i].name == name {
			return c.ctl.labels[i], true
		}
	}
	return jumpLabel{}, false
}

func (c *converter) breakStatement(n *sitter.Node) *estree.BreakStatement {
	label := c.label(n)
	if label != nil {
		if _, ok := c.findLabel(label.Name); !ok {
			c.fail(n, ErrSyntax, "Undefined label '%s'", label.Name)
		}
	} else if c.ctl.loops == 0 && c.ctl.switches == 0 {
		c.fail(n, ErrSyntax, "Illegal break statement")
	}
	return at(c, &estree.BreakStatement{Label: label}, n)
}

func (c *converter) continueStatement(n *sitter.Node) *estree.ContinueStatement {
	label := c.label(n)
	if label != nil {
		l, ok := c.findLabel(label.Name)
		if !ok {
			c.fail(n, ErrSyntax, "Undefined label '%s'", label.Name)
		}
		if !l.isLoop {
			c.fail(n, ErrSyntax, "Illegal continue statement: '%s' does not denote an iteration statement", label.Name)
		}
	} else if c.ctl.loops == 0 {
		c.fail(n, ErrSyntax, "Illegal continue statement")
	}
	return at(c, &estree.ContinueStatement{Label: label}, n)
}

func (c *converter) labeledStatement(n *sitter.Node) *estree.LabeledStatement {
	label := c.label(n)
	if label == nil {
		c.unexpected(n)
	}
	if _, dup := c.findLabel(label.Name); dup {
		c.fail(n, ErrSyntax, "Label '%s' has already been declared", label.Name)
	}

	body := c.field(n, "body")
	isLoop := false
	switch body.Type() {
	case jsNodeForStatement, jsNodeForInStatement, jsNodeWhileStatement, jsNodeDoStatement:
		isLoop = true
	}

	c.ctl.labels = append(c.ctl.labels, jumpLabel{name: label.Name, isLoop: isLoop})
	defer func() { c.ctl.labels = c.ctl.labels[:len(c.ctl.labels)-1] }()

	return at(c, &estree.LabeledStatement{Label: label, Body: c.statement(body)}, n)
}

// =============================================================================
// Declarations
// =============================================================================

// variableDeclaration converts var, let and const. In a for-loop head the
// const and destructuring initializer checks do not apply to for-in/of, which
// are handled separately.
func (c *converter) variableDeclaration(n *sitter.Node, forInit bool) *estree.VariableDeclaration {
	kind := estree.KindVar
	if n.Type() == jsNodeLexicalDeclaration {
		k := n.ChildByFieldName("kind")
		if k == nil {
			k = n.Child(0)
		}
		kind = c.text(k)
	}

	decl := &estree.VariableDeclaration{Kind: kind, Declarations: make([]*estree.VariableDeclarator, 0, 1)}
	for _, ch := range named(n) {
		if ch.Type() != jsNodeVariableDeclarator {
			continue
		}
		nameNode := c.field(ch, "name")
		d := &estree.VariableDeclarator{ID: c.pattern(nameNode)}
		c.checkBinding(nameNode, d.ID, kind != estree.KindVar, msgStrictVarName)
		if value := ch.ChildByFieldName("value"); value != nil {
			d.Init = c.expression(value)
		} else {
			switch {
			case kind == estree.KindConst:
				c.fail(ch, ErrSyntax, "Missing initializer in const declaration")
			case nameNode.Type() != jsNodeIdentifier && !forInit:
				c.fail(ch, ErrSyntax, "Missing initializer in destructuring declaration")
			}
		}
		decl.Declarations = append(decl.Declarations, at(c, d, ch))
	}
	if len(decl.Declarations) == 0 {
		c.unexpected(n)
	}
	return at(c, decl, n)
}

func (c *converter) functionDeclaration(n *sitter.Node) *estree.FunctionDeclaration {
	fn := c.function(n)
	return at(c, &estree.FunctionDeclaration{
		ID:        fn.ID,
		Params:    fn.Params,
		Body:      fn.Body,
		Generator: fn.Generator,
		Async:     fn.Async,
	}, n)
}

func (c *converter) classDeclaration(n *sitter.Node) *estree.ClassDeclaration {
	cls := c.class(n)
	return at(c, &estree.ClassDeclaration{ID: cls.ID, SuperClass: cls.SuperClass, Body: cls.Body}, n)
}

// =============================================================================
// Modules
// =============================================================================

func (c *converter) importDeclaration(n *sitter.Node) *estree.ImportDeclaration {
	if hasChild(n, jsNodeImportAttribute) {
		c.unsupported(n, "import attributes")
	}

	decl := &estree.ImportDeclaration{Specifiers: make([]estree.ModuleSpecifier, 0)}
	for _, ch := range named(n) {
		if ch.Type() != jsNodeImportClause {
			continue
		}
		for _, part := range named(ch) {
			switch part.Type() {
			case jsNodeIdentifier:
				decl.Specifiers = append(decl.Specifiers,
					at(c, &estree.ImportDefaultSpecifier{Local: c.identifier(part)}, part))
			case jsNodeNamespaceImport:
				id := firstNamed(part)
				if id == nil {
					c.unexpected(part)
				}
				decl.Specifiers = append(decl.Specifiers,
					at(c, &estree.ImportNamespaceSpecifier{Local: c.identifier(id)}, part))
			case jsNodeNamedImports:
				for _, spec := range named(part) {
					if spec.Type() != jsNodeImportSpecifier {
						c.unexpected(spec)
					}
					decl.Specifiers = append(decl.Specifiers, c.importSpecifier(spec))
				}
			default:
				c.unexpected(part)
			}
		}
	}

	decl.Source = c.moduleSource(n)
	return at(c, decl, n)
}

func (c *converter) importSpecifier(n *sitter.Node) *estree.ImportSpecifier {
	name := c.field(n, "name")
	if name.Type() == jsNodeString {
		c.unsupported(name, "string module export names")
	}
	imported := c.identifier(name)
	local := c.identifier(name)
	if alias := n.ChildByFieldName("alias"); alias != nil {
		local = c.identifier(alias)
	}
	return at(c, &estree.ImportSpecifier{Local: local, Imported: imported}, n)
}

func (c *converter) moduleSource(n *sitter.Node) *estree.Literal {
	src := n.ChildByFieldName("source")
	if src == nil {
		c.fail(n, ErrSyntax, "Unexpected token")
	}
	return c.stringLiteral(src)
}

func (c *converter) exportDeclaration(n *sitter.Node) estree.Statement {
	if hasChild(n, jsNodeDecorator) {
		c.unsupported(n, "decorators")
	}

	declNode := n.ChildByFieldName("declaration")
	if hasToken(n, jsNodeDefault) {
		if declNode != nil {
			var decl estree.Node
			switch declNode.Type() {
			case jsNodeFunctionDeclaration, jsNodeGeneratorFuncDecl:
				decl = c.functionDeclaration(declNode)
			case jsNodeClassDeclaration:
				decl = c.classDeclaration(declNode)
			default:
				c.unexpected(declNode)
			}
			return at(c, &estree.ExportDefaultDeclaration{Declaration: decl}, n)
		}

		value := c.field(n, "value")
		var decl estree.Node
		switch value.Type() {
		case jsNodeFunctionExpression, jsNodeFunction, jsNodeGeneratorFunction:
			// An anonymous default function is a declaration, not an expression.
			fn := c.function(value)
			decl = at(c, &estree.FunctionDeclaration{
				ID:        fn.ID,
				Params:    fn.Params,
				Body:      fn.Body,
				Generator: fn.Generator,
				Async:     fn.Async,
			}, value)
		case jsNodeClass:
			cls := c.class(value)
			decl = at(c, &estree.ClassDeclaration{ID: cls.ID, SuperClass: cls.SuperClass, Body: cls.Body}, value)
		default:
			decl = c.expression(value)
		}
		return at(c, &estree.ExportDefaultDeclaration{Declaration: decl}, n)
	}

	if declNode != nil {
		decl := &estree.ExportNamedDeclaration{Specifiers: make([]*estree.ExportSpecifier, 0)}
		switch declNode.Type() {
		case jsNodeFunctionDeclaration, jsNodeGeneratorFuncDecl:
			decl.Declaration = c.functionDeclaration(declNode)
		case jsNodeClassDeclaration:
			decl.Declaration = c.classDeclaration(declNode)
		case jsNodeVariableDeclaration, jsNodeLexicalDeclaration:
			decl.Declaration = c.variableDeclaration(declNode, false)
		default:
			c.unexpected(declNode)
		}
		return at(c, decl, n)
	}

	if hasChild(n, jsNodeNamespaceExport) {
		c.unsupported(n, "export * as namespace")
	}

	var clause *sitter.Node
	for _, ch := range named(n) {
		if ch.Type() == jsNodeExportClause {
			clause = ch
		}
	}
	if clause == nil {
		if !hasToken(n, jsNodeStar) {
			c.unexpected(n)
		}
		return at(c, &estree.ExportAllDeclaration{Source: c.moduleSource(n)}, n)
	}

	decl := &estree.ExportNamedDeclaration{Specifiers: make([]*estree.ExportSpecifier, 0)}
	for _, spec := range named(clause) {
		if spec.Type() != jsNodeExportSpecifier {
			c.unexpected(spec)
		}
		name := c.field(spec, "name")
		if name.Type() == jsNodeString {
			c.unsupported(name, "string module export names")
		}
		s := &estree.ExportSpecifier{Local: c.identifier(name)}
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			if alias.Type() == jsNodeString {
				c.unsupported(alias, "string module export names")
			}
			s.Exported = c.identifier(alias)
		} else {
			s.Exported = c.identifier(name)
		}
		decl.Specifiers = append(decl.Specifiers, at(c, s, spec))
	}
	if n.ChildByFieldName("source") != nil {
		decl.Source = c.moduleSource(n)
	}
	return at(c, decl, n)
}

// hasChild reports a named child of the given type.
func hasChild(n *sitter.Node, typ string) bool {
	for _, ch := range named(n) {
		if ch.Type() == typ {
			return true
		}
	}
	return false
}
