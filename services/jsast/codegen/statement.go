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

// statement renders s at the current level. The first line carries no
// indentation; the caller places it.
func (p *printer) statement(s estree.Statement) string {
	if estree.IsNil(s) {
		p.fail(nil, "nil statement")
	}

	switch s := s.(type) {
	case *estree.ExpressionStatement:
		return p.expressionStatement(s)

	case *estree.BlockStatement:
		return p.block(s)

	case *estree.EmptyStatement:
		return ";"

	case *estree.DebuggerStatement:
		return "debugger;"

	case *estree.WithStatement:
		p.need(s, s.Object, "object")
		return "with (" + p.expr(s.Object, precSequence) + ")" + p.body(s.Body)

	case *estree.ReturnStatement:
		if estree.IsNil(s.Argument) {
			return "return;"
		}
		return "return " + p.expr(s.Argument, precSequence) + ";"

	case *estree.ThrowStatement:
		p.need(s, s.Argument, "argument")
		return "throw " + p.expr(s.Argument, precSequence) + ";"

	case *estree.LabeledStatement:
		p.need(s, s.Label, "label")
		return p.identifier(s.Label) + ": " + p.statement(s.Body)

	case *estree.BreakStatement:
		if s.Label == nil {
			return "break;"
		}
		return "break " + p.identifier(s.Label) + ";"

	case *estree.ContinueStatement:
		if s.Label == nil {
			return "continue;"
		}
		return "continue " + p.identifier(s.Label) + ";"

	case *estree.IfStatement:
		return p.ifStatement(s)

	case *estree.SwitchStatement:
		return p.switchStatement(s)

	case *estree.TryStatement:
		return p.tryStatement(s)

	case *estree.WhileStatement:
		p.need(s, s.Test, "test")
		return "while (" + p.expr(s.Test, precSequence) + ")" + p.body(s.Body)

	case *estree.DoWhileStatement:
		p.need(s, s.Test, "test")
		text := "do" + p.body(s.Body)
		if _, ok := s.Body.(*estree.BlockStatement); ok {
			text += " "
		} else {
			text += "\n" + p.pad()
		}
		return text + "while (" + p.expr(s.Test, precSequence) + ");"

	case *estree.ForStatement:
		return p.forStatement(s)

	case *estree.ForInStatement:
		return p.forEach(s, s.Left, "in", s.Right, precSequence, s.Body)

	case *estree.ForOfStatement:
		return p.forEach(s, s.Left, "of", s.Right, precAssignment, s.Body)

	case *estree.FunctionDeclaration:
		fn := &estree.FunctionExpression{ID: s.ID, Params: s.Params, Body: s.Body, Generator: s.Generator, Async: s.Async}
		return p.function(fn)

	case *estree.VariableDeclaration:
		return p.variableDeclaration(s, true) + ";"

	case *estree.ClassDeclaration:
		return p.class(s, s.ID, s.SuperClass, s.Body)

	case *estree.ImportDeclaration:
		return p.importDeclaration(s)

	case *estree.ExportNamedDeclaration:
		return p.exportNamed(s)

	case *estree.ExportDefaultDeclaration:
		return p.exportDefault(s)

	case *estree.ExportAllDeclaration:
		p.need(s, s.Source, "source")
		return "export * from " + p.literal(s.Source) + ";"
	}

	p.fail(s, "not a statement")
	return ""
}

func (p *printer) expressionStatement(s *estree.ExpressionStatement) string {
	p.need(s, s.Expression, "expression")

	if s.Directive != "" {
		return quoteDirective(s.Directive) + ";"
	}

	text := p.expr(s.Expression, precSequence)
	if lit, ok := s.Expression.(*estree.Literal); ok && lit.Kind == estree.LiteralString {
		// A bare string here would be read back as a directive.
		return "(" + text + ");"
	}
	if startsAmbiguously(text, true) {
		return "(" + text + ");"
	}
	return text + ";"
}

// startsAmbiguously reports source that a statement-level parse would read
// as a declaration or block instead of an expression.
func startsAmbiguously(text string, objectToo bool) bool {
	if objectToo && strings.HasPrefix(text, "{") {
		return true
	}
	return hasWord(text, "function") ||
		hasWord(text, "class") ||
		strings.HasPrefix(text, "async function") ||
		strings.HasPrefix(text, "let[")
}

// hasWord reports whether text begins with word as a whole token.
func hasWord(text, word string) bool {
	if !strings.HasPrefix(text, word) {
		return false
	}
	if len(text) == len(word) {
		return true
	}
	return !isIdentPart(text[len(word)])
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// block renders a block at the current level.
func (p *printer) block(b *estree.BlockStatement) string {
	if b == nil {
		p.fail(nil, "nil block")
	}
	return p.statementBlock(b.Body)
}

func (p *printer) statementBlock(body []estree.Statement) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	p.nested(func() string {
		for _, s := range body {
			sb.WriteString(p.pad())
			sb.WriteString(p.statement(s))
			sb.WriteByte('\n')
		}
		return ""
	})
	sb.WriteString(p.pad())
	sb.WriteByte('}')
	return sb.String()
}

// body renders the body of a compound statement: a block stays on the same
// line, anything else moves to its own indented line.
func (p *printer) body(s estree.Statement) string {
	if estree.IsNil(s) {
		p.fail(nil, "missing body")
	}
	switch s := s.(type) {
	case *estree.BlockStatement:
		return " " + p.block(s)
	case *estree.EmptyStatement:
		return ";"
	}
	return "\n" + p.nested(func() string {
		return p.pad() + p.statement(s)
	})
}

func (p *printer) ifStatement(s *estree.IfStatement) string {
	p.need(s, s.Test, "test")
	p.need(s, s.Consequent, "consequent")

	cons := s.Consequent
	if !estree.IsNil(s.Alternate) && endsWithDanglingIf(cons) {
		cons = &estree.BlockStatement{Body: []estree.Statement{cons}}
	}

	text := "if (" + p.expr(s.Test, precSequence) + ")" + p.body(cons)
	if estree.IsNil(s.Alternate) {
		return text
	}

	if _, ok := cons.(*estree.BlockStatement); ok {
		text += " else"
	} else {
		text += "\n" + p.pad() + "else"
	}
	if alt, ok := s.Alternate.(*estree.IfStatement); ok {
		return text + " " + p.ifStatement(alt)
	}
	return text + p.body(s.Alternate)
}

// endsWithDanglingIf reports a statement whose last nested statement is an
// if without else, which would capture a following else.
func endsWithDanglingIf(s estree.Statement) bool {
	switch s := s.(type) {
	case *estree.IfStatement:
		if estree.IsNil(s.Alternate) {
			return true
		}
		return endsWithDanglingIf(s.Alternate)
	case *estree.WhileStatement:
		return endsWithDanglingIf(s.Body)
	case *estree.ForStatement:
		return endsWithDanglingIf(s.Body)
	case *estree.ForInStatement:
		return endsWithDanglingIf(s.Body)
	case *estree.ForOfStatement:
		return endsWithDanglingIf(s.Body)
	case *estree.WithStatement:
		return endsWithDanglingIf(s.Body)
	case *estree.LabeledStatement:
		return endsWithDanglingIf(s.Body)
	}
	return false
}

func (p *printer) switchStatement(s *estree.SwitchStatement) string {
	p.need(s, s.Discriminant, "discriminant")

	var sb strings.Builder
	sb.WriteString("switch (" + p.expr(s.Discriminant, precSequence) + ") {\n")
	p.nested(func() string {
		for _, c := range s.Cases {
			if c == nil {
				p.fail(s, "nil case")
			}
			sb.WriteString(p.pad())
			if estree.IsNil(c.Test) {
				sb.WriteString("default:")
			} else {
				sb.WriteString("case " + p.expr(c.Test, precSequence) + ":")
			}
			p.nested(func() string {
				for _, st := range c.Consequent {
					sb.WriteString("\n" + p.pad() + p.statement(st))
				}
				return ""
			})
			sb.WriteByte('\n')
		}
		return ""
	})
	sb.WriteString(p.pad() + "}")
	return sb.String()
}

func (p *printer) tryStatement(s *estree.TryStatement) string {
	if s.Block == nil {
		p.fail(s, "missing block")
	}
	if s.Handler == nil && s.Finalizer == nil {
		p.fail(s, "missing handler or finalizer")
	}

	text := "try " + p.block(s.Block)
	if h := s.Handler; h != nil {
		if estree.IsNil(h.Param) {
			text += " catch " + p.block(h.Body)
		} else {
			text += " catch (" + p.pattern(h.Param) + ") " + p.block(h.Body)
		}
	}
	if s.Finalizer != nil {
		text += " finally " + p.block(s.Finalizer)
	}
	return text
}

func (p *printer) forStatement(s *estree.ForStatement) string {
	text := "for ("
	if !estree.IsNil(s.Init) {
		switch init := s.Init.(type) {
		case *estree.VariableDeclaration:
			text += p.variableDeclaration(init, false)
		case estree.Expression:
			e := p.expr(init, precSequence)
			if containsIn(init) {
				e = "(" + e + ")"
			}
			text += e
		default:
			p.fail(s, "init is %s", init.Type())
		}
	}
	text += ";"
	if !estree.IsNil(s.Test) {
		text += " " + p.expr(s.Test, precSequence)
	}
	text += ";"
	if !estree.IsNil(s.Update) {
		text += " " + p.expr(s.Update, precSequence)
	}
	return text + ")" + p.body(s.Body)
}

// forEach renders for-in and for-of.
func (p *printer) forEach(s estree.Statement, left estree.Node, op string, right estree.Expression, rightPrec int, body estree.Statement) string {
	p.need(s, left, "left")
	p.need(s, right, "right")

	text := "for ("
	switch l := left.(type) {
	case *estree.VariableDeclaration:
		text += p.variableDeclaration(l, false)
	case estree.Pattern:
		lt := p.pattern(l)
		if hasWord(lt, "let") || (op == "of" && hasWord(lt, "async")) {
			lt = "(" + lt + ")"
		}
		text += lt
	default:
		p.fail(s, "left is %s", left.Type())
	}
	return text + " " + op + " " + p.expr(right, rightPrec) + ")" + p.body(body)
}

// variableDeclaration renders a declaration without its semicolon. Outside
// a statement (a for-loop head) initializers containing "in" are wrapped.
func (p *printer) variableDeclaration(d *estree.VariableDeclaration, statement bool) string {
	switch d.Kind {
	case estree.KindVar, estree.KindLet, estree.KindConst:
	default:
		p.fail(d, "invalid kind %q", d.Kind)
	}
	if len(d.Declarations) == 0 {
		p.fail(d, "no declarations")
	}

	parts := make([]string, 0, len(d.Declarations))
	for _, decl := range d.Declarations {
		if decl == nil {
			p.fail(d, "nil declarator")
		}
		p.need(decl, decl.ID, "id")
		text := p.pattern(decl.ID)
		if !estree.IsNil(decl.Init) {
			init := p.expr(decl.Init, precAssignment)
			if !statement && containsIn(decl.Init) {
				init = "(" + init + ")"
			}
			text += " = " + init
		}
		parts = append(parts, text)
	}
	return d.Kind + " " + strings.Join(parts, ", ")
}

// containsIn reports a binary "in" anywhere under e.
func containsIn(e estree.Node) bool {
	found := false
	estree.Walk(e, func(n estree.Node) bool {
		if b, ok := n.(*estree.BinaryExpression); ok && b.Operator == "in" {
			found = true
		}
		return !found
	})
	return found
}

// =============================================================================
// Modules
// =============================================================================

func (p *printer) importDeclaration(s *estree.ImportDeclaration) string {
	p.need(s, s.Source, "source")
	if len(s.Specifiers) == 0 {
		return "import " + p.literal(s.Source) + ";"
	}

	var head []string
	var named []string
	for _, spec := range s.Specifiers {
		switch spec := spec.(type) {
		case *estree.ImportDefaultSpecifier:
			head = append(head, p.identifier(spec.Local))
		case *estree.ImportNamespaceSpecifier:
			head = append(head, "* as "+p.identifier(spec.Local))
		case *estree.ImportSpecifier:
			p.need(spec, spec.Imported, "imported")
			if spec.Local == nil || spec.Local.Name == spec.Imported.Name {
				named = append(named, p.identifier(spec.Imported))
			} else {
				named = append(named, p.identifier(spec.Imported)+" as "+p.identifier(spec.Local))
			}
		default:
			p.fail(s, "invalid specifier")
		}
	}
	if len(named) > 0 {
		head = append(head, "{ "+strings.Join(named, ", ")+" }")
	}
	return "import " + strings.Join(head, ", ") + " from " + p.literal(s.Source) + ";"
}

func (p *printer) exportNamed(s *estree.ExportNamedDeclaration) string {
	if !estree.IsNil(s.Declaration) {
		return "export " + p.statement(s.Declaration)
	}

	specs := make([]string, 0, len(s.Specifiers))
	for _, spec := range s.Specifiers {
		if spec == nil {
			p.fail(s, "nil specifier")
		}
		p.need(spec, spec.Local, "local")
		if spec.Exported == nil || spec.Exported.Name == spec.Local.Name {
			specs = append(specs, p.identifier(spec.Local))
		} else {
			specs = append(specs, p.identifier(spec.Local)+" as "+p.identifier(spec.Exported))
		}
	}

	text := "export {}"
	if len(specs) > 0 {
		text = "export { " + strings.Join(specs, ", ") + " }"
	}
	if s.Source != nil {
		text += " from " + p.literal(s.Source)
	}
	return text + ";"
}

func (p *printer) exportDefault(s *estree.ExportDefaultDeclaration) string {
	p.need(s, s.Declaration, "declaration")
	switch d := s.Declaration.(type) {
	case *estree.FunctionDeclaration, *estree.ClassDeclaration:
		return "export default " + p.statement(d.(estree.Statement))
	case estree.Expression:
		text := p.expr(d, precAssignment)
		if startsAmbiguously(text, false) {
			text = "(" + text + ")"
		}
		return "export default " + text + ";"
	}
	p.fail(s, "invalid declaration %s", s.Declaration.Type())
	return ""
}
