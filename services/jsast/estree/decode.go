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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Decode parses a serialized tree and validates it against the node set.
//
// Description:
//
//	The document is walked with gjson rather than unmarshalled into maps so
//	that every node is checked while it is built: the "type" tag must name a
//	supported variant, required fields must be present, children must belong
//	to the category their slot demands, and operator and kind strings must be
//	valid. The first problem found is returned as a *DecodeError whose Kind
//	is one of ErrMalformedJSON, ErrUnknownNodeType, ErrMissingField or
//	ErrInvalidField.
//
//	Boolean flags (computed, static, async, ...) default to false when absent.
//	Every array field is required: an absent or null list is ErrMissingField,
//	so a tree that lost its statements or arguments is never rendered as an
//	empty one.
//
// Inputs:
//
//	text - The serialized tree. The root must be a Program.
//
// Outputs:
//
//	*Program - The decoded tree. Nil on error.
//	error    - Non-nil if the text is not a valid tree.
func Decode(text string) (*Program, error) {
	if !gjson.Valid(text) {
		return nil, &DecodeError{Path: "$", Kind: ErrMalformedJSON, Detail: "document is not valid JSON"}
	}
	d := &decoder{}
	prog := d.program(gjson.Parse(text), "$")
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

// decoder keeps the first error; after that every method returns zero values.
type decoder struct {
	err *DecodeError
}

func (d *decoder) fail(path string, kind error, format string, args ...any) {
	if d.err == nil {
		d.err = &DecodeError{Path: path, Kind: kind, Detail: fmt.Sprintf(format, args...)}
	}
}

// =============================================================================
// Field access
// =============================================================================

// object is a JSON object being decoded at path.
type object struct {
	d    *decoder
	v    gjson.Result
	path string
}

func (o object) at(key string) (gjson.Result, string) {
	return o.v.Get(key), o.path + "." + key
}

func (o object) str(key string) string {
	v, p := o.at(key)
	if !v.Exists() {
		o.d.fail(p, ErrMissingField, "%q is required", key)
		return ""
	}
	if v.Type != gjson.String {
		o.d.fail(p, ErrInvalidField, "%q must be a string", key)
		return ""
	}
	return v.Str
}

func (o object) optStr(key string) string {
	v, p := o.at(key)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	if v.Type != gjson.String {
		o.d.fail(p, ErrInvalidField, "%q must be a string", key)
		return ""
	}
	return jsonString(v)
}

func (o object) oneOf(key string, allowed map[string]bool) string {
	s := o.str(key)
	if o.d.err == nil && !allowed[s] {
		_, p := o.at(key)
		o.d.fail(p, ErrInvalidField, "unsupported %s %q", key, s)
	}
	return s
}

func (o object) boolean(key string) bool {
	v, p := o.at(key)
	switch v.Type {
	case gjson.True:
		return true
	case gjson.False, gjson.Null:
		return false
	}
	if v.Exists() {
		o.d.fail(p, ErrInvalidField, "%q must be a boolean", key)
	}
	return false
}

// child decodes a node field; nil when the field is null or absent and
// optional is set.
func (o object) child(key string, optional bool) (Node, string) {
	v, p := o.at(key)
	if !v.Exists() || v.Type == gjson.Null {
		if !optional {
			o.d.fail(p, ErrMissingField, "%q is required", key)
		}
		return nil, p
	}
	return o.d.node(v, p), p
}

// list returns the entries of a required array field.
func (o object) list(key string) ([]gjson.Result, string) {
	v, p := o.at(key)
	if !v.Exists() || v.Type == gjson.Null {
		o.d.fail(p, ErrMissingField, "%q is required", key)
		return nil, p
	}
	if !v.IsArray() {
		o.d.fail(p, ErrInvalidField, "%q must be an array", key)
		return nil, p
	}
	return v.Array(), p
}

func (o object) expr(key string) Expression {
	n, p := o.child(key, false)
	return o.d.asExpression(n, p)
}

func (o object) optExpr(key string) Expression {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	return o.d.asExpression(n, p)
}

func (o object) stmt(key string) Statement {
	n, p := o.child(key, false)
	return o.d.asStatement(n, p)
}

func (o object) optStmt(key string) Statement {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	return o.d.asStatement(n, p)
}

func (o object) pattern(key string) Pattern {
	n, p := o.child(key, false)
	return o.d.asPattern(n, p)
}

func (o object) optPattern(key string) Pattern {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	return o.d.asPattern(n, p)
}

func (o object) ident(key string) *Identifier {
	n, p := o.child(key, false)
	return o.d.asIdentifier(n, p)
}

func (o object) optIdent(key string) *Identifier {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	return o.d.asIdentifier(n, p)
}

func (o object) block(key string) *BlockStatement {
	n, p := o.child(key, false)
	if b, ok := n.(*BlockStatement); ok {
		return b
	}
	o.d.wrongType(n, p, TypeBlockStatement)
	return nil
}

func (o object) optBlock(key string) *BlockStatement {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	if b, ok := n.(*BlockStatement); ok {
		return b
	}
	o.d.wrongType(n, p, TypeBlockStatement)
	return nil
}

func (o object) stringLiteral(key string) *Literal {
	n, p := o.child(key, false)
	if l, ok := n.(*Literal); ok && l.Kind == LiteralString {
		return l
	}
	o.d.wrongType(n, p, "string Literal")
	return nil
}

func (o object) optStringLiteral(key string) *Literal {
	n, p := o.child(key, true)
	if n == nil {
		return nil
	}
	if l, ok := n.(*Literal); ok && l.Kind == LiteralString {
		return l
	}
	o.d.wrongType(n, p, "string Literal")
	return nil
}

func (o object) function(key string) *FunctionExpression {
	n, p := o.child(key, false)
	if f, ok := n.(*FunctionExpression); ok {
		return f
	}
	o.d.wrongType(n, p, TypeFunctionExpression)
	return nil
}

func (o object) classBody(key string) *ClassBody {
	n, p := o.child(key, false)
	if b, ok := n.(*ClassBody); ok {
		return b
	}
	o.d.wrongType(n, p, TypeClassBody)
	return nil
}

func (o object) stmts(key string) []Statement {
	items, p := o.list(key)
	out := make([]Statement, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		out = append(out, o.d.asStatement(o.d.node(item, ip), ip))
	}
	return out
}

// exprs decodes an expression list; holes (null entries) are kept when allowed.
func (o object) exprs(key string, holes bool) []Expression {
	items, p := o.list(key)
	out := make([]Expression, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		if item.Type == gjson.Null {
			if !holes {
				o.d.fail(ip, ErrInvalidField, "null entry not allowed")
			}
			out = append(out, nil)
			continue
		}
		out = append(out, o.d.asExpression(o.d.node(item, ip), ip))
	}
	return out
}

func (o object) patterns(key string, holes bool) []Pattern {
	items, p := o.list(key)
	out := make([]Pattern, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		if item.Type == gjson.Null {
			if !holes {
				o.d.fail(ip, ErrInvalidField, "null entry not allowed")
			}
			out = append(out, nil)
			continue
		}
		out = append(out, o.d.asPattern(o.d.node(item, ip), ip))
	}
	return out
}

// =============================================================================
// Category checks
// =============================================================================

func (d *decoder) wrongType(n Node, path, want string) {
	if n == nil {
		// The child decode already failed or the field was missing.
		if d.err == nil {
			d.fail(path, ErrMissingField, "expected %s", want)
		}
		return
	}
	d.fail(path, ErrInvalidField, "expected %s, got %s", want, n.Type())
}

func (d *decoder) asExpression(n Node, path string) Expression {
	if e, ok := n.(Expression); ok {
		return e
	}
	d.wrongType(n, path, "expression")
	return nil
}

func (d *decoder) asStatement(n Node, path string) Statement {
	if s, ok := n.(Statement); ok {
		return s
	}
	d.wrongType(n, path, "statement")
	return nil
}

func (d *decoder) asPattern(n Node, path string) Pattern {
	if p, ok := n.(Pattern); ok {
		return p
	}
	d.wrongType(n, path, "pattern")
	return nil
}

func (d *decoder) asIdentifier(n Node, path string) *Identifier {
	if id, ok := n.(*Identifier); ok {
		return id
	}
	d.wrongType(n, path, TypeIdentifier)
	return nil
}

// =============================================================================
// Nodes
// =============================================================================

func (d *decoder) program(v gjson.Result, path string) *Program {
	if !v.IsObject() {
		d.fail(path, ErrInvalidField, "root must be an object")
		return nil
	}
	typ := v.Get("type")
	if !typ.Exists() {
		d.fail(path+".type", ErrMissingField, `"type" is required`)
		return nil
	}
	if typ.String() != TypeProgram {
		d.fail(path+".type", ErrInvalidField, "root must be a Program, got %q", typ.String())
		return nil
	}
	o := object{d: d, v: v, path: path}
	prog := &Program{Body: o.stmts("body"), SourceType: SourceTypeScript}
	if st := o.optStr("sourceType"); st != "" {
		if st != SourceTypeScript && st != SourceTypeModule {
			d.fail(path+".sourceType", ErrInvalidField, "unsupported sourceType %q", st)
		}
		prog.SourceType = st
	}
	d.position(v, path, &prog.Base)
	return prog
}

// node decodes any non-root node by dispatching on its "type" tag.
func (d *decoder) node(v gjson.Result, path string) Node {
	if d.err != nil {
		return nil
	}
	if !v.IsObject() {
		d.fail(path, ErrInvalidField, "node must be an object")
		return nil
	}
	typ := v.Get("type")
	if !typ.Exists() {
		d.fail(path+".type", ErrMissingField, `"type" is required`)
		return nil
	}
	if typ.Type != gjson.String {
		d.fail(path+".type", ErrInvalidField, `"type" must be a string`)
		return nil
	}

	o := object{d: d, v: v, path: path}
	var n Node

	switch typ.Str {
	case TypeIdentifier:
		n = &Identifier{Name: o.str("name")}
	case TypeLiteral:
		n = d.literal(o)

	// Statements
	case TypeExpressionStatement:
		n = &ExpressionStatement{Expression: o.expr("expression"), Directive: o.optStr("directive")}
	case TypeBlockStatement:
		n = &BlockStatement{Body: o.stmts("body")}
	case TypeEmptyStatement:
		n = &EmptyStatement{}
	case TypeDebuggerStatement:
		n = &DebuggerStatement{}
	case TypeWithStatement:
		n = &WithStatement{Object: o.expr("object"), Body: o.stmt("body")}
	case TypeReturnStatement:
		n = &ReturnStatement{Argument: o.optExpr("argument")}
	case TypeLabeledStatement:
		n = &LabeledStatement{Label: o.ident("label"), Body: o.stmt("body")}
	case TypeBreakStatement:
		n = &BreakStatement{Label: o.optIdent("label")}
	case TypeContinueStatement:
		n = &ContinueStatement{Label: o.optIdent("label")}
	case TypeIfStatement:
		n = &IfStatement{Test: o.expr("test"), Consequent: o.stmt("consequent"), Alternate: o.optStmt("alternate")}
	case TypeSwitchStatement:
		n = &SwitchStatement{Discriminant: o.expr("discriminant"), Cases: d.switchCases(o)}
	case TypeSwitchCase:
		n = &SwitchCase{Test: o.optExpr("test"), Consequent: o.stmts("consequent")}
	case TypeThrowStatement:
		n = &ThrowStatement{Argument: o.expr("argument")}
	case TypeTryStatement:
		n = d.tryStatement(o)
	case TypeCatchClause:
		n = &CatchClause{Param: o.optPattern("param"), Body: o.block("body")}
	case TypeWhileStatement:
		n = &WhileStatement{Test: o.expr("test"), Body: o.stmt("body")}
	case TypeDoWhileStatement:
		n = &DoWhileStatement{Body: o.stmt("body"), Test: o.expr("test")}
	case TypeForStatement:
		n = &ForStatement{Init: d.forInit(o), Test: o.optExpr("test"), Update: o.optExpr("update"), Body: o.stmt("body")}
	case TypeForInStatement:
		n = &ForInStatement{Left: d.forLeft(o), Right: o.expr("right"), Body: o.stmt("body")}
	case TypeForOfStatement:
		n = &ForOfStatement{Left: d.forLeft(o), Right: o.expr("right"), Body: o.stmt("body")}

	// Declarations
	case TypeFunctionDeclaration:
		n = &FunctionDeclaration{
			ID:         o.optIdent("id"),
			Params:     o.patterns("params", false),
			Body:       o.block("body"),
			Generator:  o.boolean("generator"),
			Expression: o.boolean("expression"),
			Async:      o.boolean("async"),
		}
	case TypeVariableDeclaration:
		n = d.variableDeclaration(o)
	case TypeVariableDeclarator:
		n = &VariableDeclarator{ID: o.pattern("id"), Init: o.optExpr("init")}
	case TypeClassDeclaration:
		n = &ClassDeclaration{ID: o.optIdent("id"), SuperClass: o.optExpr("superClass"), Body: o.classBody("body")}
	case TypeClassBody:
		n = d.classBody(o)
	case TypeMethodDefinition:
		n = &MethodDefinition{
			Key:      o.expr("key"),
			Computed: o.boolean("computed"),
			Value:    o.function("value"),
			Kind: o.oneOf("kind", map[string]bool{
				MethodKindConstructor: true, MethodKindMethod: true, MethodKindGet: true, MethodKindSet: true,
			}),
			Static: o.boolean("static"),
		}

	// Modules
	case TypeImportDeclaration:
		n = d.importDeclaration(o)
	case TypeImportSpecifier:
		n = &ImportSpecifier{Local: o.ident("local"), Imported: o.ident("imported")}
	case TypeImportDefaultSpecifier:
		n = &ImportDefaultSpecifier{Local: o.ident("local")}
	case TypeImportNamespaceSpecifier:
		n = &ImportNamespaceSpecifier{Local: o.ident("local")}
	case TypeExportNamedDeclaration:
		n = d.exportNamed(o)
	case TypeExportSpecifier:
		n = &ExportSpecifier{Local: o.ident("local"), Exported: o.ident("exported")}
	case TypeExportDefaultDeclaration:
		n = d.exportDefault(o)
	case TypeExportAllDeclaration:
		n = &ExportAllDeclaration{Source: o.stringLiteral("source")}

	// Expressions
	case TypeThisExpression:
		n = &ThisExpression{}
	case TypeSuper:
		n = &Super{}
	case TypeArrayExpression:
		n = &ArrayExpression{Elements: o.exprs("elements", true)}
	case TypeObjectExpression:
		n = &ObjectExpression{Properties: d.members(o, false)}
	case TypeProperty:
		n = d.property(o, false)
	case TypeFunctionExpression:
		n = &FunctionExpression{
			ID:         o.optIdent("id"),
			Params:     o.patterns("params", false),
			Body:       o.block("body"),
			Generator:  o.boolean("generator"),
			Expression: o.boolean("expression"),
			Async:      o.boolean("async"),
		}
	case TypeArrowFunctionExpression:
		n = d.arrow(o)
	case TypeClassExpression:
		n = &ClassExpression{ID: o.optIdent("id"), SuperClass: o.optExpr("superClass"), Body: o.classBody("body")}
	case TypeTemplateLiteral:
		n = d.templateLiteral(o)
	case TypeTemplateElement:
		n = d.templateElement(o)
	case TypeTaggedTemplateExpression:
		n = d.taggedTemplate(o)
	case TypeUnaryExpression:
		n = &UnaryExpression{Operator: o.oneOf("operator", UnaryOperators), Argument: o.expr("argument"), Prefix: true}
	case TypeUpdateExpression:
		n = &UpdateExpression{Operator: o.oneOf("operator", UpdateOperators), Argument: o.expr("argument"), Prefix: o.boolean("prefix")}
	case TypeBinaryExpression:
		n = &BinaryExpression{Operator: o.oneOf("operator", BinaryOperators), Left: o.expr("left"), Right: o.expr("right")}
	case TypeLogicalExpression:
		n = &LogicalExpression{Operator: o.oneOf("operator", LogicalOperators), Left: o.expr("left"), Right: o.expr("right")}
	case TypeAssignmentExpression:
		n = &AssignmentExpression{Operator: o.oneOf("operator", AssignmentOperators), Left: o.pattern("left"), Right: o.expr("right")}
	case TypeConditionalExpression:
		n = &ConditionalExpression{Test: o.expr("test"), Consequent: o.expr("consequent"), Alternate: o.expr("alternate")}
	case TypeCallExpression:
		n = &CallExpression{Callee: o.expr("callee"), Arguments: o.exprs("arguments", false)}
	case TypeNewExpression:
		n = &NewExpression{Callee: o.expr("callee"), Arguments: o.exprs("arguments", false)}
	case TypeMemberExpression:
		n = &MemberExpression{Computed: o.boolean("computed"), Object: o.expr("object"), Property: o.expr("property")}
	case TypeSequenceExpression:
		n = &SequenceExpression{Expressions: o.exprs("expressions", false)}
	case TypeYieldExpression:
		n = &YieldExpression{Argument: o.optExpr("argument"), Delegate: o.boolean("delegate")}
	case TypeAwaitExpression:
		n = &AwaitExpression{Argument: o.expr("argument")}
	case TypeSpreadElement:
		n = &SpreadElement{Argument: o.expr("argument")}
	case TypeMetaProperty:
		n = &MetaProperty{Meta: o.ident("meta"), Property: o.ident("property")}

	// Patterns
	case TypeObjectPattern:
		n = &ObjectPattern{Properties: d.members(o, true)}
	case TypeArrayPattern:
		n = &ArrayPattern{Elements: o.patterns("elements", true)}
	case TypeRestElement:
		n = &RestElement{Argument: o.pattern("argument")}
	case TypeAssignmentPattern:
		n = &AssignmentPattern{Left: o.pattern("left"), Right: o.expr("right")}

	case TypeProgram:
		d.fail(path+".type", ErrInvalidField, "Program is only valid at the root")
		return nil
	default:
		d.fail(path+".type", ErrUnknownNodeType, "%q", typ.Str)
		return nil
	}

	if d.err != nil {
		return nil
	}
	d.validate(n, path)
	d.position(v, path, n.Position())
	return n
}

// validate applies cross-field rules that a single field accessor cannot.
func (d *decoder) validate(n Node, path string) {
	switch n := n.(type) {
	case *MemberExpression:
		if !n.Computed {
			if _, ok := n.Property.(*Identifier); !ok {
				d.fail(path+".property", ErrInvalidField, "non-computed property must be an Identifier")
			}
		}
	case *MetaProperty:
		if n.Meta.Name != "new" || n.Property.Name != "target" {
			d.fail(path, ErrInvalidField, "unsupported meta property %s.%s", n.Meta.Name, n.Property.Name)
		}
	case *AssignmentExpression:
		if n.Operator != "=" {
			switch n.Left.(type) {
			case *Identifier, *MemberExpression:
			default:
				d.fail(path+".left", ErrInvalidField, "compound assignment target must be an Identifier or MemberExpression")
			}
		}
	}
}

// literal decodes Literal; regex literals carry a "regex" object and an
// empty value.
func (d *decoder) literal(o object) *Literal {
	lit := &Literal{Raw: o.optStr("raw")}

	if re, p := o.at("regex"); re.Exists() && re.Type != gjson.Null {
		if !re.IsObject() {
			d.fail(p, ErrInvalidField, `"regex" must be an object`)
			return nil
		}
		ro := object{d: d, v: re, path: p}
		lit.Kind = LiteralRegExp
		lit.Regex = &RegExp{Pattern: ro.str("pattern"), Flags: ro.optStr("flags")}
		if lit.Raw == "" {
			lit.Raw = "/" + lit.Regex.Pattern + "/" + lit.Regex.Flags
		}
		return lit
	}

	v, p := o.at("value")
	if !v.Exists() {
		d.fail(p, ErrMissingField, `"value" is required`)
		return nil
	}
	switch v.Type {
	case gjson.String:
		lit.Kind = LiteralString
		lit.StringValue = jsonString(v)
	case gjson.Number:
		lit.Kind = LiteralNumber
		lit.NumberValue = v.Num
	case gjson.True, gjson.False:
		lit.Kind = LiteralBoolean
		lit.BoolValue = v.Type == gjson.True
	case gjson.Null:
		// Non-finite numbers serialize as null; raw still has the text.
		if f, ok := rawNumber(lit.Raw); ok {
			lit.Kind = LiteralNumber
			lit.NumberValue = f
			return lit
		}
		lit.Kind = LiteralNull
	default:
		d.fail(p, ErrInvalidField, "literal value must be a string, number, boolean or null")
		return nil
	}
	return lit
}

func rawNumber(raw string) (float64, bool) {
	if raw == "" || raw == "null" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (d *decoder) switchCases(o object) []*SwitchCase {
	items, p := o.list("cases")
	out := make([]*SwitchCase, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		n := d.node(item, ip)
		c, ok := n.(*SwitchCase)
		if !ok {
			d.wrongType(n, ip, TypeSwitchCase)
			return nil
		}
		out = append(out, c)
	}
	return out
}

func (d *decoder) tryStatement(o object) *TryStatement {
	t := &TryStatement{Block: o.block("block")}
	n, p := o.child("handler", true)
	if n != nil {
		h, ok := n.(*CatchClause)
		if !ok {
			d.wrongType(n, p, TypeCatchClause)
			return nil
		}
		t.Handler = h
	}
	t.Finalizer = o.optBlock("finalizer")
	if d.err == nil && t.Handler == nil && t.Finalizer == nil {
		d.fail(o.path, ErrMissingField, "try statement needs a handler or a finalizer")
	}
	return t
}

func (d *decoder) forInit(o object) Node {
	n, p := o.child("init", true)
	switch n := n.(type) {
	case nil:
		return nil
	case *VariableDeclaration:
		return n
	case Expression:
		return n
	default:
		d.wrongType(n, p, "VariableDeclaration or expression")
		return nil
	}
}

func (d *decoder) forLeft(o object) Node {
	n, p := o.child("left", false)
	switch n := n.(type) {
	case *VariableDeclaration:
		if len(n.Declarations) != 1 {
			d.fail(p, ErrInvalidField, "for-in/of declaration must declare exactly one binding")
		}
		return n
	case Pattern:
		return n
	default:
		d.wrongType(n, p, "VariableDeclaration or pattern")
		return nil
	}
}

func (d *decoder) variableDeclaration(o object) *VariableDeclaration {
	items, p := o.list("declarations")
	decl := &VariableDeclaration{Declarations: make([]*VariableDeclarator, 0, len(items))}
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		n := d.node(item, ip)
		v, ok := n.(*VariableDeclarator)
		if !ok {
			d.wrongType(n, ip, TypeVariableDeclarator)
			return nil
		}
		decl.Declarations = append(decl.Declarations, v)
	}
	if d.err == nil && len(decl.Declarations) == 0 {
		d.fail(p, ErrInvalidField, "at least one declarator is required")
	}
	decl.Kind = o.oneOf("kind", map[string]bool{KindVar: true, KindLet: true, KindConst: true})
	return decl
}

func (d *decoder) classBody(o object) *ClassBody {
	items, p := o.list("body")
	body := &ClassBody{Body: make([]*MethodDefinition, 0, len(items))}
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		n := d.node(item, ip)
		m, ok := n.(*MethodDefinition)
		if !ok {
			d.wrongType(n, ip, TypeMethodDefinition)
			return nil
		}
		body.Body = append(body.Body, m)
	}
	return body
}

func (d *decoder) importDeclaration(o object) *ImportDeclaration {
	items, p := o.list("specifiers")
	decl := &ImportDeclaration{Specifiers: make([]ModuleSpecifier, 0, len(items))}
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		n := d.node(item, ip)
		s, ok := n.(ModuleSpecifier)
		if !ok {
			d.wrongType(n, ip, "import specifier")
			return nil
		}
		decl.Specifiers = append(decl.Specifiers, s)
	}
	decl.Source = o.stringLiteral("source")
	return decl
}

func (d *decoder) exportNamed(o object) *ExportNamedDeclaration {
	decl := &ExportNamedDeclaration{}
	n, p := o.child("declaration", true)
	switch n := n.(type) {
	case nil:
	case *FunctionDeclaration, *VariableDeclaration, *ClassDeclaration:
		decl.Declaration = n.(Statement)
	default:
		d.wrongType(n, p, "declaration")
		return nil
	}
	items, lp := o.list("specifiers")
	decl.Specifiers = make([]*ExportSpecifier, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", lp, i)
		n := d.node(item, ip)
		s, ok := n.(*ExportSpecifier)
		if !ok {
			d.wrongType(n, ip, TypeExportSpecifier)
			return nil
		}
		decl.Specifiers = append(decl.Specifiers, s)
	}
	decl.Source = o.optStringLiteral("source")
	return decl
}

func (d *decoder) exportDefault(o object) *ExportDefaultDeclaration {
	n, p := o.child("declaration", false)
	switch n := n.(type) {
	case *FunctionDeclaration, *ClassDeclaration:
		return &ExportDefaultDeclaration{Declaration: n}
	case Expression:
		return &ExportDefaultDeclaration{Declaration: n}
	default:
		d.wrongType(n, p, "declaration or expression")
		return nil
	}
}

// members decodes object literal or object pattern members. The same
// Property type serves both, so the context decides what values may hold.
func (d *decoder) members(o object, pattern bool) []Node {
	items, p := o.list("properties")
	out := make([]Node, 0, len(items))
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		if item.IsObject() && item.Get("type").String() == TypeProperty {
			prop := d.property(object{d: d, v: item, path: ip}, pattern)
			if d.err != nil {
				return nil
			}
			d.position(item, ip, &prop.Base)
			out = append(out, prop)
			continue
		}
		n := d.node(item, ip)
		switch n.(type) {
		case *SpreadElement:
			if pattern {
				d.wrongType(n, ip, "Property or RestElement")
				return nil
			}
		case *RestElement:
			if !pattern {
				d.wrongType(n, ip, "Property or SpreadElement")
				return nil
			}
		default:
			d.wrongType(n, ip, "Property")
			return nil
		}
		out = append(out, n)
	}
	return out
}

func (d *decoder) property(o object, pattern bool) *Property {
	prop := &Property{
		Key:      o.expr("key"),
		Computed: o.boolean("computed"),
		Kind: o.oneOf("kind", map[string]bool{
			PropertyKindInit: true, PropertyKindGet: true, PropertyKindSet: true,
		}),
		Method:    o.boolean("method"),
		Shorthand: o.boolean("shorthand"),
	}
	if pattern {
		prop.Value = o.pattern("value")
		if prop.Kind != PropertyKindInit || prop.Method {
			d.fail(o.path, ErrInvalidField, "object pattern members must be plain properties")
		}
	} else {
		prop.Value = o.expr("value")
		if prop.Kind != PropertyKindInit || prop.Method {
			if _, ok := prop.Value.(*FunctionExpression); !ok && d.err == nil {
				d.fail(o.path+".value", ErrInvalidField, "accessor and method values must be FunctionExpression")
			}
		}
	}
	return prop
}

func (d *decoder) arrow(o object) *ArrowFunctionExpression {
	fn := &ArrowFunctionExpression{
		ID:        o.optIdent("id"),
		Params:    o.patterns("params", false),
		Generator: o.boolean("generator"),
		Async:     o.boolean("async"),
	}
	n, p := o.child("body", false)
	switch body := n.(type) {
	case *BlockStatement:
		fn.Body = body
	case Expression:
		fn.Body = body
		fn.Expression = true
	default:
		d.wrongType(n, p, "BlockStatement or expression")
		return nil
	}
	if fn.Generator {
		d.fail(o.path+".generator", ErrInvalidField, "arrow functions cannot be generators")
	}
	return fn
}

func (d *decoder) templateLiteral(o object) *TemplateLiteral {
	items, p := o.list("quasis")
	tl := &TemplateLiteral{Quasis: make([]*TemplateElement, 0, len(items))}
	for i, item := range items {
		ip := fmt.Sprintf("%s[%d]", p, i)
		n := d.node(item, ip)
		q, ok := n.(*TemplateElement)
		if !ok {
			d.wrongType(n, ip, TypeTemplateElement)
			return nil
		}
		tl.Quasis = append(tl.Quasis, q)
	}
	tl.Expressions = o.exprs("expressions", false)
	if d.err == nil && len(tl.Quasis) != len(tl.Expressions)+1 {
		d.fail(o.path, ErrInvalidField, "template has %d quasis for %d expressions", len(tl.Quasis), len(tl.Expressions))
	}
	return tl
}

func (d *decoder) templateElement(o object) *TemplateElement {
	v, p := o.at("value")
	if !v.Exists() {
		d.fail(p, ErrMissingField, `"value" is required`)
		return nil
	}
	if !v.IsObject() {
		d.fail(p, ErrInvalidField, `"value" must be an object`)
		return nil
	}
	vo := object{d: d, v: v, path: p}
	return &TemplateElement{
		Value: TemplateValue{Raw: vo.str("raw"), Cooked: vo.optStr("cooked")},
		Tail:  o.boolean("tail"),
	}
}

func (d *decoder) taggedTemplate(o object) *TaggedTemplateExpression {
	t := &TaggedTemplateExpression{Tag: o.expr("tag")}
	n, p := o.child("quasi", false)
	q, ok := n.(*TemplateLiteral)
	if !ok {
		d.wrongType(n, p, TypeTemplateLiteral)
		return nil
	}
	t.Quasi = q
	return t
}

// position reads the optional range and loc fields into b.
func (d *decoder) position(v gjson.Result, path string, b *Base) {
	if d.err != nil || b == nil {
		return
	}
	if r := v.Get("range"); r.Exists() && r.Type != gjson.Null {
		arr := r.Array()
		if !r.IsArray() || len(arr) != 2 || arr[0].Type != gjson.Number || arr[1].Type != gjson.Number {
			d.fail(path+".range", ErrInvalidField, "range must be [start, end]")
			return
		}
		b.Range = &Range{int(arr[0].Int()), int(arr[1].Int())}
	}
	if l := v.Get("loc"); l.Exists() && l.Type != gjson.Null {
		start, end := l.Get("start"), l.Get("end")
		if !l.IsObject() || !isLocation(start) || !isLocation(end) {
			d.fail(path+".loc", ErrInvalidField, "loc must have start and end line/column")
			return
		}
		b.Loc = &SourceLocation{
			Start: Location{Line: int(start.Get("line").Int()), Column: int(start.Get("column").Int())},
			End:   Location{Line: int(end.Get("line").Int()), Column: int(end.Get("column").Int())},
		}
	}
}

func isLocation(v gjson.Result) bool {
	return v.IsObject() && v.Get("line").Type == gjson.Number && v.Get("column").Type == gjson.Number
}
