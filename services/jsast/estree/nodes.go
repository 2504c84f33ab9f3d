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

// =============================================================================
// Interfaces
// =============================================================================

// Node is implemented by every ESTree node variant in this package.
//
// Description:
//
//	The set of implementations is closed: category membership is expressed
//	through unexported marker methods, so a value of type Statement,
//	Expression or Pattern is always one of the structs declared below.
type Node interface {
	// Type returns the ESTree "type" tag, e.g. "Identifier".
	Type() string

	// Position returns the node's optional source position.
	Position() *Base
}

// Statement is a node allowed in a statement list.
type Statement interface {
	Node
	aStatement()
}

// Expression is a node allowed in expression position.
type Expression interface {
	Node
	aExpression()
}

// Pattern is a node allowed as a binding or assignment target.
type Pattern interface {
	Node
	aPattern()
}

// ModuleSpecifier is one entry of an ImportDeclaration's specifier list.
type ModuleSpecifier interface {
	Node
	aModuleSpecifier()
}

// =============================================================================
// Positions
// =============================================================================

// Range is a [start, end) offset pair in UTF-16 code units.
type Range [2]int

// Location is a line/column pair. Lines are 1-based, columns 0-based UTF-16.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation is the start and end location of a node.
type SourceLocation struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

// Base carries the optional position metadata shared by all nodes.
// It is embedded last in every node so that positions trail the node
// fields in the serialized form.
type Base struct {
	Range *Range          `json:"range,omitempty"`
	Loc   *SourceLocation `json:"loc,omitempty"`
}

// Position implements Node.
func (b *Base) Position() *Base { return b }

// HasPosition reports whether range or loc information is attached.
func (b *Base) HasPosition() bool { return b.Range != nil || b.Loc != nil }

// =============================================================================
// Program
// =============================================================================

// Source types.
const (
	SourceTypeScript = "script"
	SourceTypeModule = "module"
)

// Program is the root of every tree.
type Program struct {
	Body       []Statement `json:"body"`
	SourceType string      `json:"sourceType"`
	Base
}

// =============================================================================
// Identifiers and literals
// =============================================================================

// Identifier is a name reference or binding.
type Identifier struct {
	Name string `json:"name"`
	Base
}

// Literal is a string, number, boolean, null or regular expression literal.
// See literal.go for the value representation.
type Literal struct {
	Kind        LiteralKind `json:"-"`
	StringValue string      `json:"-"`
	NumberValue float64     `json:"-"`
	BoolValue   bool        `json:"-"`
	Raw         string      `json:"raw"`
	Regex       *RegExp     `json:"regex,omitempty"`
	Base
}

// RegExp holds the pattern and flags of a regular expression literal.
type RegExp struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// =============================================================================
// Statements
// =============================================================================

// ExpressionStatement is an expression evaluated for its side effects.
// Directive holds the raw text of a directive prologue entry such as "use strict".
type ExpressionStatement struct {
	Expression Expression `json:"expression"`
	Directive  string     `json:"directive,omitempty"`
	Base
}

type BlockStatement struct {
	Body []Statement `json:"body"`
	Base
}

type EmptyStatement struct {
	Base
}

type DebuggerStatement struct {
	Base
}

type WithStatement struct {
	Object Expression `json:"object"`
	Body   Statement  `json:"body"`
	Base
}

type ReturnStatement struct {
	Argument Expression `json:"argument"`
	Base
}

type LabeledStatement struct {
	Label *Identifier `json:"label"`
	Body  Statement   `json:"body"`
	Base
}

type BreakStatement struct {
	Label *Identifier `json:"label"`
	Base
}

type ContinueStatement struct {
	Label *Identifier `json:"label"`
	Base
}

type IfStatement struct {
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
	Base
}

type SwitchStatement struct {
	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
	Base
}

// SwitchCase is a case clause; Test is nil for the default clause.
type SwitchCase struct {
	Test       Expression  `json:"test"`
	Consequent []Statement `json:"consequent"`
	Base
}

type ThrowStatement struct {
	Argument Expression `json:"argument"`
	Base
}

type TryStatement struct {
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler"`
	Finalizer *BlockStatement `json:"finalizer"`
	Base
}

// CatchClause is the catch block of a try statement. Param is nil for
// an optional catch binding.
type CatchClause struct {
	Param Pattern         `json:"param"`
	Body  *BlockStatement `json:"body"`
	Base
}

type WhileStatement struct {
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
	Base
}

type DoWhileStatement struct {
	Body Statement  `json:"body"`
	Test Expression `json:"test"`
	Base
}

// ForStatement is a C-style for loop. Init is a *VariableDeclaration,
// an Expression, or nil.
type ForStatement struct {
	Init   Node       `json:"init"`
	Test   Expression `json:"test"`
	Update Expression `json:"update"`
	Body   Statement  `json:"body"`
	Base
}

// ForInStatement is a for-in loop. Left is a *VariableDeclaration or a Pattern.
type ForInStatement struct {
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
	Base
}

// ForOfStatement is a for-of loop. Left is a *VariableDeclaration or a Pattern.
type ForOfStatement struct {
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
	Base
}

// =============================================================================
// Declarations
// =============================================================================

type FunctionDeclaration struct {
	ID         *Identifier     `json:"id"`
	Params     []Pattern       `json:"params"`
	Body       *BlockStatement `json:"body"`
	Generator  bool            `json:"generator"`
	Expression bool            `json:"expression"`
	Async      bool            `json:"async"`
	Base
}

// Variable declaration kinds.
const (
	KindVar   = "var"
	KindLet   = "let"
	KindConst = "const"
)

type VariableDeclaration struct {
	Declarations []*VariableDeclarator `json:"declarations"`
	Kind         string                `json:"kind"`
	Base
}

type VariableDeclarator struct {
	ID   Pattern    `json:"id"`
	Init Expression `json:"init"`
	Base
}

type ClassDeclaration struct {
	ID         *Identifier `json:"id"`
	SuperClass Expression  `json:"superClass"`
	Body       *ClassBody  `json:"body"`
	Base
}

type ClassBody struct {
	Body []*MethodDefinition `json:"body"`
	Base
}

// Method definition kinds.
const (
	MethodKindConstructor = "constructor"
	MethodKindMethod      = "method"
	MethodKindGet         = "get"
	MethodKindSet         = "set"
)

type MethodDefinition struct {
	Key      Expression          `json:"key"`
	Computed bool                `json:"computed"`
	Value    *FunctionExpression `json:"value"`
	Kind     string              `json:"kind"`
	Static   bool                `json:"static"`
	Base
}

// =============================================================================
// Modules
// =============================================================================

type ImportDeclaration struct {
	Specifiers []ModuleSpecifier `json:"specifiers"`
	Source     *Literal          `json:"source"`
	Base
}

type ImportSpecifier struct {
	Local    *Identifier `json:"local"`
	Imported *Identifier `json:"imported"`
	Base
}

type ImportDefaultSpecifier struct {
	Local *Identifier `json:"local"`
	Base
}

type ImportNamespaceSpecifier struct {
	Local *Identifier `json:"local"`
	Base
}

type ExportNamedDeclaration struct {
	Declaration Statement          `json:"declaration"`
	Specifiers  []*ExportSpecifier `json:"specifiers"`
	Source      *Literal           `json:"source"`
	Base
}

type ExportSpecifier struct {
	Local    *Identifier `json:"local"`
	Exported *Identifier `json:"exported"`
	Base
}

// ExportDefaultDeclaration exports a *FunctionDeclaration, a
// *ClassDeclaration (both possibly anonymous) or an Expression.
type ExportDefaultDeclaration struct {
	Declaration Node `json:"declaration"`
	Base
}

type ExportAllDeclaration struct {
	Source *Literal `json:"source"`
	Base
}

// =============================================================================
// Expressions
// =============================================================================

type ThisExpression struct {
	Base
}

type Super struct {
	Base
}

// ArrayExpression elements may be nil for holes.
type ArrayExpression struct {
	Elements []Expression `json:"elements"`
	Base
}

// ObjectExpression properties are *Property or *SpreadElement.
type ObjectExpression struct {
	Properties []Node `json:"properties"`
	Base
}

// Property kinds.
const (
	PropertyKindInit = "init"
	PropertyKindGet  = "get"
	PropertyKindSet  = "set"
)

// Property is an object literal member or an object pattern member.
// Value is an Expression inside an ObjectExpression and a Pattern inside
// an ObjectPattern.
type Property struct {
	Key       Expression `json:"key"`
	Computed  bool       `json:"computed"`
	Value     Node       `json:"value"`
	Kind      string     `json:"kind"`
	Method    bool       `json:"method"`
	Shorthand bool       `json:"shorthand"`
	Base
}

type FunctionExpression struct {
	ID         *Identifier     `json:"id"`
	Params     []Pattern       `json:"params"`
	Body       *BlockStatement `json:"body"`
	Generator  bool            `json:"generator"`
	Expression bool            `json:"expression"`
	Async      bool            `json:"async"`
	Base
}

// ArrowFunctionExpression body is a *BlockStatement or, when Expression is
// set, an Expression.
type ArrowFunctionExpression struct {
	ID         *Identifier `json:"id"`
	Params     []Pattern   `json:"params"`
	Body       Node        `json:"body"`
	Generator  bool        `json:"generator"`
	Expression bool        `json:"expression"`
	Async      bool        `json:"async"`
	Base
}

type ClassExpression struct {
	ID         *Identifier `json:"id"`
	SuperClass Expression  `json:"superClass"`
	Body       *ClassBody  `json:"body"`
	Base
}

type TemplateLiteral struct {
	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expression       `json:"expressions"`
	Base
}

// TemplateValue is the raw and cooked text of a template chunk.
type TemplateValue struct {
	Raw    string `json:"raw"`
	Cooked string `json:"cooked"`
}

type TemplateElement struct {
	Value TemplateValue `json:"value"`
	Tail  bool          `json:"tail"`
	Base
}

type TaggedTemplateExpression struct {
	Tag   Expression       `json:"tag"`
	Quasi *TemplateLiteral `json:"quasi"`
	Base
}

type UnaryExpression struct {
	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
	Prefix   bool       `json:"prefix"`
	Base
}

type UpdateExpression struct {
	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
	Prefix   bool       `json:"prefix"`
	Base
}

type BinaryExpression struct {
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
	Base
}

type LogicalExpression struct {
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
	Base
}

type AssignmentExpression struct {
	Operator string     `json:"operator"`
	Left     Pattern    `json:"left"`
	Right    Expression `json:"right"`
	Base
}

type ConditionalExpression struct {
	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
	Base
}

// CallExpression arguments may contain *SpreadElement.
type CallExpression struct {
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Base
}

type NewExpression struct {
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Base
}

type MemberExpression struct {
	Computed bool       `json:"computed"`
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Base
}

type SequenceExpression struct {
	Expressions []Expression `json:"expressions"`
	Base
}

type YieldExpression struct {
	Argument Expression `json:"argument"`
	Delegate bool       `json:"delegate"`
	Base
}

type AwaitExpression struct {
	Argument Expression `json:"argument"`
	Base
}

type SpreadElement struct {
	Argument Expression `json:"argument"`
	Base
}

// MetaProperty is new.target.
type MetaProperty struct {
	Meta     *Identifier `json:"meta"`
	Property *Identifier `json:"property"`
	Base
}

// =============================================================================
// Patterns
// =============================================================================

// ObjectPattern properties are *Property (with Pattern values) or *RestElement.
type ObjectPattern struct {
	Properties []Node `json:"properties"`
	Base
}

// ArrayPattern elements may be nil for holes.
type ArrayPattern struct {
	Elements []Pattern `json:"elements"`
	Base
}

type RestElement struct {
	Argument Pattern `json:"argument"`
	Base
}

type AssignmentPattern struct {
	Left  Pattern    `json:"left"`
	Right Expression `json:"right"`
	Base
}
