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

// Node type tags.
const (
	TypeProgram                  = "Program"
	TypeExpressionStatement      = "ExpressionStatement"
	TypeBlockStatement           = "BlockStatement"
	TypeEmptyStatement           = "EmptyStatement"
	TypeDebuggerStatement        = "DebuggerStatement"
	TypeWithStatement            = "WithStatement"
	TypeReturnStatement          = "ReturnStatement"
	TypeLabeledStatement         = "LabeledStatement"
	TypeBreakStatement           = "BreakStatement"
	TypeContinueStatement        = "ContinueStatement"
	TypeIfStatement              = "IfStatement"
	TypeSwitchStatement          = "SwitchStatement"
	TypeThrowStatement           = "ThrowStatement"
	TypeTryStatement             = "TryStatement"
	TypeWhileStatement           = "WhileStatement"
	TypeDoWhileStatement         = "DoWhileStatement"
	TypeForStatement             = "ForStatement"
	TypeForInStatement           = "ForInStatement"
	TypeForOfStatement           = "ForOfStatement"
	TypeFunctionDeclaration      = "FunctionDeclaration"
	TypeVariableDeclaration      = "VariableDeclaration"
	TypeClassDeclaration         = "ClassDeclaration"
	TypeImportDeclaration        = "ImportDeclaration"
	TypeExportNamedDeclaration   = "ExportNamedDeclaration"
	TypeExportDefaultDeclaration = "ExportDefaultDeclaration"
	TypeExportAllDeclaration     = "ExportAllDeclaration"
	TypeSwitchCase               = "SwitchCase"
	TypeCatchClause              = "CatchClause"
	TypeVariableDeclarator       = "VariableDeclarator"
	TypeClassBody                = "ClassBody"
	TypeMethodDefinition         = "MethodDefinition"
	TypeImportSpecifier          = "ImportSpecifier"
	TypeImportDefaultSpecifier   = "ImportDefaultSpecifier"
	TypeImportNamespaceSpecifier = "ImportNamespaceSpecifier"
	TypeExportSpecifier          = "ExportSpecifier"
	TypeIdentifier               = "Identifier"
	TypeLiteral                  = "Literal"
	TypeThisExpression           = "ThisExpression"
	TypeSuper                    = "Super"
	TypeArrayExpression          = "ArrayExpression"
	TypeObjectExpression         = "ObjectExpression"
	TypeFunctionExpression       = "FunctionExpression"
	TypeArrowFunctionExpression  = "ArrowFunctionExpression"
	TypeClassExpression          = "ClassExpression"
	TypeTemplateLiteral          = "TemplateLiteral"
	TypeTaggedTemplateExpression = "TaggedTemplateExpression"
	TypeUnaryExpression          = "UnaryExpression"
	TypeUpdateExpression         = "UpdateExpression"
	TypeBinaryExpression         = "BinaryExpression"
	TypeLogicalExpression        = "LogicalExpression"
	TypeAssignmentExpression     = "AssignmentExpression"
	TypeConditionalExpression    = "ConditionalExpression"
	TypeCallExpression           = "CallExpression"
	TypeNewExpression            = "NewExpression"
	TypeMemberExpression         = "MemberExpression"
	TypeSequenceExpression       = "SequenceExpression"
	TypeYieldExpression          = "YieldExpression"
	TypeAwaitExpression          = "AwaitExpression"
	TypeSpreadElement            = "SpreadElement"
	TypeMetaProperty             = "MetaProperty"
	TypeProperty                 = "Property"
	TypeTemplateElement          = "TemplateElement"
	TypeObjectPattern            = "ObjectPattern"
	TypeArrayPattern             = "ArrayPattern"
	TypeRestElement              = "RestElement"
	TypeAssignmentPattern        = "AssignmentPattern"
)

func (*Program) Type() string { return TypeProgram }
func (*ExpressionStatement) Type() string { return TypeExpressionStatement }
func (*BlockStatement) Type() string { return TypeBlockStatement }
func (*EmptyStatement) Type() string { return TypeEmptyStatement }
func (*DebuggerStatement) Type() string { return TypeDebuggerStatement }
func (*WithStatement) Type() string { return TypeWithStatement }
func (*ReturnStatement) Type() string { return TypeReturnStatement }
func (*LabeledStatement) Type() string { return TypeLabeledStatement }
func (*BreakStatement) Type() string { return TypeBreakStatement }
func (*ContinueStatement) Type() string { return TypeContinueStatement }
func (*IfStatement) Type() string { return TypeIfStatement }
func (*SwitchStatement) Type() string { return TypeSwitchStatement }
func (*ThrowStatement) Type() string { return TypeThrowStatement }
func (*TryStatement) Type() string { return TypeTryStatement }
func (*WhileStatement) Type() string { return TypeWhileStatement }
func (*DoWhileStatement) Type() string { return TypeDoWhileStatement }
func (*ForStatement) Type() string { return TypeForStatement }
func (*ForInStatement) Type() string { return TypeForInStatement }
func (*ForOfStatement) Type() string { return TypeForOfStatement }
func (*FunctionDeclaration) Type() string { return TypeFunctionDeclaration }
func (*VariableDeclaration) Type() string { return TypeVariableDeclaration }
func (*ClassDeclaration) Type() string { return TypeClassDeclaration }
func (*ImportDeclaration) Type() string { return TypeImportDeclaration }
func (*ExportNamedDeclaration) Type() string { return TypeExportNamedDeclaration }
func (*ExportDefaultDeclaration) Type() string { return TypeExportDefaultDeclaration }
func (*ExportAllDeclaration) Type() string { return TypeExportAllDeclaration }
func (*SwitchCase) Type() string { return TypeSwitchCase }
func (*CatchClause) Type() string { return TypeCatchClause }
func (*VariableDeclarator) Type() string { return TypeVariableDeclarator }
func (*ClassBody) Type() string { return TypeClassBody }
func (*MethodDefinition) Type() string { return TypeMethodDefinition }
func (*ImportSpecifier) Type() string { return TypeImportSpecifier }
func (*ImportDefaultSpecifier) Type() string { return TypeImportDefaultSpecifier }
func (*ImportNamespaceSpecifier) Type() string { return TypeImportNamespaceSpecifier }
func (*ExportSpecifier) Type() string { return TypeExportSpecifier }
func (*Identifier) Type() string { return TypeIdentifier }
func (*Literal) Type() string { return TypeLiteral }
func (*ThisExpression) Type() string { return TypeThisExpression }
func (*Super) Type() string { return TypeSuper }
func (*ArrayExpression) Type() string { return TypeArrayExpression }
func (*ObjectExpression) Type() string { return TypeObjectExpression }
func (*FunctionExpression) Type() string { return TypeFunctionExpression }
func (*ArrowFunctionExpression) Type() string { return TypeArrowFunctionExpression }
func (*ClassExpression) Type() string { return TypeClassExpression }
func (*TemplateLiteral) Type() string { return TypeTemplateLiteral }
func (*TaggedTemplateExpression) Type() string { return TypeTaggedTemplateExpression }
func (*UnaryExpression) Type() string { return TypeUnaryExpression }
func (*UpdateExpression) Type() string { return TypeUpdateExpression }
func (*BinaryExpression) Type() string { return TypeBinaryExpression }
func (*LogicalExpression) Type() string { return TypeLogicalExpression }
func (*AssignmentExpression) Type() string { return TypeAssignmentExpression }
func (*ConditionalExpression) Type() string { return TypeConditionalExpression }
func (*CallExpression) Type() string { return TypeCallExpression }
func (*NewExpression) Type() string { return TypeNewExpression }
func (*MemberExpression) Type() string { return TypeMemberExpression }
func (*SequenceExpression) Type() string { return TypeSequenceExpression }
func (*YieldExpression) Type() string { return TypeYieldExpression }
func (*AwaitExpression) Type() string { return TypeAwaitExpression }
func (*SpreadElement) Type() string { return TypeSpreadElement }
func (*MetaProperty) Type() string { return TypeMetaProperty }
func (*Property) Type() string { return TypeProperty }
func (*TemplateElement) Type() string { return TypeTemplateElement }
func (*ObjectPattern) Type() string { return TypeObjectPattern }
func (*ArrayPattern) Type() string { return TypeArrayPattern }
func (*RestElement) Type() string { return TypeRestElement }
func (*AssignmentPattern) Type() string { return TypeAssignmentPattern }

func (*ExpressionStatement) aStatement() {}
func (*BlockStatement) aStatement() {}
func (*EmptyStatement) aStatement() {}
func (*DebuggerStatement) aStatement() {}
func (*WithStatement) aStatement() {}
func (*ReturnStatement) aStatement() {}
func (*LabeledStatement) aStatement() {}
func (*BreakStatement) aStatement() {}
func (*ContinueStatement) aStatement() {}
func (*IfStatement) aStatement() {}
func (*SwitchStatement) aStatement() {}
func (*ThrowStatement) aStatement() {}
func (*TryStatement) aStatement() {}
func (*WhileStatement) aStatement() {}
func (*DoWhileStatement) aStatement() {}
func (*ForStatement) aStatement() {}
func (*ForInStatement) aStatement() {}
func (*ForOfStatement) aStatement() {}
func (*FunctionDeclaration) aStatement() {}
func (*VariableDeclaration) aStatement() {}
func (*ClassDeclaration) aStatement() {}
func (*ImportDeclaration) aStatement() {}
func (*ExportNamedDeclaration) aStatement() {}
func (*ExportDefaultDeclaration) aStatement() {}
func (*ExportAllDeclaration) aStatement() {}

func (*Identifier) aExpression() {}
func (*Literal) aExpression() {}
func (*ThisExpression) aExpression() {}
func (*Super) aExpression() {}
func (*ArrayExpression) aExpression() {}
func (*ObjectExpression) aExpression() {}
func (*FunctionExpression) aExpression() {}
func (*ArrowFunctionExpression) aExpression() {}
func (*ClassExpression) aExpression() {}
func (*TemplateLiteral) aExpression() {}
func (*TaggedTemplateExpression) aExpression() {}
func (*UnaryExpression) aExpression() {}
func (*UpdateExpression) aExpression() {}
func (*BinaryExpression) aExpression() {}
func (*LogicalExpression) aExpression() {}
func (*AssignmentExpression) aExpression() {}
func (*ConditionalExpression) aExpression() {}
func (*CallExpression) aExpression() {}
func (*NewExpression) aExpression() {}
func (*MemberExpression) aExpression() {}
func (*SequenceExpression) aExpression() {}
func (*YieldExpression) aExpression() {}
func (*AwaitExpression) aExpression() {}
func (*SpreadElement) aExpression() {}
func (*MetaProperty) aExpression() {}

func (*Identifier) aPattern() {}
func (*MemberExpression) aPattern() {}
func (*ObjectPattern) aPattern() {}
func (*ArrayPattern) aPattern() {}
func (*RestElement) aPattern() {}
func (*AssignmentPattern) aPattern() {}

func (*ImportSpecifier) aModuleSpecifier() {}
func (*ImportDefaultSpecifier) aModuleSpecifier() {}
func (*ImportNamespaceSpecifier) aModuleSpecifier() {}
