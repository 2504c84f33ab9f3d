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

// JavaScript Tree-sitter Node Types
//
// The converter walks the concrete tree directly rather than through the
// query language; these are the node types it dispatches on.
//
// Reference: https://github.com/tree-sitter/tree-sitter-javascript

const (
	// Top-level nodes
	jsNodeProgram      = "program"
	jsNodeHashBangLine = "hash_bang_line"
	jsNodeComment      = "comment"
	jsNodeHTMLComment  = "html_comment"
	jsNodeError        = "ERROR"

	// Module nodes
	jsNodeImportStatement    = "import_statement"
	jsNodeImportClause       = "import_clause"
	jsNodeNamespaceImport    = "namespace_import"
	jsNodeNamedImports       = "named_imports"
	jsNodeImportSpecifier    = "import_specifier"
	jsNodeImportAttribute    = "import_attribute"
	jsNodeExportStatement    = "export_statement"
	jsNodeExportClause       = "export_clause"
	jsNodeExportSpecifier    = "export_specifier"
	jsNodeNamespaceExport    = "namespace_export"
	jsNodeDecorator          = "decorator"
	jsNodeImport             = "import"
	jsNodeDefault            = "default"
	jsNodeStar               = "*"
	jsNodeStaticGet          = "static get"
	jsNodeKeywordAsync       = "async"
	jsNodeKeywordStatic      = "static"
	jsNodeKeywordGet         = "get"
	jsNodeKeywordSet         = "set"
	jsNodeKeywordAwait       = "await"
	jsNodeSemicolon          = ";"
	jsNodeComma              = ","
	jsNodeOpenBracket        = "["
	jsNodeCloseBracket       = "]"
	jsNodeAssignOperator     = "="
	jsNodeOptionalChainOp    = "?."
	jsNodeTemplateSubst      = "template_substitution"
	jsNodeComputedProperty   = "computed_property_name"
	jsNodeStatementLabel     = "statement_identifier"
	jsNodeElseClause         = "else_clause"
	jsNodeSwitchBody         = "switch_body"
	jsNodeSwitchCase         = "switch_case"
	jsNodeSwitchDefault      = "switch_default"
	jsNodeCatchClause        = "catch_clause"
	jsNodeFinallyClause      = "finally_clause"
	jsNodeClassHeritage      = "class_heritage"
	jsNodeClassBody          = "class_body"
	jsNodeClassStaticBlock   = "class_static_block"
	jsNodeFieldDefinition    = "field_definition"
	jsNodeMethodDefinition   = "method_definition"
	jsNodeFormalParameters   = "formal_parameters"
	jsNodeArguments          = "arguments"
	jsNodeVariableDeclarator = "variable_declarator"

	// Statement nodes
	jsNodeExpressionStatement = "expression_statement"
	jsNodeVariableDeclaration = "variable_declaration"
	jsNodeLexicalDeclaration  = "lexical_declaration"
	jsNodeFunctionDeclaration = "function_declaration"
	jsNodeGeneratorFuncDecl   = "generator_function_declaration"
	jsNodeClassDeclaration    = "class_declaration"
	jsNodeStatementBlock      = "statement_block"
	jsNodeEmptyStatement      = "empty_statement"
	jsNodeDebuggerStatement   = "debugger_statement"
	jsNodeIfStatement         = "if_statement"
	jsNodeSwitchStatement     = "switch_statement"
	jsNodeForStatement        = "for_statement"
	jsNodeForInStatement      = "for_in_statement"
	jsNodeWhileStatement      = "while_statement"
	jsNodeDoStatement         = "do_statement"
	jsNodeTryStatement        = "try_statement"
	jsNodeWithStatement       = "with_statement"
	jsNodeBreakStatement      = "break_statement"
	jsNodeContinueStatement   = "continue_statement"
	jsNodeReturnStatement     = "return_statement"
	jsNodeThrowStatement      = "throw_statement"
	jsNodeLabeledStatement    = "labeled_statement"

	// Expression nodes
	jsNodeParenthesized        = "parenthesized_expression"
	jsNodeIdentifier           = "identifier"
	jsNodePropertyIdentifier   = "property_identifier"
	jsNodeShorthandProperty    = "shorthand_property_identifier"
	jsNodeShorthandPattern     = "shorthand_property_identifier_pattern"
	jsNodePrivatePropertyIdent = "private_property_identifier"
	jsNodeUndefined            = "undefined"
	jsNodeThis                 = "this"
	jsNodeSuper                = "super"
	jsNodeNumber               = "number"
	jsNodeString               = "string"
	jsNodeTemplateString       = "template_string"
	jsNodeRegex                = "regex"
	jsNodeTrue                 = "true"
	jsNodeFalse                = "false"
	jsNodeNull                 = "null"
	jsNodeObject               = "object"
	jsNodeArray                = "array"
	jsNodePair                 = "pair"
	jsNodeSpreadElement        = "spread_element"
	jsNodeFunctionExpression   = "function_expression"
	jsNodeFunction             = "function"
	jsNodeGeneratorFunction    = "generator_function"
	jsNodeArrowFunction        = "arrow_function"
	jsNodeClass                = "class"
	jsNodeCallExpression       = "call_expression"
	jsNodeNewExpression        = "new_expression"
	jsNodeMemberExpression     = "member_expression"
	jsNodeSubscriptExpression  = "subscript_expression"
	jsNodeAssignmentExpression = "assignment_expression"
	jsNodeAugmentedAssignment  = "augmented_assignment_expression"
	jsNodeUnaryExpression      = "unary_expression"
	jsNodeUpdateExpression     = "update_expression"
	jsNodeBinaryExpression     = "binary_expression"
	jsNodeTernaryExpression    = "ternary_expression"
	jsNodeSequenceExpression   = "sequence_expression"
	jsNodeYieldExpression      = "yield_expression"
	jsNodeAwaitExpression      = "await_expression"
	jsNodeMetaProperty         = "meta_property"
	jsNodeOptionalChain        = "optional_chain"

	// Pattern nodes
	jsNodeObjectPattern           = "object_pattern"
	jsNodeArrayPattern            = "array_pattern"
	jsNodePairPattern             = "pair_pattern"
	jsNodeAssignmentPattern       = "assignment_pattern"
	jsNodeObjectAssignmentPattern = "object_assignment_pattern"
	jsNodeRestPattern             = "rest_pattern"

	// JSX and template-language nodes, rejected as unsupported
	jsNodeJSXElement      = "jsx_element"
	jsNodeJSXSelfClosing  = "jsx_self_closing_element"
	jsNodeJSXFragment     = "jsx_fragment"
	jsNodeGlimmerTemplate = "glimmer_template"
)
