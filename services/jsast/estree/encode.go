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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultIndent matches JSON.stringify(tree, null, 2).
const DefaultIndent = "  "

// Encode serializes a tree as indented JSON.
//
// Description:
//
//	Every object starts with its "type" tag followed by the node fields in
//	declaration order; position fields trail when present. Absent optional
//	children encode as null, never omitted. HTML characters are not escaped.
//
// Inputs:
//
//	prog   - The tree to encode. Must not be nil.
//	indent - Indent unit; empty produces compact output.
//
// Outputs:
//
//	string - The serialized tree, without a trailing newline.
//	error  - Non-nil if a node could not be encoded.
func Encode(prog *Program, indent string) (string, error) {
	if prog == nil {
		return "", fmt.Errorf("encode: %w: nil program", ErrInvalidTree)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(prog); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// marshalNoEscape is json.Marshal without HTML escaping.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// withType splices the type tag in front of an encoded object body.
func withType(typ string, body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(body) + len(typ) + 12)
	buf.WriteString(`{"type":"`)
	buf.WriteString(typ)
	buf.WriteByte('"')
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes()
}

func (n *Program) MarshalJSON() ([]byte, error) {
	type plain Program
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type plain ExpressionStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	type plain BlockStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *EmptyStatement) MarshalJSON() ([]byte, error) {
	type plain EmptyStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *DebuggerStatement) MarshalJSON() ([]byte, error) {
	type plain DebuggerStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *WithStatement) MarshalJSON() ([]byte, error) {
	type plain WithStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	type plain ReturnStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *LabeledStatement) MarshalJSON() ([]byte, error) {
	type plain LabeledStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *BreakStatement) MarshalJSON() ([]byte, error) {
	type plain BreakStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ContinueStatement) MarshalJSON() ([]byte, error) {
	type plain ContinueStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *IfStatement) MarshalJSON() ([]byte, error) {
	type plain IfStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *SwitchStatement) MarshalJSON() ([]byte, error) {
	type plain SwitchStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ThrowStatement) MarshalJSON() ([]byte, error) {
	type plain ThrowStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *TryStatement) MarshalJSON() ([]byte, error) {
	type plain TryStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *WhileStatement) MarshalJSON() ([]byte, error) {
	type plain WhileStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *DoWhileStatement) MarshalJSON() ([]byte, error) {
	type plain DoWhileStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ForStatement) MarshalJSON() ([]byte, error) {
	type plain ForStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ForInStatement) MarshalJSON() ([]byte, error) {
	type plain ForInStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ForOfStatement) MarshalJSON() ([]byte, error) {
	type plain ForOfStatement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	type plain FunctionDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type plain VariableDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ClassDeclaration) MarshalJSON() ([]byte, error) {
	type plain ClassDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ImportDeclaration) MarshalJSON() ([]byte, error) {
	type plain ImportDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ExportNamedDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportNamedDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ExportDefaultDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportDefaultDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ExportAllDeclaration) MarshalJSON() ([]byte, error) {
	type plain ExportAllDeclaration
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *SwitchCase) MarshalJSON() ([]byte, error) {
	type plain SwitchCase
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *CatchClause) MarshalJSON() ([]byte, error) {
	type plain CatchClause
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *VariableDeclarator) MarshalJSON() ([]byte, error) {
	type plain VariableDeclarator
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ClassBody) MarshalJSON() ([]byte, error) {
	type plain ClassBody
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *MethodDefinition) MarshalJSON() ([]byte, error) {
	type plain MethodDefinition
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ImportSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportSpecifier
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ImportDefaultSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportDefaultSpecifier
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ImportNamespaceSpecifier) MarshalJSON() ([]byte, error) {
	type plain ImportNamespaceSpecifier
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ExportSpecifier) MarshalJSON() ([]byte, error) {
	type plain ExportSpecifier
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	type plain Identifier
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ThisExpression) MarshalJSON() ([]byte, error) {
	type plain ThisExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *Super) MarshalJSON() ([]byte, error) {
	type plain Super
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ArrayExpression) MarshalJSON() ([]byte, error) {
	type plain ArrayExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ObjectExpression) MarshalJSON() ([]byte, error) {
	type plain ObjectExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *FunctionExpression) MarshalJSON() ([]byte, error) {
	type plain FunctionExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ArrowFunctionExpression) MarshalJSON() ([]byte, error) {
	type plain ArrowFunctionExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ClassExpression) MarshalJSON() ([]byte, error) {
	type plain ClassExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *TemplateLiteral) MarshalJSON() ([]byte, error) {
	type plain TemplateLiteral
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *TaggedTemplateExpression) MarshalJSON() ([]byte, error) {
	type plain TaggedTemplateExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	type plain UnaryExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *UpdateExpression) MarshalJSON() ([]byte, error) {
	type plain UpdateExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	type plain BinaryExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *LogicalExpression) MarshalJSON() ([]byte, error) {
	type plain LogicalExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *AssignmentExpression) MarshalJSON() ([]byte, error) {
	type plain AssignmentExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ConditionalExpression) MarshalJSON() ([]byte, error) {
	type plain ConditionalExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	type plain CallExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *NewExpression) MarshalJSON() ([]byte, error) {
	type plain NewExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	type plain MemberExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *SequenceExpression) MarshalJSON() ([]byte, error) {
	type plain SequenceExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *YieldExpression) MarshalJSON() ([]byte, error) {
	type plain YieldExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *AwaitExpression) MarshalJSON() ([]byte, error) {
	type plain AwaitExpression
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *SpreadElement) MarshalJSON() ([]byte, error) {
	type plain SpreadElement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *MetaProperty) MarshalJSON() ([]byte, error) {
	type plain MetaProperty
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *Property) MarshalJSON() ([]byte, error) {
	type plain Property
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *TemplateElement) MarshalJSON() ([]byte, error) {
	type plain TemplateElement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ObjectPattern) MarshalJSON() ([]byte, error) {
	type plain ObjectPattern
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *ArrayPattern) MarshalJSON() ([]byte, error) {
	type plain ArrayPattern
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *RestElement) MarshalJSON() ([]byte, error) {
	type plain RestElement
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}

func (n *AssignmentPattern) MarshalJSON() ([]byte, error) {
	type plain AssignmentPattern
	b, err := marshalNoEscape((*plain)(n))
	if err != nil {
		return nil, err
	}
	return withType(n.Type(), b), nil
}
