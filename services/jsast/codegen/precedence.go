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
	"math"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// Expression precedence, loosest first. An expression is parenthesized when
// its own precedence is lower than the precedence its position requires.
const (
	precSequence = iota
	precAssignment
	precConditional
	precLogicalOR
	precLogicalAND
	precBitwiseOR
	precBitwiseXOR
	precBitwiseAND
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	_
	precCall
	precNew
	precTaggedTemplate
	precMember
	precPrimary
)

// Arrow functions and yield share the assignment level; the conditional
// operator sits above them.
const (
	precArrow = precConditional
	precYield = precAssignment
	precAwait = precUnary
)

var binaryPrecedence = map[string]int{
	"??":         precLogicalOR,
	"||":         precLogicalOR,
	"&&":         precLogicalAND,
	"|":          precBitwiseOR,
	"^":          precBitwiseXOR,
	"&":          precBitwiseAND,
	"==":         precEquality,
	"!=":         precEquality,
	"===":        precEquality,
	"!==":        precEquality,
	"<":          precRelational,
	">":          precRelational,
	"<=":         precRelational,
	">=":         precRelational,
	"in":         precRelational,
	"instanceof": precRelational,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdditive,
	"-":          precAdditive,
	"*":          precMultiplicative,
	"/":          precMultiplicative,
	"%":          precMultiplicative,
	"**":         precExponent,
}

// precedenceOf returns the binding strength of e as rendered.
func precedenceOf(e estree.Expression) int {
	switch e := e.(type) {
	case *estree.SequenceExpression:
		return precSequence
	case *estree.AssignmentExpression:
		return precAssignment
	case *estree.YieldExpression:
		return precYield
	case *estree.ArrowFunctionExpression:
		return precArrow
	case *estree.ConditionalExpression:
		return precConditional
	case *estree.LogicalExpression:
		return binaryPrecedence[e.Operator]
	case *estree.BinaryExpression:
		return binaryPrecedence[e.Operator]
	case *estree.UnaryExpression:
		return precUnary
	case *estree.AwaitExpression:
		return precAwait
	case *estree.UpdateExpression:
		if e.Prefix {
			return precUnary
		}
		return precPostfix
	case *estree.CallExpression:
		return precCall
	case *estree.NewExpression:
		return precNew
	case *estree.TaggedTemplateExpression:
		return precTaggedTemplate
	case *estree.MemberExpression, *estree.MetaProperty:
		return precMember
	case *estree.Literal:
		if e.Kind == estree.LiteralNumber && isNegative(e.NumberValue) {
			return precUnary
		}
		return precPrimary
	case *estree.SpreadElement:
		return precAssignment
	}
	return precPrimary
}

func isNegative(f float64) bool {
	return f < 0 || (f == 0 && math.Signbit(f))
}
