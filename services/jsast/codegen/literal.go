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
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// quote renders s as a single-quoted JavaScript string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		case 0:
			// \0 followed by a digit would read as an octal escape.
			if i < len(s) && s[i] >= '0' && s[i] <= '9' {
				sb.WriteString(`\x00`)
			} else {
				sb.WriteString(`\0`)
			}
		case utf8.RuneError:
			if u, ok := estree.LoneSurrogate(s, i-size); ok && size == 1 {
				fmt.Fprintf(&sb, `\u%04X`, u)
				i += 2
				continue
			}
			sb.WriteRune(r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// quoteDirective wraps a directive's raw text. The text is reproduced
// verbatim so the directive keeps its exact spelling; double quotes are used
// only when the text holds an unescaped single quote.
func quoteDirective(raw string) string {
	escaped := false
	for i := 0; i < len(raw); i++ {
		switch {
		case escaped:
			escaped = false
		case raw[i] == '\\':
			escaped = true
		case raw[i] == '\'':
			return `"` + raw + `"`
		}
	}
	return "'" + raw + "'"
}

// number renders a non-negative number.
func number(f float64) string {
	if math.IsInf(f, 1) {
		return "1e+400"
	}
	return estree.FormatNumber(f)
}

func (p *printer) literal(lit *estree.Literal) string {
	switch lit.Kind {
	case estree.LiteralString:
		return quote(lit.StringValue)
	case estree.LiteralNumber:
		f := lit.NumberValue
		if math.IsNaN(f) {
			p.fail(lit, "NaN has no literal form")
		}
		if isNegative(f) {
			return "-" + number(-f)
		}
		return number(f)
	case estree.LiteralBoolean:
		if lit.BoolValue {
			return "true"
		}
		return "false"
	case estree.LiteralNull:
		return "null"
	case estree.LiteralRegExp:
		if lit.Regex == nil {
			p.fail(lit, "missing regex")
		}
		return "/" + lit.Regex.Pattern + "/" + lit.Regex.Flags
	}
	p.fail(lit, "unknown literal kind %v", lit.Kind)
	return ""
}
