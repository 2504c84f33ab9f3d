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
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// cookString resolves the escape sequences of a string or template body.
//
// Values are built as UTF-16 so that escaped surrogate pairs ("\uD83D\uDE00")
// combine into one code point. Lone surrogates keep the three-byte form
// described in estree.AppendUTF16. Template bodies normalize CR and CRLF to LF and
// do not accept legacy octal escapes.
func cookString(body string, template bool) string {
	if !strings.ContainsAny(body, "\\\r") {
		return body
	}

	units := make([]uint16, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c == '\r' && template {
			units = append(units, '\n')
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
			continue
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			units = utf16.AppendRune(units, r)
			i += size
			continue
		}

		i++
		if i >= len(body) {
			break
		}
		c = body[i]
		switch c {
		case 'n':
			units = append(units, '\n')
			i++
		case 't':
			units = append(units, '\t')
			i++
		case 'r':
			units = append(units, '\r')
			i++
		case 'b':
			units = append(units, '\b')
			i++
		case 'f':
			units = append(units, '\f')
			i++
		case 'v':
			units = append(units, '\v')
			i++
		case '\r':
			// Line continuation.
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\n':
			i++
		case 'x':
			if v, ok := hexValue(body, i+1, 2); ok {
				units = append(units, uint16(v))
				i += 3
			} else {
				units = append(units, 'x')
				i++
			}
		case 'u':
			v, width, ok := unicodeEscape(body, i)
			if !ok {
				units = append(units, 'u')
				i++
				break
			}
			if v > 0xFFFF {
				units = utf16.AppendRune(units, rune(v))
			} else {
				units = append(units, uint16(v))
			}
			i += width
		case '0', '1', '2', '3', '4', '5', '6', '7':
			if template {
				if c == '0' {
					units = append(units, 0)
				} else {
					units = append(units, uint16(c))
				}
				i++
				break
			}
			v, width := octalEscape(body, i)
			units = append(units, uint16(v))
			i += width
		default:
			r, size := utf8.DecodeRuneInString(body[i:])
			i += size
			if r == '\u2028' || r == '\u2029' {
				// Line continuation.
				continue
			}
			units = utf16.AppendRune(units, r)
		}
	}
	return string(estree.AppendUTF16(nil, units))
}

// cookIdentifier resolves \u escapes in an identifier name.
func cookIdentifier(raw string) string {
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == 'u' {
			if v, width, ok := unicodeEscape(raw, i+1); ok {
				sb.WriteRune(rune(v))
				i += 1 + width
				continue
			}
		}
		sb.WriteByte(raw[i])
		i++
	}
	return sb.String()
}

// unicodeEscape reads "u{H...}" or "uHHHH" starting at the 'u' at s[i].
// width counts the bytes consumed including the 'u'.
func unicodeEscape(s string, i int) (value uint32, width int, ok bool) {
	if i+1 < len(s) && s[i+1] == '{' {
		end := strings.IndexByte(s[i+2:], '}')
		if end <= 0 {
			return 0, 0, false
		}
		v, ok := hexValue(s, i+2, end)
		if !ok || v > 0x10FFFF {
			return 0, 0, false
		}
		return v, end + 3, true
	}
	v, ok := hexValue(s, i+1, 4)
	if !ok {
		return 0, 0, false
	}
	return v, 5, true
}

func hexValue(s string, start, n int) (uint32, bool) {
	if start+n > len(s) || n == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// octalEscape reads a legacy octal escape at s[i]: up to three digits when
// the first is 0-3, otherwise up to two.
func octalEscape(s string, i int) (value uint32, width int) {
	limit := 2
	if s[i] <= '3' {
		limit = 3
	}
	for width < limit && i+width < len(s) && s[i+width] >= '0' && s[i+width] <= '7' {
		value = value*8 + uint32(s[i+width]-'0')
		width++
	}
	return value, width
}

// parseNumber evaluates a numeric literal's source text.
func parseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseRadix(s[2:], 16)
		case 'o', 'O':
			return parseRadix(s[2:], 8)
		case 'b', 'B':
			return parseRadix(s[2:], 2)
		}
		if isLegacyOctal(s) {
			return parseRadix(s[1:], 8)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return f, nil
}

func parseRadix(digits string, base int) (float64, error) {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, fmt.Errorf("invalid base-%d digits %q", base, digits)
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, nil
}

// isLegacyOctal reports "017"-style literals. "08" and "09" are decimal.
func isLegacyOctal(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}
