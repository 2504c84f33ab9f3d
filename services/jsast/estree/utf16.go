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
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// JavaScript strings are sequences of UTF-16 code units and may hold a
// surrogate with no partner. A Go string keeps such a unit as the three-byte
// generalized UTF-8 form of its code point (ED A0..BF 80..BF), which valid
// UTF-8 never contains, so the unit survives parsing, serialization and
// generation instead of collapsing to U+FFFD.

// AppendUTF16 appends units to dst as UTF-8. Surrogate pairs combine into one
// code point; lone surrogates keep their three-byte form.
func AppendUTF16(dst []byte, units []uint16) []byte {
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			dst = utf8.AppendRune(dst, u)
			continue
		}
		if u < 0xDC00 && i+1 < len(units) {
			if r := utf16.DecodeRune(u, rune(units[i+1])); r != utf8.RuneError {
				dst = utf8.AppendRune(dst, r)
				i++
				continue
			}
		}
		dst = append(dst, 0xE0|byte(u>>12), 0x80|byte(u>>6)&0x3F, 0x80|byte(u)&0x3F)
	}
	return dst
}

// LoneSurrogate reports whether s[i:] starts with a lone surrogate and
// returns its code unit.
func LoneSurrogate(s string, i int) (uint16, bool) {
	if len(s)-i < 3 || s[i] != 0xED || s[i+1] < 0xA0 || s[i+1] > 0xBF || s[i+2] < 0x80 || s[i+2] > 0xBF {
		return 0, false
	}
	return 0xD000 | uint16(s[i+1]&0x3F)<<6 | uint16(s[i+2]&0x3F), true
}

// HasLoneSurrogate reports whether s holds any lone surrogate.
func HasLoneSurrogate(s string) bool {
	for i := strings.IndexByte(s, 0xED); i >= 0; {
		if _, ok := LoneSurrogate(s, i); ok {
			return true
		}
		next := strings.IndexByte(s[i+1:], 0xED)
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

// marshalString encodes s as a JSON string with lone surrogates written as
// \uXXXX escapes, the way JSON.stringify does.
func marshalString(s string) ([]byte, error) {
	if !HasLoneSurrogate(s) {
		return marshalNoEscape(s)
	}
	var buf bytes.Buffer
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		u, ok := LoneSurrogate(s, i)
		if !ok {
			i++
			continue
		}
		if start < i {
			b, err := marshalNoEscape(s[start:i])
			if err != nil {
				return nil, err
			}
			buf.Write(b[1 : len(b)-1])
		}
		fmt.Fprintf(&buf, `\u%04x`, u)
		i += 3
		start = i
	}
	if start < len(s) {
		b, err := marshalNoEscape(s[start:])
		if err != nil {
			return nil, err
		}
		buf.Write(b[1 : len(b)-1])
	}
	buf.WriteByte('"')
	return buf.Bytes(), nil
}

// jsonString returns the value of a JSON string result. gjson maps escaped
// lone surrogates to U+FFFD, so strings with \u escapes are unescaped here.
func jsonString(v gjson.Result) string {
	raw := v.Raw
	if !strings.Contains(raw, `\u`) || len(raw) < 2 || raw[0] != '"' {
		return v.Str
	}
	raw = raw[1 : len(raw)-1]

	units := make([]uint16, 0, len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(raw[i:])
			units = utf16.AppendRune(units, r)
			i += size
			continue
		}
		if i+1 >= len(raw) {
			return v.Str
		}
		switch raw[i+1] {
		case 'u':
			if i+6 > len(raw) {
				return v.Str
			}
			n, err := strconv.ParseUint(raw[i+2:i+6], 16, 16)
			if err != nil {
				return v.Str
			}
			units = append(units, uint16(n))
			i += 6
			continue
		case 'b':
			units = append(units, '\b')
		case 'f':
			units = append(units, '\f')
		case 'n':
			units = append(units, '\n')
		case 'r':
			units = append(units, '\r')
		case 't':
			units = append(units, '\t')
		default:
			units = append(units, uint16(raw[i+1]))
		}
		i += 2
	}
	return string(AppendUTF16(nil, units))
}

// MarshalJSON keeps lone surrogates of the cooked text.
func (v TemplateValue) MarshalJSON() ([]byte, error) {
	raw, err := marshalNoEscape(v.Raw)
	if err != nil {
		return nil, err
	}
	cooked, err := marshalString(v.Cooked)
	if err != nil {
		return nil, err
	}
	return []byte(`{"raw":` + string(raw) + `,"cooked":` + string(cooked) + `}`), nil
}
