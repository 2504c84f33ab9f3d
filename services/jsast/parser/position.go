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
	"sort"
	"unicode/utf8"
)

// lineIndex maps byte offsets to ECMAScript positions.
//
// Tree-sitter reports byte offsets and rows split on '\n' only. ESTree
// positions count UTF-16 code units, and lines also break on a lone '\r',
// U+2028 and U+2029.
type lineIndex struct {
	src []byte

	// starts[i] is the byte offset where line i+1 begins.
	starts []int

	// units[i] is the UTF-16 offset of starts[i].
	units []int
}

func newLineIndex(src []byte) *lineIndex {
	x := &lineIndex{src: src, starts: []int{0}, units: []int{0}}
	u := 0
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		i += size
		u += utf16Width(r)
		switch r {
		case '\r':
			if i < len(src) && src[i] == '\n' {
				i++
				u++
			}
			x.starts = append(x.starts, i)
			x.units = append(x.units, u)
		case '\n', '\u2028', '\u2029':
			x.starts = append(x.starts, i)
			x.units = append(x.units, u)
		}
	}
	return x
}

// locate returns the 1-based line, 0-based UTF-16 column and UTF-16 offset
// of a byte offset.
func (x *lineIndex) locate(off int) (line, column, offset int) {
	if off > len(x.src) {
		off = len(x.src)
	}
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	column = utf16Len(x.src[x.starts[i]:off])
	return i + 1, column, x.units[i] + column
}

func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		n += utf16Width(r)
	}
	return n
}
