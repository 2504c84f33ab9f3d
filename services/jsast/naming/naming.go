// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package naming derives output file names from input file names.
//
// All functions are pure string transforms; none touch the file system.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// TreeExt is appended to parse-direction outputs.
	TreeExt = ".json"

	// SourceExt is appended to generate-direction outputs.
	SourceExt = ".js"
)

// ErrInvalidPath indicates a path with no usable final segment.
var ErrInvalidPath = errors.New("invalid path")

// ASTName returns the tree file name for a source path.
//
// Description:
//
//	Takes the final path segment, cuts it at its last '.', and appends
//	".json". Only the last dot counts, so "a.min.js" becomes "a.min.json"
//	and "a.js.bak" becomes "a.js.json". A segment without a dot keeps its
//	full name. A leading dot (".eslintrc") is treated as part of the name.
//
// Inputs:
//
//	p - Source path, absolute or relative.
//
// Outputs:
//
//	string - The derived file name, without directory.
//	error  - ErrInvalidPath if p has no final segment.
//
// Examples:
//
//	ASTName("abc/def.js")  // "def.json"
//	ASTName("a.js.bak")    // "a.js.json"
func ASTName(p string) (string, error) {
	base, err := segment(p)
	if err != nil {
		return "", err
	}
	return stem(base) + TreeExt, nil
}

// ASTPath places ASTName(p) in the same directory as p.
func ASTPath(p string) (string, error) {
	name, err := ASTName(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), name), nil
}

// ASTPathIn places ASTName(p) in directory des.
func ASTPathIn(des, p string) (string, error) {
	name, err := ASTName(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(des, name), nil
}

// JSName returns the source file name for a tree path.
//
// Description:
//
//	Tree files follow the "<hash>.<ext>.json" convention, so the trailing
//	".json" and one more extension are removed before ".js" is appended.
//	A name with only a ".json" suffix loses just that suffix.
//
// Examples:
//
//	JSName("/tmp/ast/abcdef123.js.json")  // "abcdef123.js"
//	JSName("foo.json")                    // "foo.js"
func JSName(p string) (string, error) {
	base, err := segment(p)
	if err != nil {
		return "", err
	}
	return stem(stem(base)) + SourceExt, nil
}

// JSPath places JSName(p) in directory des.
func JSPath(des, p string) (string, error) {
	name, err := JSName(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(des, name), nil
}

// segment returns the final path segment of p.
func segment(p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.HasSuffix(trimmed, "/") || strings.HasSuffix(trimmed, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q names a directory", ErrInvalidPath, p)
	}
	base := filepath.Base(trimmed)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q has no file name", ErrInvalidPath, p)
	}
	return base, nil
}

// stem cuts name at its last dot. A dot in first position does not count.
func stem(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
