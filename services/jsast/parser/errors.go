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
)

var (
	// ErrSyntax indicates source text that is not valid JavaScript.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedSyntax indicates valid JavaScript that uses a construct
	// outside the supported node set (optional chaining, class fields, JSX, ...).
	ErrUnsupportedSyntax = errors.New("unsupported syntax")

	// ErrFileTooLarge indicates source exceeding the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates source that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content: not valid UTF-8")
)

// SyntaxError reports where the source was rejected.
//
// Line is 1-based; Column is 1-based and counted in UTF-16 code units.
// Kind is ErrSyntax or ErrUnsupportedSyntax.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
	Kind    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	if e.Kind == nil {
		return ErrSyntax
	}
	return e.Kind
}
