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
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON indicates the serialized tree is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrUnknownNodeType indicates a "type" tag outside the supported node set.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrMissingField indicates a node lacks a field its type requires.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField indicates a field holds a value of the wrong shape,
	// a node of the wrong category, or an unknown operator or kind.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidTree indicates an in-memory tree that cannot be encoded or rendered.
	ErrInvalidTree = errors.New("invalid tree")
)

// DecodeError describes where and why a serialized tree was rejected.
type DecodeError struct {
	// Path is a JSONPath-like location, e.g. "$.body[0].expression.left".
	Path string

	// Kind is one of the Err* sentinels above.
	Kind error

	// Detail is a short human-readable explanation.
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Kind }
