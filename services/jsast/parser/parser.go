// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package parser turns JavaScript source into an estree.Program.
//
// Tree-sitter produces the concrete syntax tree; a converter maps it onto the
// ESTree node set the way esprima 4 shapes its output.
package parser

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// Parser converts JavaScript source text into ESTree trees.
//
// Description:
//
//	Parser uses tree-sitter to build the concrete tree and then converts it
//	node by node, rejecting any construct that has no ESTree form in the
//	supported node set. Source positions are attached only when requested.
//
// Thread Safety:
//
//	Parser is safe for concurrent use. Each Parse call creates its own
//	tree-sitter parser instance.
//
// Example:
//
//	p := parser.New(parser.WithSourceType(estree.SourceTypeModule))
//	prog, err := p.Parse(ctx, []byte("export const x = 1;"))
//	if err != nil {
//	    return fmt.Errorf("parse: %w", err)
//	}
type Parser struct {
	options Options
}

// Options configures Parser behavior.
type Options struct {
	// SourceType is estree.SourceTypeScript or estree.SourceTypeModule.
	// Import and export declarations are syntax errors in scripts.
	// Default: script
	SourceType string

	// Positions attaches range and loc to every node.
	// Default: false
	Positions bool

	// MaxFileSize is the maximum source size in bytes.
	// Larger inputs return ErrFileTooLarge.
	// Default: 10MB
	MaxFileSize int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		SourceType:  estree.SourceTypeScript,
		Positions:   false,
		MaxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// Option is a functional option for configuring Parser.
type Option func(*Options)

// WithSourceType selects script or module parsing.
func WithSourceType(sourceType string) Option {
	return func(o *Options) {
		o.SourceType = sourceType
	}
}

// WithPositions sets whether range and loc are attached.
func WithPositions(enabled bool) Option {
	return func(o *Options) {
		o.Positions = enabled
	}
}

// WithMaxFileSize sets the maximum source size.
func WithMaxFileSize(size int) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Parser{options: options}
}

// Options returns the parser's effective options.
func (p *Parser) Options() Options {
	return p.options
}

// Parse converts source text into a Program.
//
// Description:
//
//	Validates size and encoding, runs tree-sitter, reports the first error
//	node as a *SyntaxError, then converts the concrete tree. Constructs
//	outside the supported node set produce a *SyntaxError whose Kind is
//	ErrUnsupportedSyntax.
//
// Inputs:
//
//	ctx     - Context for cancellation. Checked before parsing starts.
//	content - Source bytes. Must be valid UTF-8.
//
// Outputs:
//
//	*estree.Program - The tree. Nil on error.
//	error           - ErrFileTooLarge, ErrInvalidContent, or a *SyntaxError.
func (p *Parser) Parse(ctx context.Context, content []byte) (*estree.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("javascript parse canceled before start: %w", err)
	}
	if p.options.MaxFileSize > 0 && len(content) > p.options.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(content), p.options.MaxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidContent
	}

	ts := sitter.NewParser()
	defer ts.Close()
	ts.SetLanguage(javascript.GetLanguage())

	tree, err := ts.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	index := newLineIndex(content)
	if root.HasError() {
		return nil, syntaxErrorAt(root, content, index)
	}

	c := &converter{
		src:       content,
		index:     index,
		module:    p.options.SourceType == estree.SourceTypeModule,
		positions: p.options.Positions,
	}
	c.strict = c.module
	return c.convert(root)
}

// syntaxErrorAt reports the first ERROR or MISSING node under root.
func syntaxErrorAt(root *sitter.Node, src []byte, index *lineIndex) error {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	off := int(bad.StartByte())
	line, col, _ := index.locate(off)

	msg := "Unexpected token"
	switch {
	case bad.IsMissing():
		if off >= len(trimRight(src)) {
			msg = "Unexpected end of input"
		} else {
			msg = fmt.Sprintf("Expected %s", bad.Type())
		}
	case off >= len(trimRight(src)):
		msg = "Unexpected end of input"
	default:
		if tok := firstToken(bad, src); tok != "" {
			msg = "Unexpected token " + tok
		}
	}
	return &SyntaxError{Line: line, Column: col + 1, Message: msg, Kind: ErrSyntax}
}

// firstError returns the earliest ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == jsNodeError || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// firstToken returns the text of the first leaf under n, truncated.
func firstToken(n *sitter.Node, src []byte) string {
	for n.ChildCount() > 0 {
		n = n.Child(0)
	}
	text := n.Content(src)
	if text == "" {
		start := int(n.StartByte())
		if start < len(src) {
			r, _ := utf8.DecodeRune(src[start:])
			text = string(r)
		}
	}
	if len(text) > 32 {
		text = text[:32] + "..."
	}
	return text
}

func trimRight(src []byte) []byte {
	end := len(src)
	for end > 0 {
		switch src[end-1] {
		case ' ', '\t', '\n', '\r':
			end--
			continue
		}
		break
	}
	return src[:end]
}
