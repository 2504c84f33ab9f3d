// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package codegen renders estree trees back into JavaScript source.
//
// Output follows escodegen's default layout: four-space indentation,
// single-quoted strings, explicit semicolons, and only the parentheses that
// operator precedence requires. The output is reformatted rather than a
// byte-for-byte reproduction; re-parsing it yields the same tree modulo
// positions and literal raw text.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AleutianAI/jsast/services/jsast/estree"
)

// ErrInvalidTree is returned, wrapped in a *GenerateError, for trees that
// have no source rendering. It is the same sentinel estree uses so callers
// can match either layer with one errors.Is check.
var ErrInvalidTree = estree.ErrInvalidTree

// GenerateError reports the node that could not be rendered.
type GenerateError struct {
	// NodeType is the ESTree type of the offending node, or "" when the
	// node itself is missing.
	NodeType string

	// Detail says what is wrong with it.
	Detail string
}

func (e *GenerateError) Error() string {
	if e.NodeType == "" {
		return fmt.Sprintf("generate: %s: %s", ErrInvalidTree, e.Detail)
	}
	return fmt.Sprintf("generate: %s: %s: %s", ErrInvalidTree, e.NodeType, e.Detail)
}

func (e *GenerateError) Unwrap() error { return ErrInvalidTree }

// DefaultIndent is one level of indentation in generated source.
const DefaultIndent = "    "

// Options configures Generator behavior.
type Options struct {
	// Indent is the string emitted per nesting level.
	// Default: four spaces
	Indent string
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent}
}

// Option is a functional option for configuring Generator.
type Option func(*Options)

// WithIndent sets the per-level indentation string.
func WithIndent(indent string) Option {
	return func(o *Options) {
		o.Indent = indent
	}
}

// Generator renders estree programs as JavaScript.
//
// Thread Safety:
//
//	Generator is safe for concurrent use. Each call renders with its own
//	printer state.
type Generator struct {
	options Options
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Generator{options: options}
}

// Generate renders prog as JavaScript source.
//
// Description:
//
//	Statements are emitted one per line with no trailing newline. The
//	renderer accepts every node shape the parser produces and any tree
//	estree.Decode accepts. Hand-built trees that leave a required child nil
//	or carry an unknown operator are rejected.
//
// Inputs:
//
//	prog - The tree to render. Must not be nil.
//
// Outputs:
//
//	string - The generated source.
//	error  - A *GenerateError wrapping ErrInvalidTree on failure.
func (g *Generator) Generate(prog *estree.Program) (out string, err error) {
	if prog == nil {
		return "", &GenerateError{NodeType: estree.TypeProgram, Detail: "nil program"}
	}

	p := &printer{indent: g.options.Indent}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			out, err = "", b.err
		}
	}()
	return p.program(prog), nil
}

// Generate renders prog with a Generator built from opts.
func Generate(prog *estree.Program, opts ...Option) (string, error) {
	return New(opts...).Generate(prog)
}

// IsInvalidTree reports whether err came from rendering a malformed tree.
func IsInvalidTree(err error) bool {
	return errors.Is(err, ErrInvalidTree)
}

type bailout struct {
	err error
}

// printer holds the rendering state of one Generate call.
type printer struct {
	indent string
	level  int
}

func (p *printer) fail(n estree.Node, format string, args ...any) {
	typ := ""
	if !estree.IsNil(n) {
		typ = n.Type()
	}
	panic(bailout{err: &GenerateError{NodeType: typ, Detail: fmt.Sprintf(format, args...)}})
}

// need panics when a required child is missing.
func (p *printer) need(parent estree.Node, child estree.Node, field string) {
	if estree.IsNil(child) {
		p.fail(parent, "missing %s", field)
	}
}

func (p *printer) pad() string {
	return strings.Repeat(p.indent, p.level)
}

// nested runs fn one indentation level deeper.
func (p *printer) nested(fn func() string) string {
	p.level++
	defer func() { p.level-- }()
	return fn()
}

func (p *printer) program(prog *estree.Program) string {
	lines := make([]string, 0, len(prog.Body))
	for _, s := range prog.Body {
		lines = append(lines, p.statement(s))
	}
	return strings.Join(lines, "\n")
}
