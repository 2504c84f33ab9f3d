// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/jsast/services/jsast/estree"
	"github.com/AleutianAI/jsast/services/jsast/naming"
	"github.com/AleutianAI/jsast/services/jsast/parser"
	"github.com/AleutianAI/jsast/services/jsast/textio"
)

// Parser converts JavaScript files to serialized trees.
//
// Thread Safety: safe for concurrent use when the store is.
type Parser struct {
	store   textio.Store
	parser  *parser.Parser
	options Options
}

// NewParser creates the parse pipeline.
//
// Inputs:
//
//	store - File access. Must not be nil.
//	p     - The JavaScript parser. Nil uses parser.New().
//	opts  - Optional configuration.
func NewParser(store textio.Store, p *parser.Parser, opts ...Option) *Parser {
	if p == nil {
		p = parser.New()
	}
	return &Parser{store: store, parser: p, options: buildOptions(opts)}
}

// Direction implements Transformer.
func (p *Parser) Direction() Direction { return DirectionParse }

// OutputPath implements Transformer: "<dir>/foo.js" becomes "<dir>/foo.json",
// or "<destDir>/foo.json" when destDir is set.
func (p *Parser) OutputPath(src, destDir string) (string, error) {
	if destDir == "" {
		return naming.ASTPath(src)
	}
	return naming.ASTPathIn(destDir, src)
}

// ParseSource converts source text to serialized tree text.
//
// Description:
//
//	Parsing runs to completion regardless of ctx cancellation; ctx only
//	carries the trace. The result is the tree encoded with the configured
//	JSON indentation.
//
// Outputs:
//
//	string - The serialized tree.
//	error  - The parser's error (*parser.SyntaxError, ErrFileTooLarge,
//	         ErrInvalidContent) unwrapped.
func (p *Parser) ParseSource(ctx context.Context, text string) (string, error) {
	prog, err := p.parser.Parse(context.WithoutCancel(ctx), []byte(text))
	if err != nil {
		return "", err
	}
	return estree.Encode(prog, p.options.JSONIndent)
}

// ParseFile reads src, parses it and writes the serialized tree to dst.
//
// Outputs:
//
//	error - An *ItemError with StageRead, StageParse or StageWrite.
func (p *Parser) ParseFile(ctx context.Context, src, dst string) error {
	ctx, span := startSpan(ctx, "pipeline.Parser.ParseFile", src, dst)
	defer span.End()

	text, err := p.store.ReadText(src)
	if err != nil {
		return fail(span, StageRead, src, err)
	}

	prog, err := p.parser.Parse(context.WithoutCancel(ctx), []byte(text))
	if err != nil {
		return fail(span, StageParse, src, err)
	}
	out, err := estree.Encode(prog, p.options.JSONIndent)
	if err != nil {
		return fail(span, StageParse, src, err)
	}

	if err := p.store.WriteText(dst, out); err != nil {
		return fail(span, StageWrite, src, err)
	}

	nodes := estree.Count(prog)
	span.SetAttributes(
		attribute.Int("jsast.source_bytes", len(text)),
		attribute.Int("jsast.nodes", nodes),
	)
	p.options.Logger.Debug("parsed file",
		slog.String("src", src),
		slog.String("dst", dst),
		slog.Int("nodes", nodes),
	)
	return nil
}

// TransformFile implements Transformer.
func (p *Parser) TransformFile(ctx context.Context, src, dst string) error {
	return p.ParseFile(ctx, src, dst)
}
