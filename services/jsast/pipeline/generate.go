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
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/jsast/services/jsast/codegen"
	"github.com/AleutianAI/jsast/services/jsast/estree"
	"github.com/AleutianAI/jsast/services/jsast/naming"
	"github.com/AleutianAI/jsast/services/jsast/textio"
)

// Generator converts serialized trees back to JavaScript files.
//
// Thread Safety: safe for concurrent use when the store is.
type Generator struct {
	store   textio.Store
	gen     *codegen.Generator
	options Options
}

// NewGenerator creates the generate pipeline. A nil gen uses codegen.New().
func NewGenerator(store textio.Store, gen *codegen.Generator, opts ...Option) *Generator {
	if gen == nil {
		gen = codegen.New()
	}
	return &Generator{store: store, gen: gen, options: buildOptions(opts)}
}

// Direction implements Transformer.
func (g *Generator) Direction() Direction { return DirectionGenerate }

// OutputPath implements Transformer: "<dir>/abc.js.json" becomes
// "<destDir>/abc.js". Without destDir the source lands next to the tree.
func (g *Generator) OutputPath(src, destDir string) (string, error) {
	if destDir == "" {
		destDir = filepath.Dir(src)
	}
	return naming.JSPath(destDir, src)
}

// GenerateSource converts serialized tree text to JavaScript.
//
// Outputs:
//
//	string - The generated source.
//	error  - An *estree.DecodeError or *codegen.GenerateError.
func (g *Generator) GenerateSource(text string) (string, error) {
	prog, err := estree.Decode(text)
	if err != nil {
		return "", err
	}
	return g.gen.Generate(prog)
}

// GenerateFile reads the tree at src, renders it and writes the source to dst.
//
// Outputs:
//
//	error - An *ItemError with StageRead, StageGenerate or StageWrite.
func (g *Generator) GenerateFile(ctx context.Context, src, dst string) error {
	_, span := startSpan(ctx, "pipeline.Generator.GenerateFile", src, dst)
	defer span.End()

	text, err := g.store.ReadText(src)
	if err != nil {
		return fail(span, StageRead, src, err)
	}

	prog, err := estree.Decode(text)
	if err != nil {
		return fail(span, StageGenerate, src, err)
	}
	out, err := g.gen.Generate(prog)
	if err != nil {
		return fail(span, StageGenerate, src, err)
	}

	if err := g.store.WriteText(dst, out); err != nil {
		return fail(span, StageWrite, src, err)
	}

	span.SetAttributes(attribute.Int("jsast.output_bytes", len(out)))
	g.options.Logger.Debug("generated file",
		slog.String("src", src),
		slog.String("dst", dst),
		slog.Int("bytes", len(out)),
	)
	return nil
}

// TransformFile implements Transformer.
func (g *Generator) TransformFile(ctx context.Context, src, dst string) error {
	return g.GenerateFile(ctx, src, dst)
}
