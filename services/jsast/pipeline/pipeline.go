// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pipeline implements the two per-item transformations: JavaScript
// source to serialized tree, and serialized tree back to source.
//
// Each item is read, transformed and written as one unit. Every failure is
// returned as an *ItemError naming the stage that failed, so the drive
// modes can isolate it and keep going.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the OTel tracer shared by both pipelines.
const tracerName = "jsast.pipeline"

// Direction names which way a pipeline converts.
type Direction string

const (
	// DirectionParse converts source to a serialized tree.
	DirectionParse Direction = "parse"

	// DirectionGenerate converts a serialized tree to source.
	DirectionGenerate Direction = "generate"
)

// Stage is the step of an item's transformation that failed.
type Stage string

const (
	StagePath     Stage = "path"
	StageRead     Stage = "read"
	StageParse    Stage = "parse"
	StageGenerate Stage = "generate"
	StageWrite    Stage = "write"
)

// ItemError reports the failure of one item.
type ItemError struct {
	// Stage is where the item failed.
	Stage Stage

	// Path is the input path of the item.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// StageOf returns the failing stage recorded in err, or "" when err carries
// no *ItemError.
func StageOf(err error) Stage {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie.Stage
	}
	return ""
}

// Transformer is one direction of the conversion, applied to a single file.
//
// Implementations: *Parser and *Generator.
type Transformer interface {
	// Direction reports which way the transformer converts.
	Direction() Direction

	// OutputPath derives the destination for src. An empty destDir places
	// the output next to src.
	OutputPath(src, destDir string) (string, error)

	// TransformFile converts src and writes the result to dst.
	TransformFile(ctx context.Context, src, dst string) error
}

// Run derives the output path of src and transforms it.
//
// Description:
//
//	Run is the unit both drive modes apply per item. It returns the output
//	path on success. Path derivation failures are reported with StagePath;
//	everything else comes from TransformFile.
//
// Inputs:
//
//	ctx     - Context for tracing. Cancellation does not interrupt an item.
//	t       - The transformation to apply.
//	src     - Input path.
//	destDir - Output directory, or "" for next to src.
//
// Outputs:
//
//	string - The path written.
//	error  - An *ItemError on failure.
func Run(ctx context.Context, t Transformer, src, destDir string) (string, error) {
	dst, err := t.OutputPath(src, destDir)
	if err != nil {
		return "", &ItemError{Stage: StagePath, Path: src, Err: err}
	}
	if err := t.TransformFile(ctx, src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Options configures both pipelines.
type Options struct {
	// JSONIndent is the per-level indentation of serialized trees.
	// Default: two spaces
	JSONIndent string

	// Logger receives per-item debug logs.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		JSONIndent: "  ",
		Logger:     slog.Default(),
	}
}

// Option is a functional option for configuring a pipeline.
type Option func(*Options)

// WithJSONIndent sets the indentation of serialized trees. An empty string
// produces compact JSON.
func WithJSONIndent(indent string) Option {
	return func(o *Options) {
		o.JSONIndent = indent
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func buildOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// startSpan opens the span of one item.
func startSpan(ctx context.Context, name, src, dst string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(
			attribute.String("jsast.src", src),
			attribute.String("jsast.dst", dst),
		),
	)
}

// fail records err on span and wraps it as an *ItemError.
func fail(span trace.Span, stage Stage, path string, err error) error {
	ie := &ItemError{Stage: stage, Path: path, Err: err}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("jsast.stage", string(stage)))
	return ie
}
