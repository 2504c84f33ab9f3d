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
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AleutianAI/jsast/services/jsast/codegen"
	"github.com/AleutianAI/jsast/services/jsast/estree"
	"github.com/AleutianAI/jsast/services/jsast/naming"
	"github.com/AleutianAI/jsast/services/jsast/parser"
	"github.com/AleutianAI/jsast/services/jsast/textio"
)

const letTree = `{"type":"Program","body":[{"type":"VariableDeclaration","declarations":[{"type":"VariableDeclarator",` +
	`"id":{"type":"Identifier","name":"x"},"init":{"type":"Literal","value":1,"raw":"1"}}],"kind":"let"}],` +
	`"sourceType":"script"}`

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

// failingStore fails every write.
type failingStore struct {
	*textio.MemStore
}

func (failingStore) WriteText(path, _ string) error {
	return fmt.Errorf("writing %s: %w", path, fs.ErrPermission)
}

// =============================================================================
// Parse pipeline
// =============================================================================

func TestParser_ParseFile_LetDeclaration(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/tmp/src/foo.js": "let x = 1;"})
	p := NewParser(store, nil, WithJSONIndent(""))

	dst, err := Run(context.Background(), p, "/tmp/src/foo.js", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/src/foo.json", dst)

	got, err := store.ReadText(dst)
	require.NoError(t, err)
	assert.Equal(t, letTree, got)
}

func TestParser_ParseFile_IndentedByDefault(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/in/a.js": ";"})
	p := NewParser(store, nil)

	dst, err := Run(context.Background(), p, "/in/a.js", "/out")
	require.NoError(t, err)
	assert.Equal(t, "/out/a.json", dst)

	got, err := store.ReadText(dst)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"type\": \"Program\",\n  \"body\": [\n    {\n      \"type\": \"EmptyStatement\"\n    }\n  ],\n  \"sourceType\": \"script\"\n}", got)
}

func TestParser_ParseFile_MissingFile(t *testing.T) {
	p := NewParser(textio.NewMemStore(nil), nil)

	_, err := Run(context.Background(), p, "/nope/missing.js", "")
	require.Error(t, err)

	var ie *ItemError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, StageRead, ie.Stage)
	assert.Equal(t, "/nope/missing.js", ie.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "/nope/missing.js")
}

func TestParser_ParseFile_SyntaxError(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/src/bad.js": "if (x"})
	p := NewParser(store, nil)

	_, err := Run(context.Background(), p, "/src/bad.js", "/out")
	require.Error(t, err)
	assert.Equal(t, StageParse, StageOf(err))
	assert.True(t, errors.Is(err, parser.ErrSyntax))

	var se *parser.SyntaxError
	assert.True(t, errors.As(err, &se))

	// Nothing is written for a failed item.
	_, readErr := store.ReadText("/out/bad.json")
	assert.True(t, textio.IsNotExist(readErr))
}

func TestParser_ParseFile_WriteError(t *testing.T) {
	store := failingStore{textio.NewMemStore(map[string]string{"/src/a.js": "a;"})}
	p := NewParser(store, nil)

	_, err := Run(context.Background(), p, "/src/a.js", "/out")
	require.Error(t, err)
	assert.Equal(t, StageWrite, StageOf(err))
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestParser_ParseFile_InvalidPath(t *testing.T) {
	p := NewParser(textio.NewMemStore(nil), nil)

	_, err := Run(context.Background(), p, "/src/dir/", "")
	require.Error(t, err)
	assert.Equal(t, StagePath, StageOf(err))
	assert.True(t, errors.Is(err, naming.ErrInvalidPath))
}

func TestParser_ParseFile_RunsDespiteCanceledContext(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/src/a.js": "a;"})
	p := NewParser(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, p, "/src/a.js", "/out")
	assert.NoError(t, err)
}

func TestParser_ParseFile_ModuleOption(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/src/m.js": "export const a = 1;"})

	_, err := Run(context.Background(), NewParser(store, nil), "/src/m.js", "/out")
	assert.Equal(t, StageParse, StageOf(err))

	module := parser.New(parser.WithSourceType(estree.SourceTypeModule))
	_, err = Run(context.Background(), NewParser(store, module), "/src/m.js", "/out")
	assert.NoError(t, err)
}

func TestParser_ParseSource(t *testing.T) {
	p := NewParser(textio.NewMemStore(nil), nil, WithJSONIndent(""))

	out, err := p.ParseSource(context.Background(), "let x = 1;")
	require.NoError(t, err)
	assert.Equal(t, letTree, out)

	_, err = p.ParseSource(context.Background(), "if (")
	assert.True(t, errors.Is(err, parser.ErrSyntax))
}

func TestParser_ParseFile_Span(t *testing.T) {
	exporter := setupTestTracer(t)
	store := textio.NewMemStore(map[string]string{"/src/a.js": "a;", "/src/b.js": "}"})
	p := NewParser(store, nil)

	_, err := Run(context.Background(), p, "/src/a.js", "/out")
	require.NoError(t, err)
	_, err = Run(context.Background(), p, "/src/b.js", "/out")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	for _, s := range spans {
		assert.Equal(t, "pipeline.Parser.ParseFile", s.Name)
	}
	attrs := make(map[string]string)
	for _, a := range spans[0].Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	assert.Equal(t, "/src/a.js", attrs["jsast.src"])
	assert.Equal(t, "/out/a.json", attrs["jsast.dst"])
	assert.Equal(t, "3", attrs["jsast.nodes"])
	assert.NotEqual(t, codes.Error, spans[0].Status.Code)

	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.NotEmpty(t, spans[1].Events, "error should be recorded as a span event")
}

// =============================================================================
// Generate pipeline
// =============================================================================

func TestGenerator_GenerateFile_Scenario(t *testing.T) {
	store := textio.NewMemStore(map[string]string{"/tmp/ast/abcdef123.js.json": letTree})
	g := NewGenerator(store, nil)

	dst, err := Run(context.Background(), g, "/tmp/ast/abcdef123.js.json", "/tmp/out")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/abcdef123.js", dst)

	got, err := store.ReadText(dst)
	require.NoError(t, err)
	assert.Equal(t, "let x = 1;", got)
}

func TestGenerator_OutputPathWithoutDestination(t *testing.T) {
	g := NewGenerator(textio.NewMemStore(nil), nil)
	dst, err := g.OutputPath("/tmp/ast/foo.json", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ast/foo.js", dst)
}

func TestGenerator_GenerateFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		tree  string
		check func(t *testing.T, err error)
	}{
		{
			name: "malformed json",
			tree: `{"type":`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, estree.ErrMalformedJSON))
			},
		},
		{
			name: "unknown node type",
			tree: `{"type":"Program","body":[{"type":"Bogus"}]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, estree.ErrUnknownNodeType))
				var de *estree.DecodeError
				assert.True(t, errors.As(err, &de))
			},
		},
		{
			name: "missing field",
			tree: `{"type":"Program","body":[{"type":"ExpressionStatement"}]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, estree.ErrMissingField))
			},
		},
		{
			name: "call without arguments array",
			tree: `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
				`{"type":"CallExpression","callee":{"type":"Identifier","name":"f"}}}]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, estree.ErrMissingField))
			},
		},
		{
			name: "program without body",
			tree: `{"type":"Program"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, estree.ErrMissingField))
			},
		},
		{
			name: "unrenderable number",
			tree: `{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"Literal","value":null,"raw":"NaN"}}]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, codegen.ErrInvalidTree))
				var ge *codegen.GenerateError
				assert.True(t, errors.As(err, &ge))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := textio.NewMemStore(map[string]string{"/ast/x.js.json": tt.tree})
			g := NewGenerator(store, nil)

			_, err := Run(context.Background(), g, "/ast/x.js.json", "/out")
			require.Error(t, err)
			assert.Equal(t, StageGenerate, StageOf(err))
			tt.check(t, err)

			_, readErr := store.ReadText("/out/x.js")
			assert.True(t, textio.IsNotExist(readErr))
		})
	}
}

func TestGenerator_GenerateFile_MissingFile(t *testing.T) {
	g := NewGenerator(textio.NewMemStore(nil), nil)
	_, err := Run(context.Background(), g, "/ast/none.js.json", "/out")
	assert.Equal(t, StageRead, StageOf(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestGenerator_GenerateSource(t *testing.T) {
	g := NewGenerator(textio.NewMemStore(nil), codegen.New(codegen.WithIndent("  ")))

	out, err := g.GenerateSource(`{"type":"Program","sourceType":"script","body":[{"type":"IfStatement",` +
		`"test":{"type":"Identifier","name":"a"},"consequent":{"type":"BlockStatement","body":[` +
		`{"type":"ReturnStatement","argument":null}]},"alternate":null}]}`)
	require.NoError(t, err)
	assert.Equal(t, "if (a) {\n  return;\n}", out)
}

func TestGenerator_GenerateFile_Span(t *testing.T) {
	exporter := setupTestTracer(t)
	store := textio.NewMemStore(map[string]string{"/ast/a.js.json": letTree})

	_, err := Run(context.Background(), NewGenerator(store, nil), "/ast/a.js.json", "/out")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "pipeline.Generator.GenerateFile", spans[0].Name)
}

// =============================================================================
// Round trip through both pipelines
// =============================================================================

func TestRoundTrip_ThroughFiles(t *testing.T) {
	src := "function add(a, b) {\n    return a + b;\n}\nconst total = [1, 2, 3].reduce(add, 0);"
	store := textio.NewMemStore(map[string]string{"/work/src/sum.js": src})

	treePath, err := Run(context.Background(), NewParser(store, nil), "/work/src/sum.js", "/work/ast")
	require.NoError(t, err)
	assert.Equal(t, "/work/ast/sum.json", treePath)

	jsPath, err := Run(context.Background(), NewGenerator(store, nil), treePath, "/work/out")
	require.NoError(t, err)
	assert.Equal(t, "/work/out/sum.js", jsPath)

	got, err := store.ReadText(jsPath)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestItemError(t *testing.T) {
	cause := errors.New("boom")
	err := &ItemError{Stage: StageWrite, Path: "/a.js", Err: cause}

	assert.Equal(t, "write /a.js: boom", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, StageWrite, StageOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, Stage(""), StageOf(cause))
}
