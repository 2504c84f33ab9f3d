// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_WritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	shutdown, err := Setup(context.Background(), path, "test")
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "test.Span")
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"test.Span"`)
	assert.Contains(t, string(data), ServiceName)
}

func TestSetup_EmptyPathIsNoop(t *testing.T) {
	prev := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, prev, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_RestoresProvider(t *testing.T) {
	prev := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), filepath.Join(t.TempDir(), "t.json"), "test")
	require.NoError(t, err)
	assert.NotEqual(t, prev, otel.GetTracerProvider())

	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, prev, otel.GetTracerProvider())
}

func TestSetup_BadPath(t *testing.T) {
	_, err := Setup(context.Background(), filepath.Join(t.TempDir(), "missing", "t.json"), "test")
	assert.Error(t, err)
}
