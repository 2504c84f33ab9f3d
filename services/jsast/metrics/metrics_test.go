// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveItem(t *testing.T) {
	r := New()

	r.ObserveItem("parse", "", 2*time.Millisecond)
	r.ObserveItem("parse", "", time.Millisecond)
	r.ObserveItem("parse", "read", time.Millisecond)
	r.ObserveItem("generate", "generate", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.itemsTotal.WithLabelValues("parse", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsTotal.WithLabelValues("parse", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsTotal.WithLabelValues("generate", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failuresTotal.WithLabelValues("parse", "read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failuresTotal.WithLabelValues("generate", "generate")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.itemDuration))
}

func TestRecorder_ObserveLine(t *testing.T) {
	r := New()
	r.ObserveLine()
	r.ObserveLine()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.linesTotal))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveItem("parse", "", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.itemsTotal.WithLabelValues("parse", OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.itemsTotal.WithLabelValues("parse", OutcomeSuccess)))
}

func TestRecorder_WriteFile(t *testing.T) {
	r := New()
	r.ObserveItem("generate", "", time.Millisecond)

	path := filepath.Join(t.TempDir(), "jsast.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `jsast_pipeline_items_total{direction="generate",outcome="success"} 1`)
	assert.Contains(t, text, "jsast_pipeline_item_duration_seconds_bucket")
}

func TestRecorder_WriteFileBadDirectory(t *testing.T) {
	r := New()
	r.ObserveLine()
	err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "jsast.prom"))
	assert.Error(t, err)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveItem("parse", "", time.Millisecond)
		r.ObserveLine()
	})
	assert.NoError(t, r.WriteFile("/nonexistent/dir/file.prom"))
	assert.Nil(t, r.Registry())
}
