// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package drive applies a pipeline to many items: every entry of a
// directory (batch mode) or every path read from a line stream (streaming
// mode).
//
// Items are processed one at a time, in order, and a failed item never
// stops the run. Failures are reported as "[!] Error - <path>: <message>"
// lines on the output writer.
package drive

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AleutianAI/jsast/services/jsast/metrics"
	"github.com/AleutianAI/jsast/services/jsast/pipeline"
	"github.com/AleutianAI/jsast/services/jsast/textio"
)

// ErrorMarker starts every diagnostic line.
const ErrorMarker = "[!] Error - "

// Result is the outcome of one item.
type Result struct {
	// Input is the path the item was read from.
	Input string

	// Output is the path written. Empty on failure.
	Output string

	// Err is nil on success, otherwise usually a *pipeline.ItemError.
	Err error

	// Duration is the time the item took.
	Duration time.Duration
}

// OK reports whether the item succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Runner drives one pipeline direction.
//
// Thread Safety:
//
//	A Runner holds no per-run state, but a single run is sequential by
//	contract. Concurrent runs on one Runner are safe when the pipeline and
//	store are.
type Runner struct {
	transformer pipeline.Transformer
	store       textio.Store
	options     Options
}

// Options configures a Runner.
type Options struct {
	// Logger receives per-item debug logs and run summaries.
	// Default: slog.Default()
	Logger *slog.Logger

	// Metrics records per-item counters. Nil records nothing.
	Metrics *metrics.Recorder
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// New creates a Runner.
//
// Inputs:
//
//	t     - The pipeline to apply per item. Must not be nil.
//	store - Used to list batch source directories. Must not be nil.
//	opts  - Optional configuration.
func New(t pipeline.Transformer, store textio.Store, opts ...Option) *Runner {
	options := Options{Logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	return &Runner{transformer: t, store: store, options: options}
}

// process runs one item and records its outcome.
func (r *Runner) process(ctx context.Context, input, destDir string) Result {
	start := time.Now()
	output, err := pipeline.Run(ctx, r.transformer, input, destDir)
	res := Result{Input: input, Output: output, Err: err, Duration: time.Since(start)}

	direction := string(r.transformer.Direction())
	stage := ""
	if err != nil {
		stage = string(pipeline.StageOf(err))
		if stage == "" {
			stage = "unknown"
		}
		r.options.Logger.Debug("item failed",
			slog.String("direction", direction),
			slog.String("path", input),
			slog.String("stage", stage),
			slog.String("error", err.Error()),
		)
	} else {
		r.options.Logger.Debug("item done",
			slog.String("direction", direction),
			slog.String("path", input),
			slog.String("output", output),
			slog.Duration("duration", res.Duration),
		)
	}
	r.options.Metrics.ObserveItem(direction, stage, res.Duration)
	return res
}

// ErrorLine formats the diagnostic line of a failed item, without a
// trailing newline.
//
// Description:
//
//	The message is the underlying cause of err with all whitespace runs
//	collapsed to single spaces, so the line contract of streaming mode
//	holds even for multi-line parser messages.
//
// Example:
//
//	ErrorLine("/tmp/x.js", err)  // "[!] Error - /tmp/x.js: Line 1: Unexpected token"
func ErrorLine(path string, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		var ie *pipeline.ItemError
		if errors.As(err, &ie) && ie.Err != nil {
			msg = ie.Err.Error()
		}
	}
	return ErrorMarker + lineBreaks.Replace(path) + ": " + strings.Join(strings.Fields(msg), " ")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
