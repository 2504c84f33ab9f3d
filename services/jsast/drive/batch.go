// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"
)

// BatchReport summarizes a batch run.
type BatchReport struct {
	Succeeded int
	Failed    int

	// Results holds one entry per directory entry, in listing order.
	Results []Result
}

// RunBatch applies the pipeline to every entry of srcDir.
//
// Description:
//
//	Entries are listed once, non-recursively, and processed in listing
//	order with outputs placed in destDir. Each failed entry writes one
//	ErrorLine to out and the run moves on. Directories inside srcDir are
//	not skipped; they fail at the read stage like any unreadable entry.
//	Cancelling ctx stops the run between entries, never inside one.
//
// Inputs:
//
//	ctx     - Context for tracing and for stopping between entries.
//	srcDir  - Directory to list.
//	destDir - Directory that receives outputs.
//	out     - Receives diagnostic lines.
//
// Outputs:
//
//	BatchReport - Per-entry outcomes, complete up to the point the run stopped.
//	error       - Non-nil only if srcDir cannot be listed, out cannot be
//	              written, or ctx was cancelled.
func (r *Runner) RunBatch(ctx context.Context, srcDir, destDir string, out io.Writer) (BatchReport, error) {
	var report BatchReport

	names, err := r.store.List(srcDir)
	if err != nil {
		return report, fmt.Errorf("listing source directory: %w", err)
	}

	start := time.Now()
	report.Results = make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch stopped after %d of %d entries: %w", len(report.Results), len(names), err)
		}

		res := r.process(ctx, filepath.Join(srcDir, name), destDir)
		report.Results = append(report.Results, res)
		if res.OK() {
			report.Succeeded++
			continue
		}
		report.Failed++
		if _, err := fmt.Fprintln(out, ErrorLine(res.Input, res.Err)); err != nil {
			return report, fmt.Errorf("writing diagnostic: %w", err)
		}
	}

	r.options.Logger.Info("batch complete",
		slog.String("direction", string(r.transformer.Direction())),
		slog.String("src", srcDir),
		slog.String("dst", destDir),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", time.Since(start)),
	)
	return report, nil
}
