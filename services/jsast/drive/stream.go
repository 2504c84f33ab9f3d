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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/jsast/services/jsast/naming"
	"github.com/AleutianAI/jsast/services/jsast/pipeline"
)

// maxLineBytes bounds one input line. Paths are far shorter.
const maxLineBytes = 1024 * 1024

// StreamStats counts what a streaming run processed.
type StreamStats struct {
	Lines     int
	Succeeded int
	Failed    int
}

// inputLine is one line read from the stream.
type inputLine struct {
	text    string
	tooLong bool
	err     error
}

// RunStream reads one path per line from in and answers each on out.
//
// Description:
//
//	Every line read produces exactly one output line, either the output
//	path or an ErrorLine, and out is flushed after each so a peer waiting
//	on the reply is never stuck behind a buffer. Lines are trimmed of
//	surrounding whitespace. A blank line fails as an empty path and a line
//	longer than 1 MiB fails on its own; neither ends the run. The run ends
//	when in reaches EOF, which is how a peer stops it.
//
//	Lines are read on a separate goroutine so that cancelling ctx stops the
//	run even while it is blocked waiting for input. An item that has
//	started is always finished and answered first.
//
// Inputs:
//
//	ctx     - Context for tracing and for stopping between lines.
//	destDir - Output directory, or "" to write outputs next to inputs.
//	in      - Line source, usually stdin.
//	out     - Reply sink, usually stdout.
//
// Outputs:
//
//	StreamStats - Counts of lines read and items processed.
//	error       - Non-nil on a read or write failure or cancellation. EOF
//	              is a normal end and returns nil.
func (r *Runner) RunStream(ctx context.Context, destDir string, in io.Reader, out io.Writer) (StreamStats, error) {
	var stats StreamStats
	direction := string(r.transformer.Direction())

	if isTerminal(in) {
		r.options.Logger.Info("reading one path per line from the terminal; end input with Ctrl-D",
			slog.String("direction", direction),
		)
	}

	stop := make(chan struct{})
	defer close(stop)
	lines := make(chan inputLine)
	go readLines(bufio.NewReader(in), lines, stop)

	w := bufio.NewWriter(out)
	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("stream stopped after %d lines: %w", stats.Lines, err)
		}

		var line inputLine
		var open bool
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("stream stopped after %d lines: %w", stats.Lines, ctx.Err())
		case line, open = <-lines:
		}
		if !open {
			break
		}
		if line.err != nil {
			return stats, fmt.Errorf("reading input: %w", line.err)
		}

		stats.Lines++
		r.options.Metrics.ObserveLine()

		var res Result
		if line.tooLong {
			res = r.reject(fmt.Errorf("%w: line exceeds %d bytes", naming.ErrInvalidPath, maxLineBytes))
		} else {
			res = r.process(ctx, strings.TrimSpace(line.text), destDir)
		}

		reply := res.Output
		if res.OK() {
			stats.Succeeded++
		} else {
			stats.Failed++
			reply = ErrorLine(res.Input, res.Err)
		}

		if _, err := w.WriteString(reply + "\n"); err != nil {
			return stats, fmt.Errorf("writing reply: %w", err)
		}
		if err := w.Flush(); err != nil {
			return stats, fmt.Errorf("writing reply: %w", err)
		}
	}

	r.options.Logger.Info("stream closed",
		slog.String("direction", direction),
		slog.Int("lines", stats.Lines),
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("failed", stats.Failed),
	)
	return stats, nil
}

// reject records a line that failed before it could name an item.
func (r *Runner) reject(err error) Result {
	res := Result{Err: &pipeline.ItemError{Stage: pipeline.StagePath, Err: err}}
	r.options.Logger.Debug("line rejected",
		slog.String("direction", string(r.transformer.Direction())),
		slog.String("error", err.Error()),
	)
	r.options.Metrics.ObserveItem(string(r.transformer.Direction()), string(pipeline.StagePath), 0)
	return res
}

// readLines sends every line of br on lines and closes it at EOF. A read
// error other than EOF is sent as the last element. It returns early once
// stop is closed.
func readLines(br *bufio.Reader, lines chan<- inputLine, stop <-chan struct{}) {
	defer close(lines)
	send := func(l inputLine) bool {
		select {
		case lines <- l:
			return true
		case <-stop:
			return false
		}
	}

	for {
		var buf []byte
		tooLong, seen := false, false
		var err error
		for {
			var chunk []byte
			chunk, err = br.ReadSlice('\n')
			seen = seen || len(chunk) > 0
			if !tooLong {
				if len(buf)+len(chunk) > maxLineBytes {
					tooLong, buf = true, nil
				} else {
					buf = append(buf, chunk...)
				}
			}
			if !errors.Is(err, bufio.ErrBufferFull) {
				break
			}
		}

		if seen && !send(inputLine{text: string(buf), tooLong: tooLong}) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				send(inputLine{err: err})
			}
			return
		}
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
