// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command js2ast converts JavaScript source files to ESTree JSON.
//
// Usage:
//
//	go run ./cmd/js2ast SRC_DIR DEST_DIR
//	go run ./cmd/js2ast --source-type module --positions SRC_DIR DEST_DIR
//
// Streaming (one path per line on stdin, one result per line on stdout):
//
//	printf '/tmp/src/foo.js\n' | go run ./cmd/js2ast
//	printf '/tmp/src/foo.js\n' | go run ./cmd/js2ast /tmp/ast
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/jsast/services/jsast/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Restore default handling so a second signal kills the process.
		<-ctx.Done()
		stop()
	}()

	if err := cli.NewParseCommand(cli.StdStreams()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
