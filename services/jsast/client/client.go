// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package client talks to a jsast command running in streaming mode.
//
// The protocol is one path per line in, one line out per path: the output
// path on success, or a line starting with "[!] Error - " on failure. A
// Client keeps requests and replies paired by sending one request at a time.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/AleutianAI/jsast/services/jsast/drive"
)

var (
	// ErrClosed is returned by Transform after Close.
	ErrClosed = errors.New("client closed")

	// ErrInvalidRequest is returned for paths that cannot name a file:
	// blank paths, and paths whose line breaks would split the request.
	ErrInvalidRequest = errors.New("invalid request")
)

// RemoteError is a failure reported by the streaming peer.
type RemoteError struct {
	// Path is the request path.
	Path string

	// Message is the peer's error text.
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s: %s", e.Path, e.Message)
}

// Client sends paths to a streaming peer and reads back results.
//
// Thread Safety:
//
//	Safe for concurrent use. Requests are serialized so each reply is
//	matched to its request. Close may be called while a request waits.
type Client struct {
	mu      sync.Mutex // serializes requests; guards pending and err
	pending int        // replies still owed to abandoned requests
	err     error      // sticky read failure

	w       io.Writer
	r       *bufio.Reader
	replies chan reply
	start   sync.Once

	done      chan struct{}
	closeOnce sync.Once
	closer    func() error
	closeErr  error
}

type reply struct {
	line string
	err  error
}

// New returns a Client that writes requests to w and reads replies from r.
//
// Replies are read on a goroutine started with the first request. It ends
// after Close once r returns an error, so callers must Close the client and
// whoever owns r must close it.
func New(w io.Writer, r io.Reader) *Client {
	return &Client{
		w:       w,
		r:       bufio.NewReader(r),
		replies: make(chan reply),
		done:    make(chan struct{}),
	}
}

// Transform asks the peer to convert the file at path.
//
// Description:
//
//	Sends path as one line and waits for one reply line. The wait ends
//	early when ctx is done or the client is closed. The reply owed to a
//	request abandoned that way is discarded before the next request is
//	sent, so later requests still get their own replies.
//
// Inputs:
//
//	ctx  - Bounds the whole request, including the wait for the reply.
//	path - File for the peer to convert. Surrounding whitespace is trimmed.
//
// Outputs:
//
//	string - The output path the peer wrote.
//	error  - *RemoteError when the peer reports a failure, ErrInvalidRequest,
//	         ErrClosed, ctx.Err(), or an I/O error.
func (c *Client) Transform(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.ContainsAny(path, "\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRequest, path)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isClosed() {
		return "", ErrClosed
	}
	for c.pending > 0 {
		if _, err := c.await(ctx); err != nil {
			return "", err
		}
		c.pending--
	}

	c.start.Do(func() { go c.readReplies() })
	if _, err := io.WriteString(c.w, path+"\n"); err != nil {
		if c.isClosed() {
			return "", ErrClosed
		}
		return "", fmt.Errorf("sending request: %w", err)
	}

	line, err := c.await(ctx)
	if err != nil {
		if c.err == nil {
			c.pending++
		}
		return "", err
	}

	if rest, ok := strings.CutPrefix(line, drive.ErrorMarker); ok {
		msg, found := strings.CutPrefix(rest, path+": ")
		if !found {
			msg = rest
		}
		return "", &RemoteError{Path: path, Message: msg}
	}
	return line, nil
}

// await waits for the next reply line. c.mu must be held.
func (c *Client) await(ctx context.Context) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", ErrClosed
	case rep := <-c.replies:
		if rep.err != nil {
			c.err = fmt.Errorf("reading reply: %w", rep.err)
			if errors.Is(rep.err, io.EOF) {
				c.err = fmt.Errorf("reading reply: peer closed the stream: %w", io.ErrUnexpectedEOF)
			}
			return "", c.err
		}
		return strings.TrimRight(rep.line, "\r\n"), nil
	}
}

// readReplies feeds reply lines to await until the stream fails. After
// Close it keeps draining so a peer never blocks writing to it.
func (c *Client) readReplies() {
	for {
		line, err := c.r.ReadString('\n')
		select {
		case c.replies <- reply{line: line, err: err}:
		case <-c.done:
			for err == nil {
				_, err = c.r.ReadString('\n')
			}
			return
		}
		if err != nil {
			return
		}
	}
}

func (c *Client) isClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Close releases the client and ends any request still waiting with
// ErrClosed. For a client from StartProcess it closes the peer's stdin and
// waits for it to exit.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.closer != nil {
			c.closeErr = c.closer()
		}
	})
	return c.closeErr
}

// StartProcess runs a streaming jsast command and returns a Client bound to
// its stdin and stdout.
//
// Description:
//
//	The command is started with exec.CommandContext, so cancelling ctx
//	kills it. Its stderr, where it logs, is discarded unless stderr is
//	non-nil. Close ends the session by closing stdin, which the command
//	treats as the end of input, then waits for it to exit.
//
// Example:
//
//	c, err := client.StartProcess(ctx, nil, "js2ast")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	out, err := c.Transform(ctx, "/tmp/src/foo.js")
func StartProcess(ctx context.Context, stderr io.Writer, name string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}

	c := New(stdin, stdout)
	c.closer = func() error {
		closeErr := stdin.Close()
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("waiting for %s: %w", name, err)
		}
		return closeErr
	}
	return c, nil
}
