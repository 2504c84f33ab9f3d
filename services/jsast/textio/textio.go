// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package textio reads and writes whole text files.
package textio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store reads, writes and lists text files.
//
// Thread Safety: implementations must be safe for concurrent use.
type Store interface {
	// ReadText returns the full content of path.
	ReadText(path string) (string, error)

	// WriteText replaces the content of path with text, creating it if needed.
	WriteText(path, text string) error

	// List returns the entry names of dir, non-recursively.
	List(dir string) ([]string, error)
}

// =============================================================================
// OSStore
// =============================================================================

// OSStore is a Store backed by the local file system.
type OSStore struct{}

// NewOSStore returns a file system store.
func NewOSStore() *OSStore {
	return &OSStore{}
}

// ReadText implements Store.
func (s *OSStore) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText implements Store. Existing files are truncated.
func (s *OSStore) WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// List implements Store. Directories are included as entries; callers
// surface them as per-item read failures.
func (s *OSStore) List(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	defer f.Close()

	// Readdirnames keeps the platform's directory order.
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return names, nil
}

// =============================================================================
// MemStore
// =============================================================================

// MemStore is an in-memory Store keyed by cleaned path.
//
// Description:
//
//	Directories are implicit: List returns the direct children of any
//	path prefix, in lexical order. Reading a missing file returns an error
//	wrapping fs.ErrNotExist, matching OSStore.
//
// Thread Safety: safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMemStore returns a store seeded with files (path -> content).
func NewMemStore(files map[string]string) *MemStore {
	m := &MemStore{files: make(map[string]string, len(files))}
	for p, text := range files {
		m.files[filepath.Clean(p)] = text
	}
	return m
}

// ReadText implements Store.
func (m *MemStore) ReadText(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.files[filepath.Clean(path)]
	if !ok {
		return "", fmt.Errorf("reading %s: %w", path, fs.ErrNotExist)
	}
	return text, nil
}

// WriteText implements Store.
func (m *MemStore) WriteText(path, text string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("writing %q: %w", path, fs.ErrInvalid)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[filepath.Clean(path)] = text
	return nil
}

// List implements Store.
func (m *MemStore) List(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := filepath.Clean(dir) + string(filepath.Separator)
	seen := make(map[string]bool)
	for p := range m.files {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(rest, string(filepath.Separator))
		seen[name] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("listing %s: %w", dir, fs.ErrNotExist)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Files returns a copy of the stored files.
func (m *MemStore) Files() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.files))
	for p, text := range m.files {
		out[p] = text
	}
	return out
}

// IsNotExist reports whether err was caused by a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
