// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config holds the explicit run configuration of the jsast commands.
//
// A Config is built once per process from embedded defaults, an optional
// YAML file and the command line, validated, and then passed by value into
// the drive functions. Nothing reads configuration from globals.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Embedded Defaults
// =============================================================================

//go:embed defaults.yaml
var defaultsYAML []byte

// =============================================================================
// Types
// =============================================================================

// Directions.
const (
	DirectionParse    = "parse"
	DirectionGenerate = "generate"
)

// Modes.
const (
	ModeBatch  = "batch"
	ModeStream = "stream"
)

var (
	// ErrUsage is returned when the positional arguments fit no mode.
	ErrUsage = errors.New("usage")

	// ErrInvalidConfig is returned when a setting fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// ParserConfig configures the parse direction.
type ParserConfig struct {
	SourceType  string `yaml:"source_type" validate:"oneof=script module"`
	Positions   bool   `yaml:"positions"`
	MaxFileSize int    `yaml:"max_file_size" validate:"gt=0"`
	JSONIndent  string `yaml:"json_indent" validate:"max=8"`
}

// GeneratorConfig configures the generate direction.
type GeneratorConfig struct {
	Indent string `yaml:"indent" validate:"max=8"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Config is the complete configuration of one run.
//
// Direction, Mode, SourceDir and DestDir come from the command line only;
// everything else may also come from YAML.
type Config struct {
	Direction string `yaml:"-" validate:"oneof=parse generate"`
	Mode      string `yaml:"-" validate:"oneof=batch stream"`
	SourceDir string `yaml:"-"`
	DestDir   string `yaml:"-"`

	Parser    ParserConfig    `yaml:"parser"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`

	MetricsFile string `yaml:"metrics_file"`
	TraceFile   string `yaml:"trace_file"`
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if err := decode(bytes.NewReader(defaultsYAML), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults.yaml: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with the YAML file at path.
//
// Description:
//
//	Keys present in the file replace the defaults; absent keys keep them.
//	Unknown keys are rejected so typos do not pass silently. An empty
//	path returns the defaults.
//
// Outputs:
//
//	Config - The merged configuration, not yet validated.
//	error  - Non-nil if the file cannot be read or parsed.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// =============================================================================
// Command Line
// =============================================================================

// SetArgs derives the mode from the positional arguments.
//
// Description:
//
//	Two arguments select batch mode: source directory, destination
//	directory. Fewer select streaming mode, where the single optional
//	argument is the destination directory. The generate direction needs a
//	destination in both modes.
//
// Inputs:
//
//	direction - DirectionParse or DirectionGenerate.
//	args      - Positional arguments.
//
// Outputs:
//
//	error - ErrUsage if args fit no mode.
func (c *Config) SetArgs(direction string, args []string) error {
	c.Direction = direction
	switch len(args) {
	case 2:
		c.Mode = ModeBatch
		c.SourceDir, c.DestDir = args[0], args[1]
	case 1:
		c.Mode = ModeStream
		c.SourceDir, c.DestDir = "", args[0]
	case 0:
		if direction == DirectionGenerate {
			return fmt.Errorf("%w: generate needs a destination directory", ErrUsage)
		}
		c.Mode = ModeStream
		c.SourceDir, c.DestDir = "", ""
	default:
		return fmt.Errorf("%w: expected at most 2 arguments, got %d", ErrUsage, len(args))
	}
	return nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks every setting.
//
// Outputs:
//
//	error - ErrInvalidConfig listing each failing field, or nil.
func (c Config) Validate() error {
	var problems []string

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
	}

	if c.Mode == ModeBatch && (c.SourceDir == "" || c.DestDir == "") {
		problems = append(problems, "batch mode needs source and destination directories")
	}
	if c.Direction == DirectionGenerate && c.DestDir == "" {
		problems = append(problems, "generate needs a destination directory")
	}
	if strings.TrimSpace(c.Parser.JSONIndent) != "" || strings.TrimSpace(c.Generator.Indent) != "" {
		problems = append(problems, "indentation must be whitespace")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}
