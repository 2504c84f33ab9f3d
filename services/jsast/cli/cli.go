// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cli builds the js2ast and ast2js cobra commands.
//
// Both commands share one shape: two positional arguments run batch mode
// over a directory, fewer run streaming mode over stdin. Configuration is
// resolved once (defaults, then --config, then flags) into a config.Config
// that is passed down explicitly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/jsast/services/jsast/codegen"
	"github.com/AleutianAI/jsast/services/jsast/config"
	"github.com/AleutianAI/jsast/services/jsast/drive"
	"github.com/AleutianAI/jsast/services/jsast/logging"
	"github.com/AleutianAI/jsast/services/jsast/metrics"
	"github.com/AleutianAI/jsast/services/jsast/parser"
	"github.com/AleutianAI/jsast/services/jsast/pipeline"
	"github.com/AleutianAI/jsast/services/jsast/telemetry"
	"github.com/AleutianAI/jsast/services/jsast/textio"
)

// Version is reported by --version and recorded on exported spans.
var Version = "0.1.0"

// Streams are the process's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns os.Stdin, os.Stdout and os.Stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// flags holds the raw flag values before they are merged into a Config.
type flags struct {
	configPath  string
	sourceType  string
	positions   bool
	maxFileSize int
	jsonIndent  string
	indent      string
	logLevel    string
	logFormat   string
	metricsFile string
	traceFile   string
}

// NewParseCommand returns the js2ast command: JavaScript to ESTree JSON.
func NewParseCommand(streams Streams) *cobra.Command {
	return newCommand(config.DirectionParse, streams)
}

// NewGenerateCommand returns the ast2js command: ESTree JSON to JavaScript.
func NewGenerateCommand(streams Streams) *cobra.Command {
	return newCommand(config.DirectionGenerate, streams)
}

func newCommand(direction string, streams Streams) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Args:    cobra.MaximumNArgs(2),
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &f, direction, args)
			if err != nil {
				return err
			}
			// Arguments are fine from here on; runtime errors need no usage text.
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg, streams)
		},
	}

	if direction == config.DirectionParse {
		cmd.Use = "js2ast [SRC_DIR DEST_DIR | DEST_DIR]"
		cmd.Short = "Convert JavaScript source files to ESTree JSON"
		cmd.Long = `Convert JavaScript source files to ESTree JSON.

With SRC_DIR and DEST_DIR, every entry of SRC_DIR is parsed and its tree is
written to DEST_DIR as <name>.json. Without them, one path per line is read
from stdin and the tree is written next to the source (or into DEST_DIR);
each line is answered on stdout with the output path or a line starting
with "[!] Error - ".`
	} else {
		cmd.Use = "ast2js DEST_DIR | ast2js SRC_DIR DEST_DIR"
		cmd.Short = "Convert ESTree JSON files back to JavaScript source"
		cmd.Long = `Convert ESTree JSON files back to JavaScript source.

With SRC_DIR and DEST_DIR, every tree in SRC_DIR is rendered to DEST_DIR. With
only DEST_DIR, one tree path per line is read from stdin; "<hash>.js.json"
is written as DEST_DIR/<hash>.js and each line is answered on stdout with
the output path or a line starting with "[!] Error - ".`
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML config file overlaying the defaults")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	fs.StringVar(&f.traceFile, "trace-file", "", "export trace spans as JSON to this file")
	if direction == config.DirectionParse {
		fs.StringVar(&f.sourceType, "source-type", "", "script or module")
		fs.BoolVar(&f.positions, "positions", false, "attach range and loc to every node")
		fs.IntVar(&f.maxFileSize, "max-file-size", 0, "reject sources larger than this many bytes")
		fs.StringVar(&f.jsonIndent, "json-indent", "", "per-level indentation of the JSON output")
	} else {
		fs.StringVar(&f.indent, "indent", "", "per-level indentation of the generated source")
	}

	return cmd
}

// resolveConfig merges defaults, the config file and changed flags, derives
// the mode from args and validates the result.
func resolveConfig(cmd *cobra.Command, f *flags, direction string, args []string) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("source-type") {
		cfg.Parser.SourceType = f.sourceType
	}
	if changed("positions") {
		cfg.Parser.Positions = f.positions
	}
	if changed("max-file-size") {
		cfg.Parser.MaxFileSize = f.maxFileSize
	}
	if changed("json-indent") {
		cfg.Parser.JSONIndent = f.jsonIndent
	}
	if changed("indent") {
		cfg.Generator.Indent = f.indent
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed("trace-file") {
		cfg.TraceFile = f.traceFile
	}

	if err := cfg.SetArgs(direction, args); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// run executes one configured run.
//
// Description:
//
//	Builds the logger, tracing, metrics and pipeline from cfg, then drives
//	batch or streaming mode. Item failures are reported on the output and
//	do not make run fail; only setup errors and errors that stop the run
//	as a whole are returned.
func run(ctx context.Context, cfg config.Config, streams Streams) (err error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, streams.Err)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.TraceFile, Version)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, shutdown(context.WithoutCancel(ctx)))
	}()

	rec := metrics.New()
	defer func() {
		err = errors.Join(err, rec.WriteFile(cfg.MetricsFile))
	}()

	store := textio.NewOSStore()
	runner := drive.New(newTransformer(cfg, store, logger), store,
		drive.WithLogger(logger),
		drive.WithMetrics(rec),
	)

	logger.Debug("starting",
		slog.String("direction", cfg.Direction),
		slog.String("mode", cfg.Mode),
		slog.String("src", cfg.SourceDir),
		slog.String("dst", cfg.DestDir),
	)

	switch cfg.Mode {
	case config.ModeBatch:
		_, err = runner.RunBatch(ctx, cfg.SourceDir, cfg.DestDir, streams.Out)
	case config.ModeStream:
		_, err = runner.RunStream(ctx, cfg.DestDir, streams.In, streams.Out)
	default:
		err = fmt.Errorf("%w: unknown mode %q", config.ErrInvalidConfig, cfg.Mode)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}

// newTransformer builds the pipeline for cfg.Direction.
func newTransformer(cfg config.Config, store textio.Store, logger *slog.Logger) pipeline.Transformer {
	if cfg.Direction == config.DirectionGenerate {
		gen := codegen.New(codegen.WithIndent(cfg.Generator.Indent))
		return pipeline.NewGenerator(store, gen, pipeline.WithLogger(logger))
	}

	p := parser.New(
		parser.WithSourceType(cfg.Parser.SourceType),
		parser.WithPositions(cfg.Parser.Positions),
		parser.WithMaxFileSize(cfg.Parser.MaxFileSize),
	)
	return pipeline.NewParser(store, p,
		pipeline.WithJSONIndent(cfg.Parser.JSONIndent),
		pipeline.WithLogger(logger),
	)
}
