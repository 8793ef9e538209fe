// Command hspicedump prints the header and per-signal statistics of HSPICE
// binary waveform files. It can also export a SPICE3 raw file or repack the
// input with one of the supported compression codecs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/hspice"
	"github.com/arloliu/hspice/compress"
	"github.com/arloliu/hspice/format"
	"github.com/arloliu/hspice/internal/logging"
	"github.com/arloliu/hspice/spice3"
	"github.com/arloliu/hspice/waveform"
)

type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ",")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type config struct {
	signals   arrayFlags
	stream    bool
	chunkRows int
	strict    bool
	headOnly  bool
	rawOut    string
	pack      string
	logLevel  string
	dev       bool
}

func main() {
	var cfg config

	flag.Var(&cfg.signals, "signal", "Signal to include (repeatable, default all)")
	flag.BoolVar(&cfg.stream, "stream", false, "Decode in chunks instead of loading the whole file")
	flag.IntVar(&cfg.chunkRows, "chunk-rows", hspice.DefaultChunkRows, "Minimum rows per chunk in stream mode")
	flag.BoolVar(&cfg.strict, "strict", false, "Fail on misaligned blocks, trailing values and missing end markers")
	flag.BoolVar(&cfg.headOnly, "header", false, "Print only the header")
	flag.StringVar(&cfg.rawOut, "raw", "", "Write the first table as a SPICE3 binary raw file")
	flag.StringVar(&cfg.pack, "pack", "", "Write a compressed copy of the input (zstd, s2 or lz4)")
	flag.StringVar(&cfg.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.dev, "dev", false, "Human readable log output")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: hspicedump [flags] file...\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := logging.New(cfg.logLevel, cfg.dev, logging.WithFields(map[string]any{"cmd": "hspicedump"}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	failed := false
	for _, path := range flag.Args() {
		if err := run(path, &cfg, logger); err != nil {
			logger.Error("failed to process file", zap.String("path", path), zap.Error(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func run(path string, cfg *config, logger *zap.Logger) error {
	meta, err := hspice.ReadHeader(path)
	if err != nil {
		return err
	}
	printHeader(os.Stdout, path, meta)

	if cfg.pack != "" {
		if err := pack(path, cfg.pack, logger); err != nil {
			return err
		}
	}

	if cfg.headOnly {
		return nil
	}

	opts := []waveform.Option{waveform.WithLogger(logger), waveform.WithStrict(cfg.strict)}
	if len(cfg.signals) > 0 {
		opts = append(opts, waveform.WithSignals(cfg.signals...))
	}

	if cfg.stream {
		return streamSummary(path, cfg.chunkRows, opts)
	}

	start := time.Now()
	result, err := hspice.DecodeFile(path, opts...)
	if err != nil {
		return err
	}
	logger.Info("decoded file",
		zap.String("path", path),
		zap.Int("tables", len(result.Tables)),
		zap.Duration("elapsed", time.Since(start)),
	)

	printResult(os.Stdout, result)

	if cfg.rawOut != "" {
		if err := spice3.WriteFile(cfg.rawOut, result); err != nil {
			return err
		}
		logger.Info("wrote raw file", zap.String("path", cfg.rawOut))
	}

	return nil
}

func streamSummary(path string, chunkRows int, opts []waveform.Option) error {
	stream, err := hspice.OpenStream(path, chunkRows, opts...)
	if err != nil {
		return err
	}
	defer stream.Close()

	acc := newAccumulator()
	chunks := 0
	for chunk, err := range stream.All() {
		if err != nil {
			return err
		}
		chunks++
		acc.add(chunk)
	}

	meta := stream.Metadata()
	fmt.Fprintf(os.Stdout, "chunks: %d (dropped values: %d)\n", chunks, stream.DroppedValues())
	printStats(os.Stdout, acc.summaries(meta.ScaleName))

	return nil
}

func pack(path, algo string, logger *zap.Logger) error {
	ct := format.CompressionFromExtension(algo)
	if ct == format.CompressionNone {
		return fmt.Errorf("unknown compression %q", algo)
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	start := time.Now()
	packed, err := codec.Compress(data)
	if err != nil {
		return err
	}
	stats := compress.CompressionStats{
		Algorithm:         ct,
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(packed)),
		CompressionTimeNs: time.Since(start).Nanoseconds(),
	}

	out := path + "." + strings.ToLower(algo)
	if err := os.WriteFile(out, packed, 0o644); err != nil {
		return err
	}

	logger.Info("packed file",
		zap.String("path", out),
		zap.Stringer("algorithm", stats.Algorithm),
		zap.Int64("original", stats.OriginalSize),
		zap.Int64("compressed", stats.CompressedSize),
	)
	fmt.Fprintf(os.Stdout, "packed %s: %d -> %d bytes (%.1f%% saved)\n",
		out, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())

	return nil
}
