// Command ingest extracts transactions from a document or an informal note
// and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rvelazco/finparse/internal/domain/ingest/ocr"
	"github.com/rvelazco/finparse/internal/domain/ingest/service"
	"github.com/rvelazco/finparse/internal/domain/toon"
	"github.com/rvelazco/finparse/pkg/ai"
	"github.com/rvelazco/finparse/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		filePath = flag.String("file", "", "document to extract transactions from (csv, xlsx, pdf, image, txt)")
		note     = flag.String("note", "", "informal expense note to parse")
		rawOnly  = flag.Bool("raw", false, "return recovered text only, skip transaction extraction")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case *filePath != "":
		return runFile(ctx, cfg, logger, *filePath, *rawOnly)
	case *note != "":
		return runNote(ctx, cfg, logger, *note)
	default:
		flag.Usage()
		return fmt.Errorf("one of -file or -note is required")
	}
}

func runFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, rawOnly bool) error {
	svc := service.New(logger, func() (ocr.Recognizer, error) {
		return ocr.NewSession(cfg.OCR.BinaryPath)
	})
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("closing ocr session", "error", err)
		}
	}()

	result := svc.ExtractFile(ctx, path, service.Options{
		RawTextOnly:  rawOnly,
		OCRLanguages: []string{cfg.OCR.Languages},
	})
	return printJSON(renderResult(result, cfg.Defaults.Currency))
}

func runNote(ctx context.Context, cfg *config.Config, logger *slog.Logger, note string) error {
	defaults := toon.Defaults{
		Currency: cfg.Defaults.Currency,
		Source:   cfg.Defaults.SourceAccount,
		Category: cfg.Defaults.Category,
	}

	var completer toon.Completer
	if cfg.Gemini.APIKey != "" {
		client, err := ai.NewClient(ctx, ai.Options{
			Model:              cfg.Gemini.Model,
			RateLimitPerMinute: cfg.Gemini.RateLimitPerMinute,
			MaxRetries:         cfg.Gemini.MaxRetries,
			Logger:             logger,
		})
		if err != nil {
			logger.Warn("model client unavailable, deterministic parsing only", "error", err)
		} else {
			completer = client
		}
	}

	parser := toon.NewParser(completer, defaults, logger)
	return printJSON(parser.Parse(ctx, note))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
