// Package service routes a document to an extraction strategy by file
// suffix and wraps the outcome in the Result envelope. It owns the lazy,
// session-scoped OCR handle; callers must Close the service when the
// ingestion session ends or the underlying worker leaks.
package service

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/internal/domain/ingest/freetext"
	"github.com/rvelazco/finparse/internal/domain/ingest/ocr"
	"github.com/rvelazco/finparse/internal/domain/ingest/pdfscan"
	"github.com/rvelazco/finparse/internal/domain/ingest/tabular"
)

// Format tags reported in the Result envelope.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
	FormatImage = "image"
	FormatText  = "text"
)

var imageSuffixes = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// Options tweak a single extraction call.
type Options struct {
	// RawTextOnly skips transaction extraction and returns only the
	// recovered text. The Succeeded flag then tracks text recovery.
	RawTextOnly bool
	// OCRLanguages are hints passed to the OCR engine.
	OCRLanguages []string
}

// OCRFactory builds the session-scoped OCR worker on first use.
type OCRFactory func() (ocr.Recognizer, error)

// Service is the document extraction front door.
type Service struct {
	logger     *slog.Logger
	ocrFactory OCRFactory

	ocrOnce    sync.Once
	recognizer ocr.Recognizer
	ocrErr     error
}

// New builds a Service. A nil logger falls back to slog.Default; a nil
// factory opens a default tesseract session on first image.
func New(logger *slog.Logger, factory OCRFactory) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = func() (ocr.Recognizer, error) { return ocr.NewSession("") }
	}
	return &Service{logger: logger, ocrFactory: factory}
}

// ExtractFile reads a file from disk and extracts candidates from it. An
// unreadable file yields a failed Result with the error recorded; nothing
// propagates as a panic or error value past this boundary.
func (s *Service) ExtractFile(ctx context.Context, path string, opts Options) ingest.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		filesTotal.WithLabelValues("unknown", "io_error").Inc()
		return ingest.Result{Format: formatFor(path), Error: err.Error()}
	}
	return s.ExtractBytes(ctx, filepath.Base(path), data, opts)
}

// ExtractBytes dispatches on the lower-cased filename suffix: csv to the
// delimited reader, xlsx/xls to the spreadsheet reader, pdf to the byte
// scanner, image suffixes to OCR, and everything else to a raw text read
// feeding the free-text extractor.
func (s *Service) ExtractBytes(ctx context.Context, filename string, data []byte, opts Options) ingest.Result {
	format := formatFor(filename)

	var result ingest.Result
	switch format {
	case FormatCSV:
		result = s.extractCSV(data, opts)
	case FormatExcel:
		result = s.extractExcel(data, opts)
	case FormatPDF:
		result = extractFromText(pdfscan.Extract(data), FormatPDF, opts)
	case FormatImage:
		result = s.extractImage(ctx, data, opts)
	default:
		result = extractFromText(string(data), FormatText, opts)
	}

	outcome := "failed"
	if result.Succeeded {
		outcome = "ok"
	}
	filesTotal.WithLabelValues(format, outcome).Inc()
	return result
}

// ExtractText runs the free-text extractor over text the caller already has.
func (s *Service) ExtractText(text string) ingest.Result {
	return extractFromText(text, FormatText, Options{})
}

// Close releases the OCR worker if one was acquired.
func (s *Service) Close() error {
	if s.recognizer != nil {
		return s.recognizer.Close()
	}
	return nil
}

func (s *Service) extractCSV(data []byte, opts Options) ingest.Result {
	raw := string(data)
	if opts.RawTextOnly {
		return extractFromText(raw, FormatCSV, opts)
	}
	candidates := tabular.ExtractCSV(data)
	if len(candidates) == 0 {
		// Nothing tabular recovered; sweep the same bytes as free text.
		extractionFallbacks.Inc()
		candidates = freetext.Extract(raw)
	}
	return finalize(candidates, raw, FormatCSV)
}

func (s *Service) extractExcel(data []byte, opts Options) ingest.Result {
	if opts.RawTextOnly {
		text, err := tabular.ExcelText(bytes.NewReader(data))
		if err != nil {
			return ingest.Result{Format: FormatExcel, Error: err.Error()}
		}
		return extractFromText(text, FormatExcel, opts)
	}
	candidates, err := tabular.ExtractExcel(bytes.NewReader(data))
	if err != nil {
		return ingest.Result{Format: FormatExcel, Error: err.Error()}
	}
	return finalize(candidates, "", FormatExcel)
}

func (s *Service) extractImage(ctx context.Context, data []byte, opts Options) ingest.Result {
	rec, err := s.ocrRecognizer()
	if err != nil {
		ocrFailures.Inc()
		return ingest.Result{Format: FormatImage, Error: err.Error()}
	}

	text, err := rec.Recognize(ctx, data, opts.OCRLanguages)
	if err != nil {
		ocrFailures.Inc()
		s.logger.Warn("ocr recognition failed", "error", err)
		return ingest.Result{Format: FormatImage, Error: err.Error()}
	}
	return extractFromText(text, FormatImage, opts)
}

// ocrRecognizer lazily acquires the session-scoped worker. All image
// extractions in this session share it.
func (s *Service) ocrRecognizer() (ocr.Recognizer, error) {
	s.ocrOnce.Do(func() {
		s.recognizer, s.ocrErr = s.ocrFactory()
	})
	return s.recognizer, s.ocrErr
}

func extractFromText(text, format string, opts Options) ingest.Result {
	if opts.RawTextOnly {
		return ingest.Result{
			Succeeded: strings.TrimSpace(text) != "",
			RawText:   text,
			Format:    format,
		}
	}
	return finalize(freetext.Extract(text), text, format)
}

// finalize enforces the envelope invariant: Succeeded exactly when at least
// one transaction was recovered.
func finalize(candidates []ingest.Candidate, rawText, format string) ingest.Result {
	return ingest.Result{
		Succeeded:    len(candidates) > 0,
		Transactions: candidates,
		RawText:      rawText,
		Format:       format,
	}
}

func formatFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch {
	case ext == "csv":
		return FormatCSV
	case ext == "xlsx" || ext == "xls":
		return FormatExcel
	case ext == "pdf":
		return FormatPDF
	case imageSuffixes[ext]:
		return FormatImage
	default:
		return FormatText
	}
}
