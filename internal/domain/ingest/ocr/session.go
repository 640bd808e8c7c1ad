// Package ocr wraps an external OCR engine behind a session-scoped handle.
// The session owns a temp workspace that lives until Close is called; a
// session that is never closed leaks it. Recognize calls against one session
// are serialized; callers wanting parallel OCR open independent sessions.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Recognizer is the engine contract the dispatcher consumes. The production
// implementation shells out to tesseract; tests substitute fakes.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, languages []string) (string, error)
	Close() error
}

// ErrClosed is returned when a recognize call races a Close.
var ErrClosed = errors.New("ocr: session closed")

// Session is a long-lived tesseract worker handle. Acquire one lazily per
// ingestion session and release it with Close when the session ends.
type Session struct {
	mu      sync.Mutex
	binPath string
	workDir string
	closed  bool
	calls   int
}

// NewSession validates that the engine binary is reachable and prepares the
// session workspace.
func NewSession(binPath string) (*Session, error) {
	if binPath == "" {
		binPath = "tesseract"
	}
	if _, err := exec.LookPath(binPath); err != nil {
		return nil, fmt.Errorf("ocr engine not available: %w", err)
	}
	dir, err := os.MkdirTemp("", "finparse-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create ocr workspace: %w", err)
	}
	return &Session{binPath: binPath, workDir: dir}, nil
}

// Recognize runs the engine over the image bytes and returns the recognized
// text. At most one call is in flight per session.
func (s *Session) Recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	s.calls++

	inPath := filepath.Join(s.workDir, fmt.Sprintf("in-%d", s.calls))
	outBase := filepath.Join(s.workDir, fmt.Sprintf("out-%d", s.calls))
	if err := os.WriteFile(inPath, image, 0o600); err != nil {
		return "", fmt.Errorf("write ocr input: %w", err)
	}
	defer os.Remove(inPath)

	langs := "spa+eng"
	if len(languages) > 0 {
		langs = strings.Join(languages, "+")
	}

	// PSM 4: single column of variable-size text, which suits receipts and
	// statement photos.
	cmd := exec.CommandContext(ctx, s.binPath, inPath, outBase, "-l", langs, "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ocr engine failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	outPath := outBase + ".txt"
	defer os.Remove(outPath)
	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read ocr output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Close releases the session workspace. Safe to call once; further
// recognize calls fail with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return os.RemoveAll(s.workDir)
}
