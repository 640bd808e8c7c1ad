// Package pdfscan recovers readable text from PDF files without decoding
// the PDF object model. It walks the raw bytes, keeps printable ASCII and
// line breaks, and throws everything else away. The output is intentionally
// lossy: compressed content streams stay opaque, but uncompressed text
// fragments, which most statement PDFs carry, survive intact and feed the
// free-text extractor.
package pdfscan

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{2,}`)
)

// Extract scans raw PDF bytes and returns the printable text it can find.
func Extract(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) / 4)

	for _, c := range data {
		switch {
		case c == '\n' || c == '\r':
			b.WriteByte('\n')
		case c >= 0x20 && c <= 0x7e:
			b.WriteByte(c)
		default:
			b.WriteByte(' ')
		}
	}

	text := spaceRunRe.ReplaceAllString(b.String(), " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}
