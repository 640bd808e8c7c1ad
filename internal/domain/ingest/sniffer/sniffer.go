// Package sniffer detects the shape of delimited text files: the field
// delimiter, whether the first line is a header, and which role a raw token
// plays (date, amount, or free text). Header keywords are bilingual because
// the statements this pipeline sees mix Spanish and English exports.
package sniffer

import (
	"regexp"
	"strings"
)

// headerKeywords mark a first line as a header row (case-insensitive
// substring match).
var headerKeywords = []string{
	"date", "fecha",
	"amount", "monto",
	"description", "descripcion", "descripción",
}

var (
	dateSlashRe = regexp.MustCompile(`^\s*\d{1,2}/\d{1,2}/\d{2,4}\s*$`)
	dateDashRe  = regexp.MustCompile(`^\s*\d{1,2}-\d{1,2}-\d{2,4}\s*$`)
	dateISORe   = regexp.MustCompile(`^\s*\d{4}-\d{2}-\d{2}\s*$`)
	amountRe    = regexp.MustCompile(`^\s*\(?-?\s*(?:[$₲€]|(?i:gs)\.?)?\s*-?\d[\d.,]*\)?\s*$`)
)

// DetectDelimiter inspects the first non-empty line and picks the delimiter:
// semicolon wins if present, then tab, then comma.
func DetectDelimiter(data string) rune {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.ContainsRune(line, ';'):
			return ';'
		case strings.ContainsRune(line, '\t'):
			return '\t'
		default:
			return ','
		}
	}
	return ','
}

// HasHeader reports whether the line carries any of the bilingual header
// keywords.
func HasHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SplitFields splits a delimited line respecting double-quoted fields. A
// quote character toggles the in-quotes state; the delimiter only splits
// while outside quotes. Every field is trimmed.
func SplitFields(line string, delimiter rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// LooksLikeDate reports whether the token is shaped like a calendar date.
// Date-shaped tokens are never amount-like: the classifiers partition the
// token space.
func LooksLikeDate(token string) bool {
	return dateSlashRe.MatchString(token) ||
		dateDashRe.MatchString(token) ||
		dateISORe.MatchString(token)
}

// LooksLikeAmount reports whether the token is numeric once currency symbols
// are set aside. Tokens that classify as dates are excluded, so a
// dash-delimited date never reads as arithmetic.
func LooksLikeAmount(token string) bool {
	if LooksLikeDate(token) {
		return false
	}
	return amountRe.MatchString(token)
}
