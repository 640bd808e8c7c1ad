package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rvelazco/finparse/internal/domain/ingest"
	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
	"github.com/rvelazco/finparse/internal/domain/ingest/sniffer"
)

// Column labels for the known card-statement layout, matched
// case-insensitively as substrings.
var (
	excelDateLabels    = []string{"fecha", "date"}
	excelDescLabels    = []string{"descripcion", "descripción", "description", "detalle", "concepto"}
	excelLocalLabels   = []string{"guarani", "guaraní", "gs", "pyg", "local"}
	excelForeignLabels = []string{"dolar", "dólar", "usd", "exterior"}
	excelVoucherLabels = []string{"comprobante", "voucher", "nro"}
)

// summaryMarkers flag subtotal rows that must not become transactions.
var summaryMarkers = []string{"TOTAL", "SALDO"}

// headerScanDepth bounds how many early rows are inspected for a header.
const headerScanDepth = 10

type amountColumn struct {
	idx      int
	currency string
}

type sheetLayout struct {
	dataStart  int
	dateCol    int
	descCol    int
	voucherCol int
	amounts    []amountColumn
}

// ExtractExcel reads the first suitable sheet of an XLSX/XLS workbook and
// maps its rows to candidates. It first looks for the labeled statement
// layout; when no label row exists it falls back to structural detection
// keyed on legacy date serials.
//
// Statement polarity is inverted relative to the generic CSV path: a
// negative statement amount is a credit or refund (income), a positive one
// is a charge (expense). That convention comes from the source statements
// and is preserved exactly.
func ExtractExcel(r io.Reader) ([]ingest.Candidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	layout, ok := findLabeledLayout(rows)
	if !ok {
		layout, ok = findStructuralLayout(rows)
	}
	if !ok {
		return nil, nil
	}

	var out []ingest.Candidate
	for i := layout.dataStart; i < len(rows); i++ {
		out = append(out, mapStatementRow(rows[i], layout)...)
	}
	return out, nil
}

// ExcelText renders the first suitable sheet as plain text, one tab-joined
// line per row. Used for raw-text-only extraction of workbooks.
func ExcelText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f)
	if sheet == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String()), nil
}

func pickSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, preferred := range []string{"movimientos", "extracto", "transactions", "detalle"} {
		for _, s := range sheets {
			if strings.EqualFold(s, preferred) {
				return s
			}
		}
	}
	return sheets[0]
}

// findLabeledLayout scans early rows for the known statement header: a row
// carrying both a date label and at least one amount-column label.
func findLabeledLayout(rows [][]string) (sheetLayout, bool) {
	depth := headerScanDepth
	if len(rows) < depth {
		depth = len(rows)
	}

	for i := 0; i < depth; i++ {
		layout := sheetLayout{dateCol: -1, descCol: -1, voucherCol: -1}
		for j, cell := range rows[i] {
			label := strings.ToLower(strings.TrimSpace(cell))
			if label == "" {
				continue
			}
			switch {
			case layout.dateCol < 0 && matchesAny(label, excelDateLabels):
				layout.dateCol = j
			case layout.descCol < 0 && matchesAny(label, excelDescLabels):
				layout.descCol = j
			case matchesAny(label, excelForeignLabels):
				layout.amounts = append(layout.amounts, amountColumn{idx: j, currency: "USD"})
			case matchesAny(label, excelLocalLabels):
				layout.amounts = append(layout.amounts, amountColumn{idx: j, currency: "PYG"})
			case layout.voucherCol < 0 && matchesAny(label, excelVoucherLabels):
				layout.voucherCol = j
			}
		}
		if layout.dateCol >= 0 && len(layout.amounts) > 0 {
			layout.dataStart = i + 1
			return layout, true
		}
	}
	return sheetLayout{}, false
}

// findStructuralLayout handles statements without header labels. It scans
// early rows for a numeric cell plausible as a legacy date serial; that row
// starts the data, the previous row is an implicit header, the first column
// is the date, the second the description, and any later numeric columns are
// successive currency amounts (local first, then foreign).
func findStructuralLayout(rows [][]string) (sheetLayout, bool) {
	depth := headerScanDepth
	if len(rows) < depth {
		depth = len(rows)
	}

	for i := 0; i < depth; i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		serial, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil || !scalar.PlausibleSerial(serial) {
			continue
		}

		layout := sheetLayout{dataStart: i, dateCol: 0, descCol: 1, voucherCol: -1}
		currencies := []string{"PYG", "USD"}
		for j := 2; j < len(row); j++ {
			if !sniffer.LooksLikeAmount(row[j]) {
				continue
			}
			currency := ""
			if len(layout.amounts) < len(currencies) {
				currency = currencies[len(layout.amounts)]
			}
			layout.amounts = append(layout.amounts, amountColumn{idx: j, currency: currency})
		}
		if len(layout.amounts) > 0 {
			return layout, true
		}
	}
	return sheetLayout{}, false
}

// mapStatementRow emits up to one candidate per currency column. Dual
// currency rows share the date, description, and voucher reference but carry
// independent currency tags and directions.
func mapStatementRow(row []string, layout sheetLayout) []ingest.Candidate {
	desc := cellAt(row, layout.descCol)
	upper := strings.ToUpper(desc)
	for _, marker := range summaryMarkers {
		if strings.Contains(upper, marker) {
			return nil
		}
	}

	date := parseCellDate(cellAt(row, layout.dateCol))
	reference := cellAt(row, layout.voucherCol)

	var out []ingest.Candidate
	for _, ac := range layout.amounts {
		amount := scalar.ParseAmount(cellAt(row, ac.idx))
		if amount.IsZero() {
			continue
		}
		// Inverted statement polarity: negative = credit/refund = income.
		direction := ingest.DirectionExpense
		if amount.IsNegative() {
			direction = ingest.DirectionIncome
		}
		c := newCandidate(date, desc, amount.Abs(), ac.currency, reference)
		c.Direction = direction
		out = append(out, c)
	}
	return out
}

// parseCellDate accepts either a legacy serial or a date string.
func parseCellDate(cell string) time.Time {
	if serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && scalar.PlausibleSerial(serial) {
		return scalar.FromExcelSerial(int(serial))
	}
	return scalar.ParseDate(cell)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func matchesAny(label string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(label, c) {
			return true
		}
	}
	return false
}
