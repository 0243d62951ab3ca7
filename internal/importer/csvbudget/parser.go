// Package csvbudget reads generic budget CSV exports: one expense per row
// with date, description, amount and optional category columns. The header
// row is located by name so leading notes or blank lines are tolerated.
package csvbudget

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/penny/internal/encoding"
	"github.com/MrJamesThe3rd/penny/internal/entry"
)

const (
	colDate        = "date"
	colDescription = "description"
	colAmount      = "amount"
	colCategory    = "category"
	colSubcategory = "subcategory"
)

// dateLayouts are tried in order for each row.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]entry.CreateParams, error) {
	utf8r, err := enc.UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: need at least %q, %q and %q columns",
			colDate, colDescription, colAmount)
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// colIndex maps lowercased column names to their position.
type colIndex map[string]int

// findHeader scans for the first row carrying the required columns.
func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasDesc := cols[colDescription]
		_, hasAmount := cols[colAmount]

		if hasDate && hasDesc && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string) ([]entry.CreateParams, error) {
	var params []entry.CreateParams

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, cols, colDate))
		if !ok {
			// Not a data row; footers and blanks are common in exports.
			continue
		}

		desc := cellValue(row, cols, colDescription)
		if desc == "" {
			continue
		}

		amount, err := parseAmount(cellValue(row, cols, colAmount))
		if err != nil {
			continue
		}

		params = append(params, entry.CreateParams{
			Kind:        entry.KindExpense,
			Category:    parseCategory(cellValue(row, cols, colCategory)),
			Subcategory: cellValue(row, cols, colSubcategory),
			Amount:      amount,
			Month:       int(date.Month()),
			Year:        date.Year(),
			DueDay:      date.Day(),
			Description: desc,
		})
	}

	return params, nil
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts both dot and comma decimal separators. Negative
// amounts are taken as their absolute value: expense rows carry sign
// conventions that vary per export.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := s
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return d.Abs(), nil
}

func parseCategory(s string) entry.Category {
	c := entry.Category(strings.ToLower(s))
	if c.Valid() {
		return c
	}

	return entry.CategoryVariable
}
